package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format string

// Config file encodings.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// indent is the nesting width of both encodings.
const indent = 2

// IsValid returns true for a known format.
func (f Format) IsValid() bool {
	return f == FormatYAML || f == FormatJSON
}

// FormatForPath picks the format from a file extension. Anything other
// than ".json" is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode serializes the configuration. A nil config encodes to nil.
func (c *Config) Encode(format Format) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(c, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, fmt.Errorf("encode json config: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(indent)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml config: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}

// EncodeYAMLWithHeader encodes the configuration as YAML below a comment
// header. The header's lines must already start with "#".
func (c *Config) EncodeYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.Encode(FormatYAML)
	if err != nil || header == "" {
		return body, err
	}
	return []byte(strings.TrimRight(header, "\n") + "\n\n" + string(body)), nil
}

// Decode parses a configuration. JSON is a subset of YAML, so both
// formats go through the YAML decoder. Fields absent from data stay at
// their zero value.
func Decode(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := DecodeInto(cfg, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeInto parses data on top of dst. Keys absent from data keep dst's
// value, maps merge per key and sequences replace.
func DecodeInto(dst *Config, data []byte) error {
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Extensions = maps.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.HTML.Wikis = slices.Clone(c.HTML.Wikis)
	return &clone
}
