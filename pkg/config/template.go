package config

import "bytes"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option with its default value. Otherwise a short
	// commented template is produced.
	Full bool

	// Format defaults to YAML.
	Format Format
}

// DefaultTemplateHeader returns the header of generated config files.
func DefaultTemplateHeader() string {
	return `# govimwiki configuration
# See: https://github.com/yaklabco/govimwiki`
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch {
	case opts.Format == FormatJSON:
		return NewConfig().Encode(FormatJSON)
	case opts.Full:
		return NewConfig().EncodeYAMLWithHeader(DefaultTemplateHeader() + "\n#\n# Every option with its default value.")
	}
	return minimalTemplate(), nil
}

func minimalTemplate() []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Syntax of files with an unknown extension: vimwiki or markdown
syntax: vimwiki

# Extension to syntax mapping
# extensions:
#   .wiki: vimwiki
#   .md: markdown

# Number of parallel workers (0 = one per CPU)
# jobs: 0

# File patterns to skip (glob patterns)
# ignore:
#   - "diary/**"

# Parsed page cache: sqlite, file or none
cache:
  backend: sqlite
  # path: ~/.cache/govimwiki/cache.db

# Language server
# lsp:
#   hover: true

# HTML output options
# html:
#   wikis:
#     - path: ~/vimwiki
#       path_html: ~/vimwiki_html
#       index: index
#   header:
#     toc_header: Contents
`)
	return buf.Bytes()
}
