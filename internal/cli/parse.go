package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/cache"
	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/elements"
)

// stdinPath is the argument that reads a page from standard input.
const stdinPath = "-"

type parseFlags struct {
	json   bool
	syntax string
}

// parsedFile is one entry of parse --json output.
type parsedFile struct {
	Path   string          `json:"path"`
	Syntax string          `json:"syntax"`
	Cached bool            `json:"cached"`
	Page   json.RawMessage `json:"page,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse PATH...",
		Short: "Print the element tree of pages",
		Long: `Parse pages and print their element trees with source regions.

Use "-" to read a page from standard input. Its syntax is taken from
--syntax, or from the configured default syntax.

Examples:
  govimwiki parse index.wiki
  govimwiki parse --json notes/*.wiki
  cat page.wiki | govimwiki parse -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print pages as JSON")
	cmd.Flags().StringVar(&flags.syntax, "syntax", "",
		"syntax of stdin and of files with unknown extensions: vimwiki, markdown")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd, &config.Config{Syntax: flags.syntax, JSON: flags.json})
	if err != nil {
		return err
	}
	loader, err := newLoader(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer closeLoader(logger, loader)

	styles := stylesFor(cmd)
	out := cmd.OutOrStdout()
	var (
		entries []parsedFile
		failed  bool
	)

	for _, path := range args {
		result, err := loadArg(cmd, loader, path)
		if err != nil {
			failed = true
			logger.Error("parse failed", logging.FieldPath, path, logging.FieldError, err)
			if cfg.JSON {
				entries = append(entries, parsedFile{Path: path, Syntax: loader.SyntaxFor(path), Error: err.Error()})
			}
			continue
		}

		if !cfg.JSON {
			fmt.Fprint(out, styles.FormatTree(path, result.Page))
			continue
		}
		data, err := elements.EncodePage(result.Page)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		entries = append(entries, parsedFile{Path: path, Syntax: result.Syntax, Cached: result.Cached, Page: data})
	}

	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}
	if failed {
		return ErrLoadFailures
	}
	return nil
}

// loadArg loads a command-line path, reading stdin for "-".
func loadArg(cmd *cobra.Command, loader *cache.Loader, path string) (*cache.Result, error) {
	ctx := commandContext(cmd)
	if path != stdinPath {
		return loader.Load(ctx, path)
	}
	in := cmd.InOrStdin()
	if in == nil {
		in = os.Stdin
	}
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return loader.LoadContent(ctx, path, content)
}
