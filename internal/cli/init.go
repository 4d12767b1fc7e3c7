package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/fsutil"
)

const configFileMode fs.FileMode = 0o644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a govimwiki configuration file",
		Long: `Create a project configuration file at the root of a wiki.

The minimal template documents the common options as comments. The full
template lists every option, including the HTML output settings, with its
default value. Without --format, the format follows the --output extension.

Examples:
  govimwiki init                      Create a minimal .govimwiki.yml
  govimwiki init --full               Write every option with its default
  govimwiki init --format json        Create .govimwiki.json instead
  govimwiki init -o ~/vimwiki/.govimwiki.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every option with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "", "yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "file to write (default .govimwiki.yml or .govimwiki.json)")

	return cmd
}

// initTarget resolves the output path and format from the flags.
func initTarget(flags *initFlags) (string, config.Format, error) {
	format := config.Format(flags.format)
	path := config.ExpandHome(flags.output)

	switch {
	case format != "" && !format.IsValid():
		return "", "", fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	case format == "" && path != "":
		format = config.FormatForPath(path)
	case format == "":
		format = config.FormatYAML
	}
	if path == "" {
		path = ".govimwiki.yml"
		if format == config.FormatJSON {
			path = ".govimwiki.json"
		}
	}
	return path, format, nil
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	path, format, err := initTarget(flags)
	if err != nil {
		return err
	}

	switch _, statErr := os.Stat(path); {
	case statErr == nil && !flags.force:
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	case statErr == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, path)
	case !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("check %s: %w", path, statErr)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full, Format: format})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, content, configFileMode); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, path, "format", format)
	logger.Info("run 'govimwiki stats' in the wiki to check it")
	return nil
}
