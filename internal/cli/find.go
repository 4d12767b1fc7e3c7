package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/fsutil"
	"github.com/yaklabco/govimwiki/pkg/idalloc"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
	"github.com/yaklabco/govimwiki/pkg/tree"
)

// positionFlags locate a byte in a page either directly or by line and
// column.
type positionFlags struct {
	offset int
	line   int
	column int
}

func (p *positionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.offset, "offset", -1, "byte offset into the page")
	cmd.Flags().IntVar(&p.line, "line", 0, "1-based line")
	cmd.Flags().IntVar(&p.column, "column", 1, "1-based column in bytes")
}

func (p *positionFlags) validate() error {
	if (p.offset < 0) == (p.line == 0) {
		return fmt.Errorf("%w: exactly one of --offset or --line is required", ErrUsage)
	}
	return nil
}

// resolve returns the byte offset the flags name within content.
func (p *positionFlags) resolve(content []byte) (int, error) {
	if p.line == 0 {
		return p.offset, nil
	}
	offset, ok := span.New(string(content)).OffsetOf(located.NewPosition(p.line, p.column))
	if !ok {
		return 0, fmt.Errorf("%w: line %d is out of range", ErrUsage, p.line)
	}
	return offset, nil
}

func newFindCommand() *cobra.Command {
	flags := &positionFlags{offset: -1}

	cmd := &cobra.Command{
		Use:   "find PATH",
		Short: "Show the element at a position and its ancestors",
		Long: `Find the deepest element containing a byte offset, or a 1-based line and
column, and print it followed by every enclosing element.

Examples:
  govimwiki find index.wiki --offset 120
  govimwiki find index.wiki --line 4 --column 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args[0], flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runFind(cmd *cobra.Command, path string, flags *positionFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	if err := flags.validate(); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	loader, err := newLoader(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer closeLoader(logger, loader)

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	result, err := loader.LoadContent(ctx, path, content)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	offset, err := flags.resolve(content)
	if err != nil {
		return err
	}

	forest := tree.FromPage(result.Page, idalloc.NewAllocator())
	defer forest.Close()

	styles := stylesFor(cmd)
	node, ok := forest.FindAtOffset(offset)
	if !ok {
		fmt.Fprint(cmd.OutOrStdout(), styles.FormatAncestry(path, offset, nil, nil))
		return nil
	}
	logger.Debug("found element", logging.FieldOffset, offset, logging.FieldKind, node.Kind())
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatAncestry(path, offset, node, forest.Ancestors(node)))
	return nil
}
