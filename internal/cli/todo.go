package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/edit"
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/fsutil"
	"github.com/yaklabco/govimwiki/pkg/todo"
)

type todoFlags struct {
	positionFlags
	status string
	dryRun bool
}

func newTodoCommand() *cobra.Command {
	flags := &todoFlags{positionFlags: positionFlags{offset: -1}}

	cmd := &cobra.Command{
		Use:   "todo PATH",
		Short: "Toggle or set the checkbox of a list item",
		Long: `Toggle the checkbox of the list item at a position, or set it with --status.

Nested items follow a parent that is marked done or not done, and every
enclosing item with a checkbox is updated to reflect its children.
Only vimwiki pages can be edited.

Status values: todo, done, rejected, or a checkbox symbol such as "o".

Examples:
  govimwiki todo index.wiki --line 3
  govimwiki todo index.wiki --line 3 --status rejected
  govimwiki todo index.wiki --offset 42 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTodo(cmd, args[0], flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.status, "status", "", "set this status instead of toggling")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print a diff instead of writing the file")

	return cmd
}

func runTodo(cmd *cobra.Command, path string, flags *todoFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	if err := flags.validate(); err != nil {
		return err
	}
	status := elements.TodoNone
	if flags.status != "" {
		parsed, err := todo.ParseStatus(flags.status)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		status = parsed
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

	if syntax := loader.SyntaxFor(path); syntax != config.SyntaxVimwiki {
		return fmt.Errorf("%w: %s pages cannot be edited", ErrUsage, syntax)
	}

	content, info, err := fsutil.ReadFile(ctx, path)
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

	var edits []edit.TextEdit
	if status == elements.TodoNone {
		edits, err = todo.Toggle(content, result.Page, offset)
	} else {
		edits, err = todo.Set(content, result.Page, offset, status)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	modified, err := edit.Apply(content, edits)
	if err != nil {
		return fmt.Errorf("apply edits to %s: %w", path, err)
	}
	diff := edit.Diff{Path: path, Original: content, Modified: modified}

	if flags.dryRun {
		fmt.Fprint(cmd.OutOrStdout(), diff.String())
		return nil
	}
	if !diff.HasChanges() {
		return nil
	}
	if err := fsutil.WriteAtomic(ctx, path, modified, info.Mode); err != nil {
		return err
	}
	logger.Debug("updated todo",
		logging.FieldPath, path,
		logging.FieldOffset, offset,
		logging.FieldEdits, len(edits))
	return nil
}
