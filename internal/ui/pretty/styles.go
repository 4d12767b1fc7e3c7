// Package pretty renders element trees, ancestry chains and wiki reports
// for the terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/govimwiki/pkg/elements"
)

const defaultTermWidth = 100

// ANSI 256 palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGrey   = "8"
	colorSilver = "7"
)

// Styles holds one lipgloss style per output role.
type Styles struct {
	Block    lipgloss.Style
	Inline   lipgloss.Style
	Detail   lipgloss.Style
	Region   lipgloss.Style
	Branch   lipgloss.Style
	Selected lipgloss.Style

	TodoDone     lipgloss.Style
	TodoOpen     lipgloss.Style
	TodoRejected lipgloss.Style

	FilePath lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones that render text
// unchanged when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(color))
	}
	bold := plain
	if colorEnabled {
		bold = plain.Bold(true)
	}

	return &Styles{
		Block:    fg(colorBlue).Inherit(bold),
		Inline:   fg(colorCyan),
		Detail:   plain,
		Region:   fg(colorGrey),
		Branch:   fg(colorGrey),
		Selected: fg(colorYellow).Inherit(bold),

		TodoDone:     fg(colorGreen),
		TodoOpen:     fg(colorYellow),
		TodoRejected: fg(colorGrey).Strikethrough(colorEnabled),

		FilePath: bold,

		SummaryTitle: bold,
		SummaryValue: plain,
		Success:      fg(colorGreen).Inherit(bold),
		Failure:      fg(colorRed).Inherit(bold),

		TableHeader:    fg(colorSilver).Inherit(bold),
		TableSeparator: fg(colorGrey),

		Dim:  fg(colorGrey),
		Bold: bold,
	}
}

// Todo returns the style for a checkbox state. Items without a checkbox
// use Detail.
func (s *Styles) Todo(status elements.TodoStatus) lipgloss.Style {
	switch status {
	case elements.TodoNone:
		return s.Detail
	case elements.TodoComplete:
		return s.TodoDone
	case elements.TodoRejected:
		return s.TodoRejected
	default:
		return s.TodoOpen
	}
}

// IsColorEnabled resolves a --color mode of "always", "never" or "auto".
// Auto colors only terminals, and only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// TermWidth returns the column count of the terminal behind writer, or
// 100 when writer is not a terminal.
func TermWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
