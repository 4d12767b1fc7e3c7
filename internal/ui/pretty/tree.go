package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/tree"
)

// Tree branch glyphs.
const (
	branchMid  = "├── "
	branchLast = "└── "
	branchPipe = "│   "
	branchGap  = "    "
)

// FormatTree renders page as an indented element tree headed by path.
func (s *Styles) FormatTree(path string, page *elements.Page) string {
	var b strings.Builder
	b.WriteString(s.FilePath.Render(path))
	b.WriteString("\n")
	if page == nil || page.IsEmpty() {
		b.WriteString(s.Dim.Render("  (empty)") + "\n")
		return b.String()
	}
	blocks := page.Elements.Elements()
	for i, e := range blocks {
		s.writeNode(&b, e, "", i == len(blocks)-1)
	}
	return b.String()
}

func (s *Styles) writeNode(b *strings.Builder, e located.Located[elements.Element], indent string, last bool) {
	branch, next := branchMid, branchPipe
	if last {
		branch, next = branchLast, branchGap
	}
	b.WriteString(s.Branch.Render(indent + branch))
	b.WriteString(s.FormatElement(e))
	b.WriteString("\n")

	children := e.Value.Children()
	for i, c := range children {
		s.writeNode(b, c, indent+next, i == len(children)-1)
	}
}

// FormatElement renders one element: kind, detail and region.
func (s *Styles) FormatElement(e located.Located[elements.Element]) string {
	if e.Value == nil {
		return s.Dim.Render(elements.KindUnknown.String())
	}
	kind := e.Value.Kind()
	kindStyle := s.Inline
	if kind.IsBlock() || kind == elements.KindListItem {
		kindStyle = s.Block
	}

	desc := elements.Describe(e.Value)
	detail := strings.TrimPrefix(desc, kind.String())

	var b strings.Builder
	b.WriteString(kindStyle.Render(kind.String()))
	if detail != "" {
		b.WriteString(s.detailStyle(e.Value).Render(detail))
	}
	b.WriteString(" ")
	b.WriteString(s.Region.Render(e.Region.String()))
	return b.String()
}

func (s *Styles) detailStyle(e elements.Element) lipgloss.Style {
	if item, ok := e.(elements.ListItem); ok {
		return s.Todo(item.Attributes.TodoStatus)
	}
	return s.Detail
}

// FormatAncestry renders the node found at an offset, followed by its
// ancestors from nearest to root.
func (s *Styles) FormatAncestry(path string, offset int, node *tree.Node, ancestors []*tree.Node) string {
	var b strings.Builder
	b.WriteString(s.FilePath.Render(path))
	b.WriteString(s.Dim.Render("@"))
	b.WriteString(s.Bold.Render(strconv.Itoa(offset)))
	b.WriteString("\n")
	if node == nil {
		b.WriteString(s.Dim.Render("  no element at offset") + "\n")
		return b.String()
	}
	b.WriteString("  " + s.Selected.Render("▶ ") + s.FormatElement(node.Data) + "\n")
	for _, a := range ancestors {
		b.WriteString("    " + s.Dim.Render("in ") + s.FormatElement(a.Data) + "\n")
	}
	return b.String()
}
