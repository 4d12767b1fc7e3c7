package markdown

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
)

type (
	inlineLE = located.Located[elements.InlineElement]
	blockLE  = located.Located[elements.BlockElement]
)

// mapper converts a goldmark AST into elements.
type mapper struct {
	content []byte
	src     span.Span
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content, src: span.New(string(content))}
}

// mapDocument converts a goldmark document into a page.
func (m *mapper) mapDocument(gmDoc ast.Node) *elements.Page {
	page := &elements.Page{Elements: elements.BlockElements{}}
	page.Elements = append(page.Elements, m.mapBlocks(gmDoc)...)
	return page
}

func (m *mapper) mapBlocks(gmParent ast.Node) []blockLE {
	var out []blockLE
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if b, ok := m.mapBlock(child); ok {
			out = append(out, b)
		}
	}
	return out
}

// mapBlock converts a single block node. Nodes with no vimwiki
// counterpart are dropped.
func (m *mapper) mapBlock(gmNode ast.Node) (blockLE, bool) {
	var block elements.BlockElement

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		block = elements.Header{Level: gmn.Level, Content: m.mapInlineContainer(gmn, 0)}

	case *ast.Paragraph:
		block = elements.Paragraph{Lines: m.mapInlineLines(gmn, 0)}

	case *ast.TextBlock:
		block = elements.Paragraph{Lines: m.mapInlineLines(gmn, 0)}

	case *ast.List:
		block = m.mapList(gmn)

	case *ast.Blockquote:
		block = elements.Blockquote{Lines: m.blockquoteLines(gmn)}

	case *ast.FencedCodeBlock:
		block = elements.CodeBlock{
			Language: string(gmn.Language(m.content)),
			Lines:    m.rawLines(gmn),
		}

	case *ast.CodeBlock:
		block = elements.CodeBlock{Lines: m.rawLines(gmn)}

	case *ast.ThematicBreak:
		block = elements.Divider{}

	case *ast.HTMLBlock:
		block = m.mapHTMLBlock(gmn)

	case *east.Table:
		block = m.mapTable(gmn)

	case *east.DefinitionList:
		block = m.mapDefinitionList(gmn)

	default:
		return blockLE{}, false
	}

	return located.New(block, m.region(gmNode, 0)), true
}

// mapList converts a goldmark List.
func (m *mapper) mapList(list *ast.List) elements.List {
	typ, suffix := elements.ItemHyphen, elements.SuffixNone
	switch {
	case list.IsOrdered():
		typ, suffix = elements.ItemNumber, elements.SuffixPeriod
		if list.Marker == ')' {
			suffix = elements.SuffixParen
		}
	case list.Marker == '*':
		typ = elements.ItemAsterisk
	case list.Marker == '+':
		typ = elements.ItemOther
	}

	var l elements.List
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		li, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		item := elements.ListItem{Type: typ, Suffix: suffix}
		if typ == elements.ItemOther {
			item.Marker = string(list.Marker)
		}
		m.fillListItem(li, &item)
		l.Items = append(l.Items, located.New(item, m.region(li, 0)))
	}
	l.Normalize()
	return l
}

func (m *mapper) fillListItem(li *ast.ListItem, item *elements.ListItem) {
	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.List:
			item.Contents = append(item.Contents, located.New[elements.ListItemContent](m.mapList(c), m.region(c, 0)))
		case *ast.Paragraph, *ast.TextBlock:
			if cb, ok := c.FirstChild().(*east.TaskCheckBox); ok {
				item.Attributes.TodoStatus = elements.TodoIncomplete
				if cb.IsChecked {
					item.Attributes.TodoStatus = elements.TodoComplete
				}
			}
			for _, line := range m.mapInlineLines(c, 0) {
				item.Contents = append(item.Contents, located.New[elements.ListItemContent](line, m.containerRegion(line, c)))
			}
		}
	}
}

func (m *mapper) containerRegion(c elements.InlineElementContainer, fallback ast.Node) located.Region {
	if len(c.Elements) == 0 {
		return m.region(fallback, 0)
	}
	first, last := c.Elements[0].Region, c.Elements[len(c.Elements)-1].Region
	return m.regionBetween(first.Offset, last.EndOffset(), 0)
}

func (m *mapper) mapHTMLBlock(h *ast.HTMLBlock) elements.BlockElement {
	lines := m.rawLines(h)
	if h.HasClosure() {
		lines = append(lines, strings.TrimRight(string(h.ClosureLine.Value(m.content)), "\r\n"))
	}
	joined := strings.TrimSpace(strings.Join(lines, "\n"))
	if body, ok := strings.CutPrefix(joined, "<!--"); ok {
		body = strings.TrimSpace(strings.TrimSuffix(body, "-->"))
		return elements.Comment{MultiLine: len(lines) > 1, Lines: strings.Split(body, "\n")}
	}

	para := elements.Paragraph{}
	for _, l := range lines {
		para.Lines = append(para.Lines, elements.NewInlineElementContainer(
			located.New[elements.InlineElement](elements.Text(l), located.Region{}),
		))
	}
	return para
}

// mapTable converts a GFM table. The header row is followed by a row of
// alignment cells, as in vimwiki tables.
func (m *mapper) mapTable(table *east.Table) elements.Table {
	var t elements.Table
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		row := elements.Row{}
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			c := elements.Cell{CellKind: elements.CellContent, Content: m.mapInlineContainer(cell, 0)}
			row.Cells = append(row.Cells, located.New(c, m.region(cell, 0)))
		}
		t.Rows = append(t.Rows, row)

		if _, ok := child.(*east.TableHeader); ok {
			align := elements.Row{}
			for _, a := range table.Alignments {
				c := elements.Cell{CellKind: elements.CellAlign, Align: columnAlign(a)}
				align.Cells = append(align.Cells, located.New(c, located.Region{}))
			}
			t.Rows = append(t.Rows, align)
		}
	}
	return t
}

// mapDefinitionList groups each description under the term before it.
func (m *mapper) mapDefinitionList(dl *east.DefinitionList) elements.DefinitionList {
	var out elements.DefinitionList
	for child := dl.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *east.DefinitionTerm:
			term := elements.Term{Content: m.mapInlineContainer(c, 0)}
			out.Items = append(out.Items, elements.TermAndDefinitions{Term: located.New(term, m.region(c, 0))})
		case *east.DefinitionDescription:
			if len(out.Items) == 0 {
				continue
			}
			var def elements.Definition
			if first := c.FirstChild(); first != nil {
				def.Content = m.mapInlineContainer(first, 0)
			}
			last := &out.Items[len(out.Items)-1]
			last.Definitions = append(last.Definitions, located.New(def, m.region(c, 0)))
		}
	}
	return out
}

func columnAlign(a east.Alignment) elements.ColumnAlign {
	switch a {
	case east.AlignCenter:
		return elements.AlignCenter
	case east.AlignRight:
		return elements.AlignRight
	default:
		return elements.AlignLeft
	}
}

// blockquoteLines returns the source lines of a blockquote with their
// "> " markers removed.
func (m *mapper) blockquoteLines(bq *ast.Blockquote) []string {
	start, end, ok := m.byteRange(bq)
	if !ok {
		return nil
	}
	end = m.lineEnd(end)
	var lines []string
	text := strings.TrimRight(string(m.content[start:end]), "\r\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimLeft(line, " ")
		line = strings.TrimPrefix(line, ">")
		line = strings.TrimPrefix(line, " ")
		lines = append(lines, line)
	}
	return lines
}

// rawLines returns the text of a block's line segments without line
// endings.
func (m *mapper) rawLines(n ast.Node) []string {
	segs := n.Lines()
	lines := make([]string, 0, segs.Len())
	for i := range segs.Len() {
		seg := segs.At(i)
		lines = append(lines, strings.TrimRight(string(seg.Value(m.content)), "\r\n"))
	}
	return lines
}

// mapInlineContainer maps every inline child of n onto one line.
func (m *mapper) mapInlineContainer(n ast.Node, depth int) elements.InlineElementContainer {
	var c elements.InlineElementContainer
	for _, line := range m.mapInlineLines(n, depth) {
		c = c.Concat(line)
	}
	return c
}

// mapInlineLines maps the inline children of n, starting a new line after
// each soft or hard line break.
func (m *mapper) mapInlineLines(n ast.Node, depth int) []elements.InlineElementContainer {
	var lines []elements.InlineElementContainer
	var cur elements.InlineElements

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if e, ok := m.mapInline(child, depth); ok {
			cur = append(cur, e)
		}
		if t, ok := child.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			lines = append(lines, elements.InlineElementContainer{Elements: cur})
			cur = nil
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, elements.InlineElementContainer{Elements: cur})
	}
	return lines
}

func (m *mapper) mapInlines(n ast.Node, depth int) elements.InlineElements {
	var out elements.InlineElements
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if e, ok := m.mapInline(child, depth); ok {
			out = append(out, e)
		}
	}
	return out
}

// mapInline converts a single inline node.
func (m *mapper) mapInline(gmNode ast.Node, depth int) (inlineLE, bool) {
	var inline elements.InlineElement

	switch gmn := gmNode.(type) {
	case *ast.Text:
		value := gmn.Segment.Value(m.content)
		if len(value) == 0 {
			return inlineLE{}, false
		}
		inline = elements.Text(value)

	case *ast.String:
		inline = elements.Text(gmn.Value)

	case *ast.Emphasis:
		dec := elements.DecorationItalic
		if gmn.Level >= 2 {
			dec = elements.DecorationBold
		}
		inline = elements.DecoratedText{Decoration: dec, Contents: m.mapInlines(gmn, depth+1)}

	case *east.Strikethrough:
		inline = elements.DecoratedText{Decoration: elements.DecorationStrikeout, Contents: m.mapInlines(gmn, depth+1)}

	case *ast.CodeSpan:
		inline = elements.CodeInline{Code: m.plainText(gmn)}

	case *ast.Link:
		inline = m.link(string(gmn.Destination), m.plainText(gmn), false)

	case *ast.Image:
		inline = m.link(string(gmn.Destination), m.plainText(gmn), true)

	case *ast.AutoLink:
		inline = m.link(string(gmn.URL(m.content)), "", false)

	case *ast.RawHTML:
		raw := m.segmentsText(gmn)
		if body, ok := strings.CutPrefix(raw, "<!--"); ok {
			inline = elements.Comment{Lines: strings.Split(strings.TrimSuffix(body, "-->"), "\n")}
		} else {
			inline = elements.Text(raw)
		}

	case *east.TaskCheckBox:
		return inlineLE{}, false

	default:
		return inlineLE{}, false
	}

	return located.New(inline, m.region(gmNode, depth)), true
}

// link maps a Markdown destination: relative targets become wiki links,
// everything with a scheme a raw link, images transclusions.
func (m *mapper) link(dest, label string, image bool) elements.Link {
	l := elements.Link{LinkKind: elements.LinkWiki}
	if label != "" && label != dest {
		l.Description = &elements.Description{Text: label}
	}

	u, err := url.Parse(dest)
	switch {
	case image:
		l.LinkKind = elements.LinkTransclusion
		l.Scheme, l.Path = schemeAndPath(dest, u, err)
	case err == nil && u.Scheme != "":
		l.LinkKind = elements.LinkRaw
		l.Scheme, l.Path = schemeAndPath(dest, u, err)
	case strings.Contains(dest, "@") && !strings.Contains(dest, "/"):
		l.LinkKind, l.Scheme, l.Path = elements.LinkRaw, "mailto", dest
	default:
		path, anchor, _ := strings.Cut(dest, "#")
		l.Path = strings.TrimSuffix(path, ".md")
		if anchor != "" {
			l.Anchors = strings.Split(anchor, "#")
		}
	}
	return l
}

func schemeAndPath(dest string, u *url.URL, err error) (string, string) {
	if err != nil || u.Scheme == "" {
		return "", dest
	}
	return u.Scheme, strings.TrimPrefix(dest, u.Scheme+":")
}

func (m *mapper) plainText(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(m.content))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func (m *mapper) segmentsText(r *ast.RawHTML) string {
	var b strings.Builder
	for i := range r.Segments.Len() {
		seg := r.Segments.At(i)
		b.Write(seg.Value(m.content))
	}
	return b.String()
}

// region computes the located region of a goldmark node.
func (m *mapper) region(n ast.Node, depth int) located.Region {
	start, end, ok := m.byteRange(n)
	if !ok {
		return located.Region{Depth: depth}
	}
	return m.regionBetween(start, end, depth)
}

func (m *mapper) regionBetween(start, end, depth int) located.Region {
	s := m.src.Advance(start).WithDepth(depth)
	return span.RegionOf(s, m.src.Advance(end))
}

// byteRange derives the source bytes covered by n from its segments and
// those of its descendants. Goldmark does not record delimiters, so they
// are recovered from the surrounding source.
func (m *mapper) byteRange(n ast.Node) (int, int, bool) {
	var start, end int
	var ok bool

	switch v := n.(type) {
	case *ast.Text:
		return v.Segment.Start, v.Segment.Stop, true
	case *ast.RawHTML:
		if v.Segments.Len() == 0 {
			return 0, 0, false
		}
		return v.Segments.At(0).Start, v.Segments.At(v.Segments.Len() - 1).Stop, true
	case *ast.AutoLink:
		return m.findAfterPrevious(n, v.URL(m.content))
	}

	if n.Type() == ast.TypeBlock {
		if segs := n.Lines(); segs != nil && segs.Len() > 0 {
			start, end, ok = segs.At(0).Start, segs.At(segs.Len()-1).Stop, true
		}
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		cs, ce, cok := m.byteRange(child)
		if !cok {
			continue
		}
		if !ok || cs < start {
			start = cs
		}
		if !ok || ce > end {
			end = ce
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}

	switch v := n.(type) {
	case *ast.Emphasis:
		start, end = max(start-v.Level, 0), min(end+v.Level, len(m.content))
	case *east.Strikethrough:
		start, end = m.expandRun(start, end, '~')
	case *ast.CodeSpan:
		start, end = m.expandRun(start, end, '`')
	case *ast.Link, *ast.Image:
		start, end = m.expandLink(start, end)
	case *ast.FencedCodeBlock:
		start = m.lineStart(max(m.lineStart(start)-1, 0))
		end = m.lineEnd(end)
	case *ast.Heading, *ast.List, *ast.ListItem, *ast.Blockquote, *east.Table, *east.TableRow, *east.TableHeader,
		*east.DefinitionList, *east.DefinitionDescription:
		start = m.lineStart(start)
	}
	return start, end, true
}

func (m *mapper) expandRun(start, end int, delim byte) (int, int) {
	for start > 0 && m.content[start-1] == delim {
		start--
	}
	for end < len(m.content) && m.content[end] == delim {
		end++
	}
	return start, end
}

// expandLink widens a link label range to "[label](dest)".
func (m *mapper) expandLink(start, end int) (int, int) {
	if start > 0 && m.content[start-1] == '[' {
		start--
		if start > 0 && m.content[start-1] == '!' {
			start--
		}
	}
	if end < len(m.content) && m.content[end] == ']' {
		if i := bytes.IndexByte(m.content[end:m.lineEnd(end)], ')'); i >= 0 {
			end += i + 1
		} else {
			end++
		}
	}
	return start, end
}

// findAfterPrevious locates needle after the end of n's previous sibling,
// or after the start of its parent's first line.
func (m *mapper) findAfterPrevious(n ast.Node, needle []byte) (int, int, bool) {
	from := 0
	if prev := n.PreviousSibling(); prev != nil {
		if _, e, ok := m.byteRange(prev); ok {
			from = e
		}
	} else if p := n.Parent(); p != nil && p.Type() == ast.TypeBlock && p.Lines().Len() > 0 {
		from = p.Lines().At(0).Start
	}
	if from > len(m.content) || len(needle) == 0 {
		return 0, 0, false
	}
	i := bytes.Index(m.content[from:], needle)
	if i < 0 {
		return 0, 0, false
	}
	start := from + i
	end := start + len(needle)
	if start > 0 && m.content[start-1] == '<' {
		start--
	}
	if end < len(m.content) && m.content[end] == '>' {
		end++
	}
	return start, end, true
}

func (m *mapper) lineStart(offset int) int {
	offset = min(offset, len(m.content))
	for offset > 0 && m.content[offset-1] != '\n' {
		offset--
	}
	return offset
}

func (m *mapper) lineEnd(offset int) int {
	if i := bytes.IndexByte(m.content[min(offset, len(m.content)):], '\n'); i >= 0 {
		return min(offset, len(m.content)) + i
	}
	return len(m.content)
}
