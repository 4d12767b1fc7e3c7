package lsp

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/elements"
)

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	client := ""
	if params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}
	s.logger.Debug("initialize", logging.FieldMethod, protocol.MethodInitialize, "client", client)

	version := s.opts.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.logger.Debug("client initialized")
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.logger.Info("shutting down")
	protocol.SetTraceValue(protocol.TraceValueOff)

	s.mu.Lock()
	defer s.mu.Unlock()
	for uri, doc := range s.docs {
		if doc.forest != nil {
			doc.forest.Close()
		}
		delete(s.docs, uri)
	}
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	if _, err := s.open(item.URI, item.Version, item.Text); err != nil {
		s.logger.Warn("open failed", logging.FieldURI, item.URI, logging.FieldError, err)
	}
	return nil
}

func (s *Server) textDocumentDidChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc, ok := s.document(uri)
	if !ok {
		return fmt.Errorf("change for unopened document %s", uri)
	}

	text := doc.text
	for _, change := range params.ContentChanges {
		next, err := applyChange(text, change)
		if err != nil {
			return fmt.Errorf("apply change to %s: %w", uri, err)
		}
		text = next
	}

	if _, err := s.open(uri, params.TextDocument.Version, text); err != nil {
		s.logger.Warn("reparse failed", logging.FieldURI, uri, logging.FieldError, err)
	}
	return nil
}

func (s *Server) textDocumentDidSave(_ *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.logger.Debug("saved", logging.FieldURI, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.close(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok || doc.forest == nil {
		return nil, nil //nolint:nilnil // no hover for unknown documents
	}

	offset := doc.lines.offset(params.Position)
	node, ok := doc.forest.FindAtOffset(offset)
	if !ok {
		return nil, nil //nolint:nilnil // nothing under the cursor
	}

	var b strings.Builder
	b.WriteString("`" + elements.Describe(node.Data.Value) + "`")
	if detail := hoverDetail(node.Data.Value); detail != "" {
		b.WriteString("\n\n" + detail)
	}
	if ancestors := doc.forest.Ancestors(node); len(ancestors) > 0 {
		kinds := make([]string, 0, len(ancestors))
		for _, a := range slices.Backward(ancestors) {
			kinds = append(kinds, a.Kind().String())
		}
		b.WriteString("\n\n" + strings.Join(kinds, " › "))
	}

	rng := doc.lines.rangeOf(node.Region())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: b.String()},
		Range:    &rng,
	}, nil
}

// hoverDetail returns extra hover lines for elements whose description
// leaves out something useful.
func hoverDetail(e elements.Element) string {
	switch v := e.(type) {
	case elements.ListItem:
		if p, ok := v.TodoProgress(); ok {
			return "progress " + strconv.Itoa(int(p*100+0.5)) + "%"
		}
	case elements.Link:
		if v.Description != nil && v.Description.Text != "" {
			return "target `" + v.Target() + "`"
		}
	case elements.CodeBlock:
		keys := make([]string, 0, len(v.Metadata))
		for k, val := range v.Metadata {
			keys = append(keys, k+"="+strconv.Quote(val))
		}
		slices.Sort(keys)
		return strings.Join(keys, " ")
	}
	return ""
}

func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok || doc.page == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return headerSymbols(doc), nil
}

// headerSymbols nests the page's headers by level.
func headerSymbols(doc *document) []protocol.DocumentSymbol {
	type section struct {
		level    int
		symbol   protocol.DocumentSymbol
		children []*section
	}

	root := &section{}
	stack := []*section{root}
	for _, block := range doc.page.Elements {
		h, ok := block.Value.(elements.Header)
		if !ok {
			continue
		}
		name := h.Content.PlainText()
		if name == "" {
			name = "(untitled)"
		}
		detail := "level " + strconv.Itoa(h.Level)
		rng := doc.lines.rangeOf(block.Region)
		sec := &section{level: h.Level, symbol: protocol.DocumentSymbol{
			Name:           name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindNamespace,
			Range:          rng,
			SelectionRange: rng,
		}}

		for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, sec)
		stack = append(stack, sec)
	}

	var build func(secs []*section) []protocol.DocumentSymbol
	build = func(secs []*section) []protocol.DocumentSymbol {
		out := make([]protocol.DocumentSymbol, 0, len(secs))
		for _, sec := range secs {
			sym := sec.symbol
			if len(sec.children) > 0 {
				sym.Children = build(sec.children)
			}
			out = append(out, sym)
		}
		return out
	}
	return build(root.children)
}

func (s *Server) textDocumentDocumentLink(_ *glsp.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok || doc.page == nil {
		return nil, nil
	}

	var out []protocol.DocumentLink
	for _, l := range elements.FindByKind(doc.page, elements.KindLink) {
		link, _ := l.Value.(elements.Link)
		target, ok := resolveLink(doc.path, link)
		if !ok {
			continue
		}
		tooltip := link.LinkKind.String() + " link"
		out = append(out, protocol.DocumentLink{
			Range:   doc.lines.rangeOf(l.Region),
			Target:  &target,
			Tooltip: &tooltip,
		})
	}
	return out, nil
}

// resolveLink returns the URI a link opens, relative to the page at
// path. Interwiki links need wiki roots and are not resolved.
func resolveLink(path string, link elements.Link) (string, bool) {
	dir, ext := filepath.Dir(path), filepath.Ext(path)
	withAnchor := func(uri string) string {
		if a := link.Anchor(); a != "" {
			return uri + "#" + a
		}
		return uri
	}

	switch link.LinkKind {
	case elements.LinkWiki:
		if link.Path == "" {
			return withAnchor(uriFromPath(path)), true
		}
		target := filepath.Join(dir, filepath.FromSlash(link.Path))
		if strings.HasSuffix(link.Path, "/") {
			target = filepath.Join(target, "index"+ext)
		} else if filepath.Ext(target) == "" {
			target += ext
		}
		return withAnchor(uriFromPath(target)), true
	case elements.LinkDiary:
		target := filepath.Join(dir, "diary", link.Date.Format(elements.DiaryDateLayout)+ext)
		return withAnchor(uriFromPath(target)), true
	case elements.LinkExternalFile:
		target := link.Path
		if !filepath.IsAbs(target) && !strings.HasPrefix(target, "~") {
			target = filepath.Join(dir, target)
		}
		return uriFromPath(config.ExpandHome(target)), true
	case elements.LinkRaw, elements.LinkTransclusion:
		if link.Scheme == "" {
			return "", false
		}
		return link.URI(), true
	default:
		return "", false
	}
}
