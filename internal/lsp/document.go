package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/tree"
)

// document is an open text buffer and its most recent parse.
type document struct {
	uri     string
	path    string
	version int32
	text    string
	lines   *lineIndex

	// page and forest are nil when the last parse failed.
	page   *elements.Page
	forest *tree.Forest
}

// pathFromURI converts a file URI to a local path. Other URIs are used
// verbatim so that syntax detection still sees their extension.
func pathFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return filepath.FromSlash(u.Path)
}

// uriFromPath converts a local path to a file URI.
func uriFromPath(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// open parses text and stores it as the document for uri, replacing any
// previous version.
func (s *Server) open(uri string, version int32, text string) (*document, error) {
	doc := &document{
		uri:     uri,
		path:    pathFromURI(uri),
		version: version,
		text:    text,
		lines:   newLineIndex(text),
	}

	result, err := s.loader.LoadContent(s.requestContext(), doc.path, []byte(text))
	if err == nil {
		doc.page = result.Page
		doc.forest = tree.FromPage(result.Page, s.alloc)
	}

	s.mu.Lock()
	if old, ok := s.docs[uri]; ok && old.forest != nil {
		old.forest.Close()
	}
	s.docs[uri] = doc
	s.mu.Unlock()

	if err != nil {
		return doc, fmt.Errorf("parse %s: %w", uri, err)
	}
	s.logger.Debug("parsed document",
		logging.FieldURI, uri,
		logging.FieldVersion, version,
		logging.FieldElements, doc.page.Len(),
		logging.FieldCacheHit, result.Cached,
	)
	return doc, nil
}

func (s *Server) close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok {
		if doc.forest != nil {
			doc.forest.Close()
		}
		delete(s.docs, uri)
	}
}

func (s *Server) document(uri string) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// applyChange returns text with one content change applied.
func applyChange(text string, change any) (string, error) {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text, nil
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return c.Text, nil
		}
		lines := newLineIndex(text)
		start := lines.offset(c.Range.Start)
		end := lines.offset(c.Range.End)
		if end < start {
			return "", fmt.Errorf("invalid range %v", *c.Range)
		}
		var b strings.Builder
		b.Grow(len(text) - (end - start) + len(c.Text))
		b.WriteString(text[:start])
		b.WriteString(c.Text)
		b.WriteString(text[end:])
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported content change %T", change)
	}
}
