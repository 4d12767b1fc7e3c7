package lsp

import (
	"errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/edit"
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/todo"
)

// textDocumentCodeAction offers checkbox edits for the list item at the
// start of the requested range.
func (s *Server) textDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok || doc.page == nil || s.loader.SyntaxFor(doc.path) != config.SyntaxVimwiki {
		return nil, nil //nolint:nilnil // no actions outside vimwiki pages
	}

	content := []byte(doc.text)
	offset := doc.lines.offset(params.Range.Start)

	toggle, err := todo.Toggle(content, doc.page, offset)
	if errors.Is(err, todo.ErrNoListItem) {
		return nil, nil //nolint:nilnil // not on a list item
	}
	if err != nil {
		return nil, err
	}

	actions := []protocol.CodeAction{doc.codeAction("Toggle todo", toggle)}
	if reject, err := todo.Set(content, doc.page, offset, elements.TodoRejected); err == nil {
		actions = append(actions, doc.codeAction("Reject todo", reject))
	}
	s.logger.Debug("code actions", logging.FieldURI, doc.uri, logging.FieldOffset, offset, "count", len(actions))
	return actions, nil
}

func (d *document) codeAction(title string, edits []edit.TextEdit) protocol.CodeAction {
	kind := protocol.CodeActionKindRefactorRewrite
	changes := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		changes = append(changes, protocol.TextEdit{
			Range:   d.lines.rangeOf(located.NewRegion(e.Start, e.Len())),
			NewText: e.NewText,
		})
	}
	return protocol.CodeAction{
		Title: title,
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{d.uri: changes},
		},
	}
}
