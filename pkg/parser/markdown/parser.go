// Package markdown parses Markdown with goldmark and maps the result onto
// the vimwiki element model.
package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/elements"
)

// Markdown flavors. FlavorWiki is GFM plus PHP Markdown Extra definition
// lists, which map onto vimwiki definition lists.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
	FlavorWiki       = "wiki"
)

// Parser is a goldmark front-end for one flavor. It is safe for
// concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. Unknown flavors parse as CommonMark.
func New(flavor string) *Parser {
	var exts []goldmark.Extender
	switch flavor {
	case FlavorGFM:
		exts = append(exts, extension.GFM)
	case FlavorWiki:
		exts = append(exts, extension.GFM, extension.DefinitionList)
	default:
		flavor = FlavorCommonMark
	}
	return &Parser{
		flavor: flavor,
		md:     goldmark.New(goldmark.WithExtensions(exts...)),
	}
}

// Flavor returns the flavor the parser was built for.
func (p *Parser) Flavor() string { return p.flavor }

// Parse maps content onto a page. The page never aliases content.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*elements.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	source := bytes.Clone(content)
	root := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	page := newMapper(source).mapDocument(root)

	logging.FromContext(ctx).Debug("parsed page",
		logging.FieldPath, path,
		logging.FieldSyntax, "markdown",
		logging.FieldFlavor, p.flavor,
		logging.FieldElements, page.Len(),
	)
	return page, nil
}
