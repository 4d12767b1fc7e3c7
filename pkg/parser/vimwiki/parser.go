// Package vimwiki parses vimwiki markup into the elements document model.
package vimwiki

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// ErrParse is returned when a page cannot be parsed in full. It wraps the
// positioned *span.Error describing what was expected.
var ErrParse = errors.New("vimwiki parse failed")

// Parser parses vimwiki pages.
type Parser struct{}

// New creates a vimwiki parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts raw vimwiki bytes into a page.
// Returns nil and an error if parsing fails or ctx is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*elements.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	page, err := ParsePage(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.FromContext(ctx).Debug("parsed page",
		logging.FieldPath, path,
		logging.FieldSyntax, "vimwiki",
		logging.FieldElements, page.Len(),
	)
	return page, nil
}

// ParsePage parses a whole page. Blank lines between blocks are dropped.
func ParsePage(text string) (*elements.Page, error) {
	s := span.New(text)
	page := &elements.Page{Elements: elements.BlockElements{}}

	for !s.IsEmpty() {
		if rest, _, ok := span.Try(s, span.BlankLine); ok {
			s = rest
			continue
		}

		rest, block, err := blockElement(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if rest.Offset() == s.Offset() {
			return nil, fmt.Errorf("%w: %w", ErrParse, span.Fail(s, "progress"))
		}

		page.Elements = append(page.Elements, block)
		s = rest
	}

	return page, nil
}
