// Package todo changes the checkbox state of list items in vimwiki page
// source.
//
// Changing an item to done or not done carries the new state down to
// every nested item that has a checkbox. Ancestors with a checkbox are
// then recomputed from the progress of their children, stopping at the
// first ancestor without one.
package todo

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/govimwiki/pkg/edit"
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
)

var (
	// ErrNoListItem is returned when no list item contains the offset.
	ErrNoListItem = errors.New("no list item at offset")
	// ErrInvalidStatus is returned for a status that cannot be written.
	ErrInvalidStatus = errors.New("invalid todo status")
)

// item mirrors a list item with a mutable status.
type item struct {
	region   located.Region
	box      int
	orig     elements.TodoStatus
	status   elements.TodoStatus
	parent   *item
	children []*item
}

// Toggle flips the item containing offset between done and not done. An
// item without a checkbox gets an empty one.
func Toggle(content []byte, page *elements.Page, offset int) ([]edit.TextEdit, error) {
	target, err := locate(content, page, offset)
	if err != nil {
		return nil, err
	}
	next := elements.TodoComplete
	switch target.status {
	case elements.TodoNone, elements.TodoComplete:
		next = elements.TodoIncomplete
	}
	return apply(target, next), nil
}

// Set changes the item containing offset to status.
func Set(content []byte, page *elements.Page, offset int, status elements.TodoStatus) ([]edit.TextEdit, error) {
	if status == elements.TodoNone {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, "none")
	}
	target, err := locate(content, page, offset)
	if err != nil {
		return nil, err
	}
	return apply(target, status), nil
}

// StatusFor maps a completion fraction to the checkbox that displays it.
func StatusFor(progress float64) elements.TodoStatus {
	switch {
	case progress <= 0:
		return elements.TodoIncomplete
	case progress >= 1:
		return elements.TodoComplete
	case progress <= 1.0/3:
		return elements.TodoPartiallyComplete1
	case progress <= 2.0/3:
		return elements.TodoPartiallyComplete2
	default:
		return elements.TodoPartiallyComplete3
	}
}

// ParseStatus accepts a checkbox such as "[X]", its inner symbol, or
// one of the names todo, done and rejected.
func ParseStatus(s string) (elements.TodoStatus, error) {
	key := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	switch strings.ToLower(key) {
	case " ", "", "todo":
		return elements.TodoIncomplete, nil
	case ".":
		return elements.TodoPartiallyComplete1, nil
	case "x", "done":
		return elements.TodoComplete, nil
	case "-", "rejected":
		return elements.TodoRejected, nil
	}
	switch key {
	case "o":
		return elements.TodoPartiallyComplete2, nil
	case "O":
		return elements.TodoPartiallyComplete3, nil
	}
	return elements.TodoNone, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func apply(target *item, status elements.TodoStatus) []edit.TextEdit {
	target.status = status
	if status == elements.TodoComplete || status == elements.TodoIncomplete {
		target.propagateDown(status)
	}
	for p := target.parent; p != nil; p = p.parent {
		if p.status == elements.TodoNone || p.status == elements.TodoRejected {
			break
		}
		if progress, ok := p.childProgress(); ok {
			p.status = StatusFor(progress)
		}
	}

	b := edit.NewBuilder()
	root := target
	for root.parent != nil {
		root = root.parent
	}
	root.collectEdits(b)
	return b.Edits()
}

func (it *item) propagateDown(status elements.TodoStatus) {
	for _, c := range it.children {
		if c.status != elements.TodoNone && c.status != elements.TodoRejected {
			c.status = status
		}
		c.propagateDown(status)
	}
}

func (it *item) progress() (float64, bool) {
	if p, ok := it.childProgress(); ok {
		return p, true
	}
	return it.status.Progress()
}

func (it *item) childProgress() (float64, bool) {
	var sum float64
	var n int
	for _, c := range it.children {
		if p, ok := c.progress(); ok {
			sum += p
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func (it *item) collectEdits(b *edit.Builder) {
	if it.status != it.orig {
		if it.orig == elements.TodoNone {
			b.Insert(it.box, it.status.String()+" ")
		} else {
			b.Replace(it.box, it.box+len(it.orig.String()), it.status.String())
		}
	}
	for _, c := range it.children {
		c.collectEdits(b)
	}
}

// locate finds the innermost list item whose region contains offset.
func locate(content []byte, page *elements.Page, offset int) (*item, error) {
	var best *item
	var visit func(*item)
	visit = func(it *item) {
		if offset < it.region.Offset || offset >= it.region.Offset+it.region.Len {
			return
		}
		best = it
		for _, c := range it.children {
			visit(c)
		}
	}
	for _, block := range page.Elements {
		list, ok := block.Value.(elements.List)
		if !ok {
			continue
		}
		for _, it := range index(content, list, nil) {
			visit(it)
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w %d", ErrNoListItem, offset)
	}
	return best, nil
}

func index(content []byte, list elements.List, parent *item) []*item {
	out := make([]*item, 0, len(list.Items))
	for _, li := range list.Items {
		status := li.Value.Attributes.TodoStatus
		it := &item{
			region: li.Region,
			box:    checkboxOffset(content, li.Region.Offset),
			orig:   status,
			status: status,
			parent: parent,
		}
		for _, sub := range li.Value.Sublists() {
			it.children = append(it.children, index(content, sub, it)...)
		}
		out = append(out, it)
	}
	return out
}

// checkboxOffset returns where the checkbox of the item starting at
// offset is, or would be: just past the marker and its separator.
func checkboxOffset(content []byte, offset int) int {
	if offset >= len(content) {
		return offset
	}
	line := content[offset:]
	if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	sp := bytes.IndexByte(line, ' ')
	if sp < 0 {
		return offset + len(line)
	}
	return offset + sp + 1
}
