// Package elements defines the vimwiki document model: block and inline
// elements, list items and their todo state, and the page that holds them.
package elements

import (
	"encoding/json"
	"fmt"
)

// Kind classifies an element.
type Kind uint16

// Element kinds for block-level, inline-level and supporting nodes.
const (
	KindUnknown Kind = iota

	// Block-level elements.
	KindHeader
	KindParagraph
	KindList
	KindDefinitionList
	KindTable
	KindCodeBlock
	KindMathBlock
	KindBlockquote
	KindDivider
	KindPlaceholder
	KindComment

	// Inline-level elements.
	KindText
	KindDecoratedText
	KindLink
	KindCodeInline
	KindMathInline
	KindTags
	KindKeyword

	// Nodes that only appear nested inside a block.
	KindListItem
	KindCell
	KindTerm
	KindDefinition
)

//nolint:gochecknoglobals // Lookup table.
var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindHeader:         "header",
	KindParagraph:      "paragraph",
	KindList:           "list",
	KindDefinitionList: "definition_list",
	KindTable:          "table",
	KindCodeBlock:      "code_block",
	KindMathBlock:      "math_block",
	KindBlockquote:     "blockquote",
	KindDivider:        "divider",
	KindPlaceholder:    "placeholder",
	KindComment:        "comment",
	KindText:           "text",
	KindDecoratedText:  "decorated_text",
	KindLink:           "link",
	KindCodeInline:     "code_inline",
	KindMathInline:     "math_inline",
	KindTags:           "tags",
	KindKeyword:        "keyword",
	KindListItem:       "list_item",
	KindCell:           "cell",
	KindTerm:           "term",
	KindDefinition:     "definition",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// ParseKind converts a kind name back into a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// IsBlock returns true if the kind is a block-level element.
func (k Kind) IsBlock() bool {
	switch k {
	case KindHeader, KindParagraph, KindList, KindDefinitionList, KindTable,
		KindCodeBlock, KindMathBlock, KindBlockquote, KindDivider,
		KindPlaceholder, KindComment:
		return true
	default:
		return false
	}
}

// IsInline returns true if the kind is an inline-level element.
// Comments are both block and inline.
func (k Kind) IsInline() bool {
	switch k {
	case KindText, KindDecoratedText, KindLink, KindCodeInline,
		KindMathInline, KindTags, KindKeyword, KindComment:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown element kind %q", name)
	}
	*k = parsed
	return nil
}
