package elements

import (
	"strconv"
	"strings"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// ListItemType is the marker style of a list item.
type ListItemType int

// List item marker styles.
const (
	ItemHyphen ListItemType = iota
	ItemAsterisk
	ItemOther
	ItemNumber
	ItemPound
	ItemLowercaseAlphabet
	ItemUppercaseAlphabet
	ItemLowercaseRoman
	ItemUppercaseRoman
)

// String returns the marker style name.
func (t ListItemType) String() string {
	switch t {
	case ItemHyphen:
		return "hyphen"
	case ItemAsterisk:
		return "asterisk"
	case ItemOther:
		return "other"
	case ItemNumber:
		return "number"
	case ItemPound:
		return "pound"
	case ItemLowercaseAlphabet:
		return "lowercase_alphabet"
	case ItemUppercaseAlphabet:
		return "uppercase_alphabet"
	case ItemLowercaseRoman:
		return "lowercase_roman"
	case ItemUppercaseRoman:
		return "uppercase_roman"
	default:
		return "unknown"
	}
}

// IsOrdered returns true for numbered, lettered and roman styles.
func (t ListItemType) IsOrdered() bool { return t >= ItemNumber }

// IsUnordered returns true for bullet styles.
func (t ListItemType) IsUnordered() bool { return !t.IsOrdered() }

// IsAlphabetic returns true for lettered styles.
func (t ListItemType) IsAlphabetic() bool {
	return t == ItemLowercaseAlphabet || t == ItemUppercaseAlphabet
}

// IsRoman returns true for roman numeral styles.
func (t ListItemType) IsRoman() bool {
	return t == ItemLowercaseRoman || t == ItemUppercaseRoman
}

// ListItemSuffix is the punctuation following an ordered marker.
type ListItemSuffix int

// Marker suffixes.
const (
	SuffixNone ListItemSuffix = iota
	SuffixPeriod
	SuffixParen
)

// String returns the suffix as it is written.
func (s ListItemSuffix) String() string {
	switch s {
	case SuffixPeriod:
		return "."
	case SuffixParen:
		return ")"
	default:
		return ""
	}
}

// TodoStatus is the checkbox state of a list item.
type TodoStatus int

// Checkbox states.
const (
	TodoNone TodoStatus = iota
	TodoIncomplete
	TodoPartiallyComplete1
	TodoPartiallyComplete2
	TodoPartiallyComplete3
	TodoComplete
	TodoRejected
)

// String returns the checkbox as it is written.
func (s TodoStatus) String() string {
	switch s {
	case TodoIncomplete:
		return "[ ]"
	case TodoPartiallyComplete1:
		return "[.]"
	case TodoPartiallyComplete2:
		return "[o]"
	case TodoPartiallyComplete3:
		return "[O]"
	case TodoComplete:
		return "[X]"
	case TodoRejected:
		return "[-]"
	default:
		return ""
	}
}

// Progress returns the completion fraction of the status. Rejected and
// absent statuses have none.
func (s TodoStatus) Progress() (float64, bool) {
	switch s {
	case TodoIncomplete:
		return 0.0, true
	case TodoPartiallyComplete1:
		return 0.25, true
	case TodoPartiallyComplete2:
		return 0.5, true
	case TodoPartiallyComplete3:
		return 0.75, true
	case TodoComplete:
		return 1.0, true
	default:
		return 0, false
	}
}

// ListItemAttributes holds optional item metadata.
type ListItemAttributes struct {
	TodoStatus TodoStatus `json:"todo_status,omitempty"`
}

// ListItemContent is either a line of inline content or a nested list.
type ListItemContent interface {
	isListItemContent()
}

func (InlineElementContainer) isListItemContent() {}
func (List) isListItemContent()                   {}

// ListItemContents is the sequence of contents of a list item.
type ListItemContents []located.Located[ListItemContent]

// ListItem is one entry of a list.
type ListItem struct {
	Type       ListItemType       `json:"type"`
	Suffix     ListItemSuffix     `json:"suffix,omitempty"`
	Pos        int                `json:"pos"`
	Marker     string             `json:"marker,omitempty"`
	Contents   ListItemContents   `json:"contents"`
	Attributes ListItemAttributes `json:"attributes"`
}

// Kind implements Element.
func (ListItem) Kind() Kind { return KindListItem }

// Children returns the inline elements of each content line and each
// nested list, in order.
func (li ListItem) Children() []located.Located[Element] {
	var out []located.Located[Element]
	for _, c := range li.Contents {
		switch v := c.Value.(type) {
		case InlineElementContainer:
			out = append(out, v.Elements.Elements()...)
		case List:
			out = append(out, located.New[Element](v, c.Region))
		}
	}
	return out
}

func (ListItem) isElement() {}

// IsOrdered returns true if the item has an ordered marker.
func (li ListItem) IsOrdered() bool { return li.Type.IsOrdered() }

// IsUnordered returns true if the item has a bullet marker.
func (li ListItem) IsUnordered() bool { return li.Type.IsUnordered() }

// Prefix renders the marker for the item's position.
func (li ListItem) Prefix() string {
	return RenderPrefix(li.Type, li.Pos, li.Suffix, li.Marker)
}

// InlineContents returns the inline content lines, skipping sublists.
func (li ListItem) InlineContents() []InlineElementContainer {
	var out []InlineElementContainer
	for _, c := range li.Contents {
		if v, ok := c.Value.(InlineElementContainer); ok {
			out = append(out, v)
		}
	}
	return out
}

// Sublists returns the nested lists of the item.
func (li ListItem) Sublists() []List {
	var out []List
	for _, c := range li.Contents {
		if v, ok := c.Value.(List); ok {
			out = append(out, v)
		}
	}
	return out
}

// IsTodo returns true if the item has a checkbox.
func (li ListItem) IsTodo() bool { return li.Attributes.TodoStatus != TodoNone }

// IsTodoIncomplete returns true for "[ ]".
func (li ListItem) IsTodoIncomplete() bool {
	return li.Attributes.TodoStatus == TodoIncomplete
}

// IsTodoPartiallyComplete1 returns true for "[.]".
func (li ListItem) IsTodoPartiallyComplete1() bool {
	return li.Attributes.TodoStatus == TodoPartiallyComplete1
}

// IsTodoPartiallyComplete2 returns true for "[o]".
func (li ListItem) IsTodoPartiallyComplete2() bool {
	return li.Attributes.TodoStatus == TodoPartiallyComplete2
}

// IsTodoPartiallyComplete3 returns true for "[O]".
func (li ListItem) IsTodoPartiallyComplete3() bool {
	return li.Attributes.TodoStatus == TodoPartiallyComplete3
}

// IsTodoComplete returns true for "[X]".
func (li ListItem) IsTodoComplete() bool {
	return li.Attributes.TodoStatus == TodoComplete
}

// IsTodoRejected returns true for "[-]".
func (li ListItem) IsTodoRejected() bool {
	return li.Attributes.TodoStatus == TodoRejected
}

// TodoProgress computes the completion of the item. When any item of any
// nested list reports progress, the result is the mean across all of them;
// otherwise it is the item's own status.
func (li ListItem) TodoProgress() (float64, bool) {
	var sum float64
	var count int
	for _, sub := range li.Sublists() {
		for _, item := range sub.Items {
			if p, ok := item.Value.TodoProgress(); ok {
				sum += p
				count++
			}
		}
	}
	if count > 0 {
		return sum / float64(count), true
	}
	return li.Attributes.TodoStatus.Progress()
}

// List is a sequence of items sharing one indentation.
type List struct {
	Items []located.Located[ListItem] `json:"items"`
}

// Kind implements Element.
func (List) Kind() Kind { return KindList }

// Children returns the list's items.
func (l List) Children() []located.Located[Element] {
	out := make([]located.Located[Element], 0, len(l.Items))
	for _, item := range l.Items {
		out = append(out, located.Upcast[ListItem, Element](item))
	}
	return out
}

func (List) isElement() {}

// Len returns the number of items.
func (l List) Len() int { return len(l.Items) }

// IsOrdered returns true if the first item is ordered.
func (l List) IsOrdered() bool { return len(l.Items) > 0 && l.Items[0].Value.IsOrdered() }

// IsUnordered returns true if the first item is unordered.
func (l List) IsUnordered() bool { return len(l.Items) > 0 && l.Items[0].Value.IsUnordered() }

// Normalize assigns sequential positions to the items and reconciles
// their marker types.
//
// Single letters such as "i" or "c" are both valid roman numerals and
// valid letters, so lettered and roman lists are decided across the whole
// list: the list is roman only when every marker is the roman numeral of
// its position. Any other list adopts the type of its first item.
func (l *List) Normalize() {
	for i := range l.Items {
		l.Items[i].Value.Pos = i
	}
	if len(l.Items) == 0 {
		return
	}

	ambiguous := false
	for _, item := range l.Items {
		if item.Value.Type.IsRoman() || item.Value.Type.IsAlphabetic() {
			ambiguous = true
			break
		}
	}

	if !ambiguous {
		head := l.Items[0].Value.Type
		for i := range l.Items[1:] {
			l.Items[i+1].Value.Type = head
		}
		return
	}

	roman := true
	for _, item := range l.Items {
		if !isRomanFor(item.Value.Marker, item.Value.Pos) {
			roman = false
			break
		}
	}

	for i := range l.Items {
		item := &l.Items[i].Value
		if !item.Type.IsRoman() && !item.Type.IsAlphabetic() {
			continue
		}
		upper := isUpperMarker(item.Marker)
		switch {
		case roman && upper:
			item.Type = ItemUppercaseRoman
		case roman:
			item.Type = ItemLowercaseRoman
		case upper:
			item.Type = ItemUppercaseAlphabet
		default:
			item.Type = ItemLowercaseAlphabet
		}
	}
}

func isRomanFor(marker string, pos int) bool {
	if marker == "" {
		return false
	}
	if isUpperMarker(marker) {
		return marker == strings.ToUpper(PosToRoman(pos))
	}
	return marker == PosToRoman(pos)
}

func isUpperMarker(marker string) bool {
	return marker != "" && marker[0] >= 'A' && marker[0] <= 'Z'
}

// RenderPrefix renders a list marker for pos, the zero-based position of
// the item. marker is only used by ItemOther.
func RenderPrefix(t ListItemType, pos int, suffix ListItemSuffix, marker string) string {
	var base string
	switch t {
	case ItemHyphen:
		return "-"
	case ItemAsterisk:
		return "*"
	case ItemOther:
		base = marker
	case ItemNumber:
		base = strconv.Itoa(pos + 1)
	case ItemPound:
		return "#"
	case ItemLowercaseAlphabet:
		base = PosToAlphabet(pos)
	case ItemUppercaseAlphabet:
		base = strings.ToUpper(PosToAlphabet(pos))
	case ItemLowercaseRoman:
		base = PosToRoman(pos)
	case ItemUppercaseRoman:
		base = strings.ToUpper(PosToRoman(pos))
	}
	return base + suffix.String()
}

// PosToAlphabet converts a zero-based position into bijective base-26
// letters: 0 is "a", 25 is "z", 26 is "aa".
func PosToAlphabet(pos int) string {
	if pos < 0 {
		return ""
	}
	var buf []byte
	for i := pos; ; {
		buf = append(buf, byte('a'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return string(buf)
}

//nolint:gochecknoglobals // Lookup table.
var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// PosToRoman converts a zero-based position into the lowercase roman
// numeral for pos+1.
func PosToRoman(pos int) string {
	n := pos + 1
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
