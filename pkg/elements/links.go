package elements

import (
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// LinkKind distinguishes the link forms.
type LinkKind int

// Link forms, in the order the parser tries them.
const (
	LinkWiki LinkKind = iota
	LinkInterWikiIndexed
	LinkInterWikiNamed
	LinkDiary
	LinkRaw
	LinkExternalFile
	LinkTransclusion
)

// String returns the link kind name.
func (k LinkKind) String() string {
	switch k {
	case LinkWiki:
		return "wiki"
	case LinkInterWikiIndexed:
		return "interwiki_indexed"
	case LinkInterWikiNamed:
		return "interwiki_named"
	case LinkDiary:
		return "diary"
	case LinkRaw:
		return "raw"
	case LinkExternalFile:
		return "external_file"
	case LinkTransclusion:
		return "transclusion"
	default:
		return "unknown"
	}
}

// Description is the visible label of a link. Exactly one field is set.
type Description struct {
	Text string `json:"text,omitempty"`
	URI  string `json:"uri,omitempty"`
}

// DiaryDateLayout is the date format of diary links and %date placeholders.
const DiaryDateLayout = "2006-01-02"

// Link is any hyperlink. Which fields are meaningful depends on LinkKind:
//
//   - Wiki and interwiki links use Path and Anchors.
//   - Interwiki links also set WikiIndex or WikiName.
//   - Diary links set Date and may carry Anchors.
//   - Raw, external file and transclusion links set Scheme and Path.
//   - Transclusions may carry Properties.
type Link struct {
	LinkKind    LinkKind          `json:"link_kind"`
	Scheme      string            `json:"scheme,omitempty"`
	Path        string            `json:"path,omitempty"`
	Anchors     []string          `json:"anchors,omitempty"`
	Description *Description      `json:"description,omitempty"`
	WikiIndex   int               `json:"wiki_index,omitempty"`
	WikiName    string            `json:"wiki_name,omitempty"`
	Date        time.Time         `json:"date,omitzero"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// Kind implements Element.
func (Link) Kind() Kind { return KindLink }

// Children returns nil.
func (Link) Children() []located.Located[Element] { return nil }

// Target reconstructs the link destination as written, without the
// description.
func (l Link) Target() string {
	var b strings.Builder
	switch l.LinkKind {
	case LinkInterWikiIndexed:
		b.WriteString("wiki" + strconv.Itoa(l.WikiIndex) + ":")
		b.WriteString(l.Path)
	case LinkInterWikiNamed:
		b.WriteString("wn." + l.WikiName + ":")
		b.WriteString(l.Path)
	case LinkDiary:
		b.WriteString("diary:" + l.Date.Format(DiaryDateLayout))
	case LinkWiki:
		b.WriteString(l.Path)
	default:
		return l.URI()
	}
	for _, a := range l.Anchors {
		b.WriteString("#" + a)
	}
	return b.String()
}

// URI returns scheme and path joined for links that carry a scheme.
func (l Link) URI() string {
	if l.Scheme == "" {
		return l.Path
	}
	return l.Scheme + ":" + l.Path
}

// Anchor returns the anchor segments joined with "#".
func (l Link) Anchor() string {
	return strings.Join(l.Anchors, "#")
}

// IsLocal reports whether the link points inside a wiki.
func (l Link) IsLocal() bool {
	switch l.LinkKind {
	case LinkWiki, LinkInterWikiIndexed, LinkInterWikiNamed, LinkDiary:
		return true
	default:
		return false
	}
}
