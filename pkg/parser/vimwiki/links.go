package vimwiki

import (
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// link parses any link form, trying the most specific first.
func link(s span.Span) (span.Span, elements.Link, error) {
	return span.Context("link", span.Alt(
		externalFileLink,
		diaryLink,
		interWikiLink,
		wikiLink,
		rawLink,
		transclusionLink,
	))(s)
}

// wikiParts is the decomposed body of a "[[...]]" link.
type wikiParts struct {
	path        string
	anchors     []string
	description *elements.Description
}

func description(text string) *elements.Description {
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "{{") && strings.HasSuffix(text, "}}") && len(text) > 4 {
		return &elements.Description{URI: text[2 : len(text)-2]}
	}
	return &elements.Description{Text: text}
}

func optionalDescription(s span.Span) (span.Span, *elements.Description, error) {
	rest, desc, ok := span.Try(s, span.Preceded(span.Char('|'), span.TakeLineUntil1("]]")))
	if !ok {
		return s, nil, nil
	}
	return rest, description(desc.Remaining()), nil
}

// wikiLinkParts parses "[[path#anchor#anchor|description]]". Either a path
// or an anchor is required.
func wikiLinkParts(s span.Span) (span.Span, wikiParts, error) {
	rest, _, err := span.Tag("[[")(s)
	if err != nil {
		return s, wikiParts{}, err
	}

	var parts wikiParts
	if next, path, ok := span.Try(rest, span.TakeLineUntilOneOf1("|", "#", "]]")); ok {
		parts.path = path.Remaining()
		rest = next
	}

	anchor := span.Preceded(span.Char('#'), span.TakeLineUntilOneOf("#", "|", "]]"))
	rest, anchors, err := span.Many0(span.Map(anchor, spanText))(rest)
	if err != nil {
		return s, wikiParts{}, err
	}
	parts.anchors = anchors

	if parts.path == "" && len(parts.anchors) == 0 {
		return s, wikiParts{}, span.Fail(rest, "link path or anchor")
	}

	rest, parts.description, _ = optionalDescription(rest)

	rest, _, err = span.Tag("]]")(rest)
	if err != nil {
		return s, wikiParts{}, err
	}
	return rest, parts, nil
}

// wikiLink parses a link to a page of the current wiki.
func wikiLink(s span.Span) (span.Span, elements.Link, error) {
	return span.Map(wikiLinkParts, func(p wikiParts) elements.Link {
		return elements.Link{
			LinkKind:    elements.LinkWiki,
			Path:        p.path,
			Anchors:     p.anchors,
			Description: p.description,
		}
	})(s)
}

// diaryLink parses "[[diary:2024-01-31]]".
func diaryLink(s span.Span) (span.Span, elements.Link, error) {
	return span.MapRes(wikiLinkParts, func(p wikiParts) (elements.Link, error) {
		date, ok := strings.CutPrefix(p.path, "diary:")
		if !ok {
			return elements.Link{}, span.ErrNoMatch
		}
		t, err := time.Parse(elements.DiaryDateLayout, date)
		if err != nil {
			return elements.Link{}, err
		}
		return elements.Link{
			LinkKind:    elements.LinkDiary,
			Date:        t,
			Anchors:     p.anchors,
			Description: p.description,
		}, nil
	}, "diary link")(s)
}

// interWikiLink parses "[[wiki1:path]]" and "[[wn.Name:path]]".
func interWikiLink(s span.Span) (span.Span, elements.Link, error) {
	return span.MapRes(wikiLinkParts, func(p wikiParts) (elements.Link, error) {
		l := elements.Link{Anchors: p.anchors, Description: p.description}

		if rest, ok := strings.CutPrefix(p.path, "wiki"); ok {
			digits, path, found := strings.Cut(rest, ":")
			idx, err := strconv.Atoi(digits)
			if !found || err != nil || idx < 0 || path == "" {
				return elements.Link{}, span.ErrNoMatch
			}
			l.LinkKind, l.WikiIndex, l.Path = elements.LinkInterWikiIndexed, idx, path
			return l, nil
		}

		if rest, ok := strings.CutPrefix(p.path, "wn."); ok {
			name, path, found := strings.Cut(rest, ":")
			if !found || name == "" || path == "" {
				return elements.Link{}, span.ErrNoMatch
			}
			l.LinkKind, l.WikiName, l.Path = elements.LinkInterWikiNamed, name, path
			return l, nil
		}

		return elements.Link{}, span.ErrNoMatch
	}, "interwiki link")(s)
}

// externalFileLink parses "[[local:path]]", "[[file:path]]" and "[[//path]]".
func externalFileLink(s span.Span) (span.Span, elements.Link, error) {
	rest, _, err := span.Tag("[[")(s)
	if err != nil {
		return s, elements.Link{}, err
	}

	rest, scheme, err := span.Alt(span.Tag("local:"), span.Tag("file:"), span.Tag("//"))(rest)
	if err != nil {
		return s, elements.Link{}, err
	}

	rest, path, err := span.TakeLineUntilOneOf1("|", "]]")(rest)
	if err != nil {
		return s, elements.Link{}, err
	}

	l := elements.Link{LinkKind: elements.LinkExternalFile, Path: path.Remaining()}
	if scheme == "//" {
		l.Path = "/" + l.Path
	} else {
		l.Scheme = strings.TrimSuffix(scheme, ":")
	}

	rest, l.Description, _ = optionalDescription(rest)
	rest, _, err = span.Tag("]]")(rest)
	if err != nil {
		return s, elements.Link{}, err
	}
	return rest, l, nil
}

//nolint:gochecknoglobals // Fixed set.
var rawSchemes = []string{"https", "http", "ftp", "file", "local", "mailto"}

func isURIChar(s span.Span) (span.Span, span.Unit, error) {
	return span.Not(span.OneOf(" \t"))(s)
}

// rawLink parses a bare URI such as "https://example.com".
// "www." is shorthand for "https://www.".
func rawLink(s span.Span) (span.Span, elements.Link, error) {
	if s.HasPrefix("www.") {
		rest, addr, err := span.TakeLineWhile1(isURIChar)(s)
		if err != nil {
			return s, elements.Link{}, err
		}
		return rest, elements.Link{LinkKind: elements.LinkRaw, Scheme: "https", Path: "//" + addr.Remaining()}, nil
	}

	for _, scheme := range rawSchemes {
		rest, _, err := span.Tag(scheme + ":")(s)
		if err != nil {
			continue
		}
		if scheme != "mailto" && !rest.HasPrefix("//") {
			continue
		}
		rest, path, err := span.TakeLineWhile1(isURIChar)(rest)
		if err != nil || path.Remaining() == "//" {
			continue
		}
		return rest, elements.Link{LinkKind: elements.LinkRaw, Scheme: scheme, Path: path.Remaining()}, nil
	}

	return s, elements.Link{}, span.Fail(s, "raw link")
}

func splitScheme(uri string) (scheme, path string) {
	before, after, found := strings.Cut(uri, ":")
	if !found || before == "" {
		return "", uri
	}
	for _, r := range before {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "", uri
		}
	}
	return strings.ToLower(before), after
}

// property parses `key="value"`.
func property(s span.Span) (span.Span, [2]string, error) {
	rest, _, _ := span.Space0(s)
	rest, key, err := span.TakeLineUntilOneOf1("=", "|", "}}")(rest)
	if err != nil {
		return s, [2]string{}, err
	}
	rest, _, err = span.Tag(`="`)(rest)
	if err != nil {
		return s, [2]string{}, err
	}
	rest, value, err := span.TakeLineUntil(`"`)(rest)
	if err != nil {
		return s, [2]string{}, err
	}
	rest, _, err = span.Char('"')(rest)
	if err != nil {
		return s, [2]string{}, err
	}
	rest, _, _ = span.Space0(rest)
	return rest, [2]string{strings.TrimSpace(key.Remaining()), value.Remaining()}, nil
}

// transclusionLink parses `{{uri|description|key="value"}}`.
func transclusionLink(s span.Span) (span.Span, elements.Link, error) {
	rest, _, err := span.Tag("{{")(s)
	if err != nil {
		return s, elements.Link{}, err
	}

	rest, uri, err := span.TakeLineUntilOneOf1("|", "}}")(rest)
	if err != nil {
		return s, elements.Link{}, err
	}

	l := elements.Link{LinkKind: elements.LinkTransclusion}
	l.Scheme, l.Path = splitScheme(strings.TrimSpace(uri.Remaining()))

	// The description is positional and may be empty; it is only taken
	// when it is not itself a property.
	if next, desc, ok := span.Try(rest, span.Preceded(span.Char('|'), span.TakeLineUntilOneOf("|", "}}"))); ok &&
		!span.Matches(rest.Advance(1), property) {
		l.Description = description(strings.TrimSpace(desc.Remaining()))
		rest = next
	}

	rest, props, err := span.Many0(span.Preceded(span.Char('|'), property))(rest)
	if err != nil {
		return s, elements.Link{}, err
	}
	if len(props) > 0 {
		l.Properties = make(map[string]string, len(props))
		for _, kv := range props {
			l.Properties[kv[0]] = kv[1]
		}
	}

	rest, _, err = span.Tag("}}")(rest)
	if err != nil {
		return s, elements.Link{}, err
	}
	return rest, l, nil
}
