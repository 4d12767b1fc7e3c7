// Package langdetect guesses the language of code blocks that carry no
// language tag. go-enry does the heavy lifting; a few cheap textual
// signatures run first because the classifier is unreliable on snippets.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// classifierCandidates restricts the classifier to languages commonly
// pasted into notes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile", "Vim Script", "TeX",
}

// signature is a fast textual test for one language.
type signature struct {
	lang  string
	match func(content []byte, trimmed []byte) bool
}

func hasPrefix(prefixes ...string) func([]byte, []byte) bool {
	return func(_ []byte, trimmed []byte) bool {
		for _, p := range prefixes {
			if bytes.HasPrefix(trimmed, []byte(p)) {
				return true
			}
		}
		return false
	}
}

func containsAll(words ...string) func([]byte, []byte) bool {
	return func(content []byte, _ []byte) bool {
		for _, w := range words {
			if !bytes.Contains(content, []byte(w)) {
				return false
			}
		}
		return true
	}
}

func anyOf(fns ...func([]byte, []byte) bool) func([]byte, []byte) bool {
	return func(content, trimmed []byte) bool {
		for _, fn := range fns {
			if fn(content, trimmed) {
				return true
			}
		}
		return false
	}
}

var (
	pythonImport = regexp.MustCompile(`(?m)^(from \S+ )?import \w`)
	sqlStatement = regexp.MustCompile(`(?i)^\s*(select|insert|update|delete|create)\s`)
	yamlKey      = regexp.MustCompile(`^[\w.-]+:(\s|$)`)
	vimCommand   = regexp.MustCompile(`(?m)^\s*(set|let|nnoremap|noremap|autocmd|function!?)\s`)
)

// signatures are tried in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var signatures = []signature{
	{"go", hasPrefix("package ")},
	{"python", anyOf(
		containsAll("def ", "):"),
		containsAll("__name__"),
		func(c, _ []byte) bool { return !bytes.Contains(c, []byte("import (")) && pythonImport.Match(c) },
	)},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", anyOf(
		hasPrefix("FROM "),
		containsAll("\nFROM ", "\nRUN "),
		containsAll("WORKDIR ", "COPY "),
	)},
	{"sql", func(c, _ []byte) bool { return sqlStatement.Match(c) }},
	{"rust", anyOf(containsAll("fn main()"), containsAll("println!"), containsAll("let mut "))},
	{"vim", func(c, _ []byte) bool { return len(vimCommand.FindAll(c, 2)) >= 2 }},
	{"tex", anyOf(hasPrefix(`\begin{`), containsAll(`\frac{`), containsAll(`\documentclass`))},
	{"javascript", anyOf(
		containsAll("=>"), containsAll("const "), containsAll("let "), containsAll("console.log"),
	)},
	{"yaml", func(c, _ []byte) bool { return yamlish(c) }},
}

// Detect returns the language of content as a lowercase fence tag, or
// Text when it cannot tell.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, sig := range signatures {
		if sig.match(content, trimmed) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Text
}

// DetectLines is Detect over the lines of a code block.
func DetectLines(lines []string) string {
	return Detect([]byte(strings.Join(lines, "\n")))
}

// Canonical maps a user-written language tag such as "py" or "sh" to the
// fence tag Detect would produce, trying language aliases and then file
// extensions. Unknown tags are lowercased.
func Canonical(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByExtension("block." + tag); safe {
		return normalize(lang)
	}
	return strings.ToLower(tag)
}

// yamlish counts key: value lines and root-level list items.
func yamlish(content []byte) bool {
	n := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if yamlKey.Match(line) && !bytes.ContainsAny(line, "({") {
			n++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			n++
		}
	}
	return n >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "Vim Script":
		return "vim"
	default:
		return strings.ToLower(lang)
	}
}
