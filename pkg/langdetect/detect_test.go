package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/govimwiki/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "shebang bash", content: "#!/bin/bash\necho hello", want: "bash"},
		{name: "shebang sh", content: "#!/bin/sh\necho hello", want: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", want: "python"},
		{name: "go", content: "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", want: "go"},
		{name: "python", content: "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", want: "python"},
		{name: "python import", content: "from os import path\nprint(path.sep)", want: "python"},
		{name: "javascript", content: "const x = () => { return 42; };\nconsole.log(x());", want: "javascript"},
		{name: "json", content: `{"key": "value", "number": 123}`, want: "json"},
		{name: "yaml", content: "key: value\nother: 123\nlist:\n  - item1\n  - item2", want: "yaml"},
		{name: "rust", content: "fn main() {\n    println!(\"Hello, world!\");\n}", want: "rust"},
		{name: "sql", content: "select * from users where id = 1;", want: "sql"},
		{name: "html", content: "<!DOCTYPE html>\n<html>\n<body></body>\n</html>", want: "html"},
		{name: "dockerfile", content: "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build", want: "dockerfile"},
		{name: "vim", content: "set nocompatible\nlet g:vimwiki_list = []\n", want: "vim"},
		{name: "tex", content: "\\begin{align}\nx = \\frac{a}{b}\n\\end{align}", want: "tex"},
		{name: "plain text", content: "just some text without any code patterns", want: "text"},
		{name: "empty", content: "", want: "text"},
		{name: "whitespace", content: "  \n\t\n", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Looks like Python but has a bash shebang.
	assert.Equal(t, "bash", langdetect.Detect([]byte("#!/bin/bash\ndef foo():\n    pass")))
}

func TestDetectLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go", langdetect.DetectLines([]string{"package wiki", "", "func x() {}"}))
	assert.Equal(t, langdetect.Text, langdetect.DetectLines(nil))
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"py":         "python",
		"sh":         "bash",
		"golang":     "go",
		"Go":         "go",
		" python ":   "python",
		"nosuchlang": "nosuchlang",
		"":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, langdetect.Canonical(in), "Canonical(%q)", in)
	}
}
