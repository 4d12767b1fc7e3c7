package vimwiki

import (
	"errors"
	"testing"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
)

func FuzzParsePage(f *testing.F) {
	for _, seed := range []string{
		"",
		"= Title =\n",
		"* [ ] one\n    - [X] two\n",
		"| a | b |\n|---|---|\n| > | \\/ |\n",
		"{{{python\nprint(1)\n}}}\n",
		"[[link|desc]] {{img.png}} :tag:",
		"term:: def\n:: more\n",
		"%%+ block\ncomment +%%\n",
		"%title Home\n%date 2026-01-02\n",
		"*bold _italic_* ~~gone~~ ^sup^ ,,sub,, $x^2$",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		page, err := ParsePage(text)
		if err != nil {
			if !errors.Is(err, ErrParse) {
				t.Fatalf("ParsePage() error = %v, want ErrParse", err)
			}
			return
		}

		_ = elements.WalkPage(page, func(e located.Located[elements.Element], _ int) error {
			if e.Region.Offset < 0 || e.Region.EndOffset() > len(text) {
				t.Errorf("%s region %s outside input of length %d", e.Value.Kind(), e.Region, len(text))
			}
			return nil
		})
	})
}
