// Package analysis computes page statistics from parsed pages: element
// counts, todo progress, header outlines and code languages.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/langdetect"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// AnalyzePage computes the statistics of a single page.
func AnalyzePage(path, syntax string, page *elements.Page, opts Options) PageAnalysis {
	pa := PageAnalysis{
		Path:   path,
		Syntax: syntax,
		Kinds:  make(map[string]int),
	}
	if page == nil {
		return pa
	}
	pa.Elements = page.Len()

	seenTags := make(map[string]bool)
	_ = elements.WalkPage(page, func(e located.Located[elements.Element], _ int) error {
		pa.Kinds[e.Value.Kind().String()]++

		switch v := e.Value.(type) {
		case elements.Header:
			if opts.IncludeOutline {
				pa.Outline = append(pa.Outline, OutlineEntry{
					Level: v.Level,
					Text:  v.Content.PlainText(),
					Line:  e.Region.Start.Line,
				})
			}
		case elements.Link:
			if pa.Links == nil {
				pa.Links = make(map[string]int)
			}
			pa.Links[v.LinkKind.String()]++
		case elements.Tags:
			for _, name := range v.Names {
				if !seenTags[name] {
					seenTags[name] = true
					pa.Tags = append(pa.Tags, name)
				}
			}
		case elements.ListItem:
			if _, ok := v.Attributes.TodoStatus.Progress(); ok {
				pa.Todos.Total++
				if v.IsTodoComplete() {
					pa.Todos.Done++
				}
			}
		case elements.CodeBlock:
			lang := langdetect.Canonical(v.Language)
			if lang == "" && opts.DetectLanguages {
				lang = langdetect.DetectLines(v.Lines)
			}
			if lang != "" {
				if pa.CodeLanguages == nil {
					pa.CodeLanguages = make(map[string]int)
				}
				pa.CodeLanguages[lang]++
			}
		case elements.Placeholder:
			if v.PlaceholderKind == elements.PlaceholderTitle && pa.Title == "" {
				pa.Title = v.Value
			}
		}
		return nil
	})

	pa.Todos.Progress = pageProgress(page)
	return pa
}

// pageProgress averages the progress of the items of every top-level
// list that reports one.
func pageProgress(page *elements.Page) float64 {
	var sum float64
	var n int
	for _, block := range page.Elements {
		list, ok := block.Value.(elements.List)
		if !ok {
			continue
		}
		for _, item := range list.Items {
			if p, ok := item.Value.TodoProgress(); ok {
				sum += p
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Analyze transforms a runner.Result into a Report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	kindPages := make(map[string]map[string]bool)
	kindCounts := make(map[string]int)

	for _, file := range result.Files {
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		if file.Error != nil {
			report.Totals.Failed++
			report.Failed = append(report.Failed, displayPath)
			continue
		}

		pa := AnalyzePage(displayPath, file.Syntax, file.Page, opts)
		pa.Cached = file.Cached

		report.Totals.Pages++
		if file.Cached {
			report.Totals.Cached++
		}
		report.Totals.Elements += pa.Elements
		report.Totals.Headers += pa.Kinds[elements.KindHeader.String()]
		report.Totals.Links += pa.Kinds[elements.KindLink.String()]
		report.Totals.Todos += pa.Todos.Total
		report.Totals.TodosDone += pa.Todos.Done

		for kind, n := range pa.Kinds {
			kindCounts[kind] += n
			if kindPages[kind] == nil {
				kindPages[kind] = make(map[string]bool)
			}
			kindPages[kind][displayPath] = true
		}
		report.Pages = append(report.Pages, pa)
	}

	sortPages(report.Pages, opts.SortBy, opts.SortDesc)

	if opts.IncludeByKind {
		report.ByKind = buildByKind(kindCounts, kindPages)
	}
	return report
}

func buildByKind(counts map[string]int, pages map[string]map[string]bool) []KindAnalysis {
	out := make([]KindAnalysis, 0, len(counts))
	for kind, n := range counts {
		ka := KindAnalysis{Kind: kind, Count: n}
		for p := range pages[kind] {
			ka.Pages = append(ka.Pages, p)
		}
		slices.Sort(ka.Pages)
		out = append(out, ka)
	}
	slices.SortFunc(out, func(left, right KindAnalysis) int {
		if c := cmp.Compare(right.Count, left.Count); c != 0 {
			return c
		}
		return cmp.Compare(left.Kind, right.Kind)
	})
	return out
}

func sortPages(pages []PageAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(pages, func(left, right PageAnalysis) int {
		c := sortBy.compare(left, right)
		if desc {
			c = -c
		}
		return cmp.Or(c, cmp.Compare(left.Path, right.Path))
	})
}
