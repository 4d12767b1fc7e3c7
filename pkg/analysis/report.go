package analysis

import "time"

// Report contains pre-computed statistics for a set of pages.
// Computed once by Analyze and used by every renderer.
type Report struct {
	Pages  []PageAnalysis `json:"pages,omitempty"`
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Failed lists the paths that could not be loaded.
	Failed []string `json:"failed,omitempty"`

	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Totals aggregates across all pages.
type Totals struct {
	Pages     int `json:"pages"`
	Failed    int `json:"failed"`
	Cached    int `json:"cached"`
	Elements  int `json:"elements"`
	Headers   int `json:"headers"`
	Links     int `json:"links"`
	Todos     int `json:"todos"`
	TodosDone int `json:"todosDone"`
}

// Progress returns the fraction of completed todos, or 0 without todos.
func (t Totals) Progress() float64 {
	if t.Todos == 0 {
		return 0
	}
	return float64(t.TodosDone) / float64(t.Todos)
}

// OutlineEntry is one header of a page.
type OutlineEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

// TodoStats summarizes the todo items of a page.
type TodoStats struct {
	Total int `json:"total"`
	Done  int `json:"done"`

	// Progress is the mean completion of the top-level todo items of
	// every list, with nested items folded into their parents.
	Progress float64 `json:"progress"`
}

// PageAnalysis holds the statistics of one page.
type PageAnalysis struct {
	Path     string `json:"path"`
	Syntax   string `json:"syntax"`
	Cached   bool   `json:"cached,omitempty"`
	Elements int    `json:"elements"`

	// Kinds counts every node of the page by kind name.
	Kinds map[string]int `json:"kinds"`

	// Links counts links by link kind name.
	Links map[string]int `json:"links,omitempty"`

	// Tags lists the distinct tag names in first-seen order.
	Tags []string `json:"tags,omitempty"`

	Todos   TodoStats      `json:"todos"`
	Outline []OutlineEntry `json:"outline,omitempty"`

	// CodeLanguages counts code blocks by language. Untagged blocks are
	// counted under the detected language when detection is enabled.
	CodeLanguages map[string]int `json:"codeLanguages,omitempty"`

	// Title is the value of a %title placeholder, if any.
	Title string `json:"title,omitempty"`
}

// KindAnalysis counts one element kind across pages.
type KindAnalysis struct {
	Kind  string   `json:"kind"`
	Count int      `json:"count"`
	Pages []string `json:"pages,omitempty"`
}
