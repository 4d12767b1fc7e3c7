package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/internal/cli"
	"github.com/yaklabco/govimwiki/pkg/analysis"
	"github.com/yaklabco/govimwiki/pkg/elements"
)

const indexPage = `%title Home
= Tasks =
* [X] write parser
* [ ] write docs
== Links ==
[[notes|Notes]] and https://example.com
`

const notesPage = `# Notes

- [x] one
- [ ] two
`

// writeWiki creates a small wiki and a config file that disables the
// cache. It returns the wiki directory and the config path.
func writeWiki(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.wiki"), []byte(indexPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte(notesPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644))

	cfgFile := filepath.Join(t.TempDir(), "govimwiki.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("cache:\n  backend: none\n"), 0o644))
	return dir, cfgFile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestIntegration_Parse(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	out, err := execute(t, "parse", "--config", cfg, filepath.Join(dir, "index.wiki"))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, filepath.Join(dir, "index.wiki"), lines[0])
	assert.Contains(t, out, "placeholder title")
	assert.Contains(t, out, `header 1 "Tasks"`)
	assert.Contains(t, out, "[X]")
	assert.Contains(t, out, "link wiki -> notes")
}

func TestIntegration_ParseJSON(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	out, err := execute(t, "parse", "--config", cfg, "--json",
		filepath.Join(dir, "index.wiki"), filepath.Join(dir, "notes.md"))
	require.NoError(t, err)

	var entries []struct {
		Path   string          `json:"path"`
		Syntax string          `json:"syntax"`
		Page   json.RawMessage `json:"page"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "vimwiki", entries[0].Syntax)
	assert.Equal(t, "markdown", entries[1].Syntax)

	page, err := elements.DecodePage(entries[0].Page)
	require.NoError(t, err)
	assert.Len(t, elements.FindByKind(page, elements.KindHeader), 2)
}

func TestIntegration_ParseMissingFile(t *testing.T) {
	t.Parallel()

	_, cfg := writeWiki(t)
	_, err := execute(t, "parse", "--config", cfg, filepath.Join(t.TempDir(), "missing.wiki"))
	require.ErrorIs(t, err, cli.ErrLoadFailures)
	assert.Equal(t, cli.ExitLoadFailures, cli.ExitCodeForError(err))
}

func TestIntegration_ParseStdin(t *testing.T) {
	t.Parallel()

	_, cfg := writeWiki(t)
	cmd := cli.NewRootCommand(testInfo)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetIn(strings.NewReader("== From stdin ==\n"))
	cmd.SetArgs([]string{"--color", "never", "parse", "--config", cfg, "-"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), `header 2 "From stdin"`)
}

func TestIntegration_Find(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	path := filepath.Join(dir, "index.wiki")
	offset := strings.Index(indexPage, "docs")

	out, err := execute(t, "find", "--config", cfg, "--offset", strconv.Itoa(offset), path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, path+"@"+strconv.Itoa(offset)+"\n"))
	assert.Contains(t, out, "▶ text")
	assert.Contains(t, out, "in list_item")

	byLine, err := execute(t, "find", "--config", cfg, "--line", "4", "--column", "13", path)
	require.NoError(t, err)
	assert.Contains(t, byLine, "in list_item")
}

func TestIntegration_FindUsage(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	_, err := execute(t, "find", "--config", cfg, filepath.Join(dir, "index.wiki"))
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, "find", "--config", cfg, "--offset", "1", "--line", "2", filepath.Join(dir, "index.wiki"))
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_Stats(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	out, err := execute(t, "stats", "--config", cfg, "--outline", "--summary", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "PAGE")
	assert.Contains(t, out, "index.wiki")
	assert.Contains(t, out, "notes.md")
	assert.NotContains(t, out, "readme.txt")
	assert.Contains(t, out, "2 pages")
	assert.Contains(t, out, `"Home"`)
	assert.Contains(t, out, "Files discovered:  2")
}

func TestIntegration_StatsJSON(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	out, err := execute(t, "stats", "--config", cfg, "--json", "--sort", "progress", dir)
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Totals.Pages)
	assert.Equal(t, 4, report.Totals.Todos)
	assert.Equal(t, 2, report.Totals.TodosDone)
	assert.NotEmpty(t, report.ByKind)
}

func TestIntegration_StatsInvalidSort(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	_, err := execute(t, "stats", "--config", cfg, "--sort", "size", dir)
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir, _ := writeWiki(t)
	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("syntax: asciidoc\n"), 0o644))

	_, err := execute(t, "stats", "--config", cfgFile, dir)
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeForError(err))
}

func TestIntegration_FileCache(t *testing.T) {
	t.Parallel()

	dir, _ := writeWiki(t)
	cacheDir := t.TempDir()
	cfgFile := filepath.Join(t.TempDir(), "govimwiki.yml")
	require.NoError(t, os.WriteFile(cfgFile,
		[]byte("cache:\n  backend: file\n  path: "+cacheDir+"\n"), 0o644))

	_, err := execute(t, "stats", "--config", cfgFile, dir)
	require.NoError(t, err)

	out, err := execute(t, "stats", "--config", cfgFile, "--json", dir)
	require.NoError(t, err)
	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Totals.Cached)

	pathOut, err := execute(t, "cache", "path", "--config", cfgFile)
	require.NoError(t, err)
	assert.Equal(t, cacheDir+"\n", pathOut)

	_, err = execute(t, "cache", "clear", "--config", cfgFile)
	require.NoError(t, err)

	out, err = execute(t, "stats", "--config", cfgFile, "--json", dir)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 0, report.Totals.Cached)
}

func TestIntegration_CacheBackendFlag(t *testing.T) {
	t.Parallel()

	_, cfg := writeWiki(t)
	out, err := execute(t, "cache", "path", "--config", cfg, "--cache-backend", "none")
	require.NoError(t, err)
	assert.Equal(t, "(caching disabled)\n", out)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "wiki.yml")

	_, err := execute(t, "init", "--output", output)
	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "syntax: vimwiki")

	_, err = execute(t, "init", "--output", output)
	require.Error(t, err, "existing file needs --force")

	_, err = execute(t, "init", "--output", output, "--force", "--format", "json")
	require.NoError(t, err)

	_, err = execute(t, "init", "--output", output, "--force", "--format", "toml")
	require.ErrorIs(t, err, cli.ErrUsage)

	jsonOutput := filepath.Join(t.TempDir(), "wiki.json")
	_, err = execute(t, "init", "--output", jsonOutput)
	require.NoError(t, err)
	data, err = os.ReadFile(jsonOutput)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"syntax": "vimwiki"`)
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Page Commands:")
	assert.Contains(t, out, "Editor Commands:")
	assert.Contains(t, out, "stats")
	assert.Contains(t, out, "--cache-backend")
}

func TestIntegration_Todo(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)
	path := filepath.Join(dir, "index.wiki")

	diff, err := execute(t, "todo", "--config", cfg, "--line", "4", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, diff, "-* [ ] write docs")
	assert.Contains(t, diff, "+* [X] write docs")

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, indexPage, string(unchanged))

	_, err = execute(t, "todo", "--config", cfg, "--line", "3", "--status", "rejected", path)
	require.NoError(t, err)
	updated, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(updated), "* [-] write parser\n* [ ] write docs\n")
}

func TestIntegration_TodoErrors(t *testing.T) {
	t.Parallel()

	dir, cfg := writeWiki(t)

	_, err := execute(t, "todo", "--config", cfg, "--line", "3", filepath.Join(dir, "notes.md"))
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, "todo", "--config", cfg, "--line", "2", filepath.Join(dir, "index.wiki"))
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, "todo", "--config", cfg, "--line", "3", "--status", "maybe", filepath.Join(dir, "index.wiki"))
	require.ErrorIs(t, err, cli.ErrUsage)
}
