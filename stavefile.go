//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/govimwiki"
	mainPkg = "./cmd/govimwiki"
)

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"bp":  Bench.Parse,
	"fz":  Fuzz.All,
	"sm":  Smoke,
}

type (
	Test  st.Namespace
	Fuzz  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// fuzzTargets maps a short name to a fuzz function and its package.
var fuzzTargets = []struct {
	name, fn, pkg string
}{
	{"vimwiki", "FuzzParsePage", "./pkg/parser/vimwiki"},
	{"markdown", "FuzzParse", "./pkg/parser/markdown"},
	{"edit", "FuzzApply", "./pkg/edit"},
}

// Build compiles bin/govimwiki when any source changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return goBuild(binary, nil)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Smoke builds the binary and runs the page commands against a scratch page.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "govimwiki-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	page := filepath.Join(dir, "index.wiki")
	body := "= Smoke =\n\n* [ ] first\n    * [ ] nested\n* [X] second\n\n[[other page]] :tag:\n"
	if err := os.WriteFile(page, []byte(body), 0o600); err != nil {
		return err
	}

	bin, err := filepath.Abs(binary)
	if err != nil {
		return err
	}
	steps := [][]string{
		{"parse", "--json", page},
		{"find", "--line", "3", "--column", "4", page},
		{"todo", "--line", "3", "--column", "4", "--dry-run", page},
		{"stats", page},
	}
	for _, args := range steps {
		fmt.Println("$ govimwiki", strings.Join(args, " "))
		if err := sh.RunV(bin, args...); err != nil {
			return fmt.Errorf("govimwiki %s: %w", args[0], err)
		}
	}
	return nil
}

// Clean removes build and coverage output.
func Clean() error {
	for _, p := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version ldflags.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Coverage renders coverage.out as HTML.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// All runs every fuzz target for STAVE_FUZZ_TIME each (default 20s).
func (Fuzz) All() error {
	for _, ft := range fuzzTargets {
		if err := runFuzz(ft.name); err != nil {
			return err
		}
	}
	return nil
}

// One runs a single fuzz target by short name: vimwiki, markdown or edit.
func (Fuzz) One(name string) error {
	return runFuzz(name)
}

func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI lints without --fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg")
}

// FmtCheck fails when gofmt would rewrite any file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate is the full pipeline run by CI.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.Tidy, CI.Cross, Smoke)
}

// Tidy fails when go mod tidy changes go.mod or go.sum.
func (CI) Tidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum is not tidy")
	}
	return nil
}

// Cross compiles for each release platform.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Println("building", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := goBuild(os.DevNull, env); err != nil {
			return fmt.Errorf("%s: %w", platform, err)
		}
	}
	return nil
}

func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench=.", "-benchmem", "./...")
}

// Parse benchmarks the span combinators, both parsers and language detection.
func (Bench) Parse() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench=.", "-benchmem",
		"./pkg/span/...", "./pkg/parser/...", "./pkg/langdetect/...")
}

func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...")
}

func runFuzz(name string) error {
	for _, ft := range fuzzTargets {
		if ft.name != name {
			continue
		}
		dur := cmp.Or(os.Getenv("STAVE_FUZZ_TIME"), "20s")
		fmt.Printf("fuzzing %s (%s) for %s\n", ft.fn, ft.pkg, dur)
		return sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+ft.fn+"$", "-fuzztime", dur, ft.pkg)
	}
	return fmt.Errorf("unknown fuzz target %q", name)
}

func goBuild(out string, env map[string]string) error {
	return sh.RunWith(env, "go", "build", "-ldflags", ldflags(), "-o", out, mainPkg)
}

func readModFiles() (string, error) {
	var sb strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", err
		}
		sb.Write(data)
	}
	return sb.String(), nil
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-s -w -X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}
