package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds wiki files matching opts below the working directory.
// It returns sorted, de-duplicated absolute paths. Hidden files and
// directories are skipped unless named explicitly in opts.Paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	f, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	add := func(path string) {
		seen[path] = struct{}{}
	}

	for _, inputPath := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}
		if !info.IsDir() {
			if f.file(absPath) {
				add(absPath)
			}
			continue
		}
		if err := f.walk(ctx, absPath, add, map[string]struct{}{}); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// filter holds the compiled discovery criteria.
type filter struct {
	workDir        string
	extensions     []string
	include        []glob.Glob
	exclude        []glob.Glob
	followSymlinks bool
}

func newFilter(workDir string, opts Options) (*filter, error) {
	include, err := CompileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	exclude, err := CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return &filter{
		workDir:        workDir,
		extensions:     opts.Extensions,
		include:        include,
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
	}, nil
}

// CompileGlobs compiles slash-separated glob patterns where "*" stays
// within a path segment and "**" crosses segments.
func CompileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// rel returns path relative to the working directory, slash-separated.
func (f *filter) rel(path string) string {
	relPath, err := filepath.Rel(f.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// matchAny reports whether relPath or its base name matches a pattern.
func matchAny(globs []glob.Glob, relPath string) bool {
	base := relPath[strings.LastIndexByte(relPath, '/')+1:]
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

func (f *filter) file(path string) bool {
	if !slices.Contains(f.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	relPath := f.rel(path)
	if matchAny(f.exclude, relPath) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.include, relPath)
}

func (f *filter) skipDir(path string) bool {
	relPath := f.rel(path)
	return matchAny(f.exclude, relPath) || matchAny(f.exclude, relPath+"/")
}

// walk visits root recursively. visited holds resolved directory
// targets of followed symlinks so cycles terminate.
func (f *filter) walk(ctx context.Context, root string, add func(string), visited map[string]struct{}) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || (path != root && f.skipDir(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !f.followSymlinks {
					return nil
				}
				if _, ok := visited[target]; ok {
					return nil
				}
				visited[target] = struct{}{}
				return f.walk(ctx, target, add, visited)
			}
		}

		if f.file(path) {
			add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}
