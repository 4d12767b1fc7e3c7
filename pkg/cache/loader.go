package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/fsutil"
	"github.com/yaklabco/govimwiki/pkg/parser"
)

// Metrics counts loader outcomes.
type Metrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Corruptions   prometheus.Counter
	Parses        prometheus.Counter
	StoreFailures prometheus.Counter
}

// NewMetrics creates the loader counters and registers them with reg. A
// nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "govimwiki_cache_hits_total",
			Help: "Pages served from the cache without parsing",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "govimwiki_cache_misses_total",
			Help: "Pages not found in the cache",
		}),
		Corruptions: factory.NewCounter(prometheus.CounterOpts{
			Name: "govimwiki_cache_corruptions_total",
			Help: "Cache entries that failed to decode and were dropped",
		}),
		Parses: factory.NewCounter(prometheus.CounterOpts{
			Name: "govimwiki_pages_parsed_total",
			Help: "Pages parsed from source",
		}),
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "govimwiki_cache_store_failures_total",
			Help: "Parsed pages that could not be written to the cache",
		}),
	}
}

// Result is a loaded page.
type Result struct {
	Path   string
	Syntax string
	Page   *elements.Page
	Info   *fsutil.FileInfo

	// Cached is true when the page was decoded from the store.
	Cached bool
}

// Loader reads pages through a Store. Concurrent loads of the same path
// share one read and parse.
type Loader struct {
	store      Store
	metrics    *Metrics
	extensions map[string]string
	fallback   string
	flight     singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMetrics sets the counters updated by the loader.
func WithMetrics(m *Metrics) LoaderOption {
	return func(l *Loader) { l.metrics = m }
}

// WithExtensions maps file extensions to syntaxes, ahead of
// parser.DefaultExtensions.
func WithExtensions(exts map[string]string) LoaderOption {
	return func(l *Loader) { l.extensions = exts }
}

// WithDefaultSyntax sets the syntax of files with unknown extensions.
func WithDefaultSyntax(syntax string) LoaderOption {
	return func(l *Loader) { l.fallback = syntax }
}

// NewLoader creates a loader over store. A nil store caches nothing.
func NewLoader(store Store, opts ...LoaderOption) *Loader {
	if store == nil {
		store = NopStore{}
	}
	l := &Loader{
		store:    store,
		fallback: parser.SyntaxVimwiki,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.metrics == nil {
		l.metrics = NewMetrics(nil)
	}
	return l
}

// Store returns the underlying store.
func (l *Loader) Store() Store { return l.store }

// SyntaxFor returns the syntax the loader uses for path.
func (l *Loader) SyntaxFor(path string) string {
	return parser.SyntaxForPath(path, l.extensions, l.fallback)
}

// Load reads path and returns its page, from the store when an entry for
// the current content exists.
func (l *Loader) Load(ctx context.Context, path string) (*Result, error) {
	v, err, _ := l.flight.Do(path, func() (any, error) {
		content, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		return l.load(ctx, path, content, info)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// LoadContent returns the page for content as if it had been read from
// path. Editors use it for unsaved buffers.
func (l *Loader) LoadContent(ctx context.Context, path string, content []byte) (*Result, error) {
	info := &fsutil.FileInfo{
		Path:     path,
		Size:     int64(len(content)),
		Checksum: fsutil.Checksum(content),
	}
	return l.load(ctx, path, content, info)
}

func (l *Loader) load(ctx context.Context, path string, content []byte, info *fsutil.FileInfo) (*Result, error) {
	logger := logging.FromContext(ctx)
	syntax := l.SyntaxFor(path)
	key := Key(syntax, info.Checksum)
	result := &Result{Path: path, Syntax: syntax, Info: info}

	data, err := l.store.Get(ctx, key)
	switch {
	case err == nil:
		page, decodeErr := elements.DecodePage(data)
		if decodeErr == nil {
			l.metrics.Hits.Inc()
			logger.Debug("cache hit", logging.FieldPath, path, logging.FieldChecksum, info.Checksum)
			result.Page, result.Cached = page, true
			return result, nil
		}

		l.metrics.Corruptions.Inc()
		logger.Warn("dropping corrupt cache entry",
			logging.FieldPath, path,
			logging.FieldChecksum, info.Checksum,
			logging.FieldError, decodeErr,
		)
		if delErr := l.store.Delete(ctx, key); delErr != nil {
			logger.Warn("delete corrupt cache entry", logging.FieldError, delErr)
		}
	case errors.Is(err, ErrNotFound):
		l.metrics.Misses.Inc()
	default:
		return nil, fmt.Errorf("cache lookup %s: %w", path, err)
	}

	p, err := parser.ForSyntax(syntax)
	if err != nil {
		return nil, err
	}
	page, err := p.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}
	l.metrics.Parses.Inc()
	result.Page = page

	encoded, err := elements.EncodePage(page)
	if err != nil {
		return nil, fmt.Errorf("encode page %s: %w", path, err)
	}
	// A failed write only costs the next load a parse.
	if err := l.store.Put(ctx, key, encoded); err != nil {
		l.metrics.StoreFailures.Inc()
		logger.Warn("failed to write cache entry",
			logging.FieldPath, path,
			logging.FieldChecksum, info.Checksum,
			logging.FieldError, err,
		)
	}
	return result, nil
}
