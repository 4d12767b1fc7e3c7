// Package lsp serves parsed wiki pages to editors over the Language
// Server Protocol.
package lsp

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple" // commonlog backend used by glsp
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/cache"
	"github.com/yaklabco/govimwiki/pkg/idalloc"
)

const serverName = "govimwiki"

// Options configures a Server.
type Options struct {
	// Version is reported to the client in the initialize response.
	Version string

	// Hover enables textDocument/hover.
	Hover bool

	// Debug turns on glsp's protocol tracing.
	Debug bool
}

// Server holds the open documents of one editor session.
type Server struct {
	loader  *cache.Loader
	alloc   *idalloc.Allocator
	opts    Options
	logger  *log.Logger
	handler *protocol.Handler

	mu   sync.RWMutex
	docs map[string]*document
}

// NewServer creates a server that parses documents through loader.
func NewServer(loader *cache.Loader, logger *log.Logger, opts Options) *Server {
	if loader == nil {
		loader = cache.NewLoader(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{
		loader: loader,
		alloc:  idalloc.NewAllocator(),
		opts:   opts,
		logger: logger,
		docs:   make(map[string]*document),
	}
	s.handler = &protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
		TextDocumentDocumentLink:   s.textDocumentDocumentLink,
		TextDocumentCodeAction:     s.textDocumentCodeAction,
	}
	if opts.Hover {
		s.handler.TextDocumentHover = s.textDocumentHover
	}
	return s
}

// Handler returns the protocol handler.
func (s *Server) Handler() *protocol.Handler { return s.handler }

// RunStdio serves the protocol on stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	verbosity := 0
	if s.opts.Debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	s.logger.Info("starting language server", logging.FieldVersion, s.opts.Version)
	return server.NewServer(s.handler, serverName, s.opts.Debug).RunStdio()
}

// requestContext returns a context carrying the server's logger. glsp does not
// pass one to handlers.
func (s *Server) requestContext() context.Context {
	return logging.WithLogger(context.Background(), s.logger)
}
