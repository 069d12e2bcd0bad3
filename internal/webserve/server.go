// Package webserve serves the password reset page from a local directory.
// The root path and every /reset-password path resolve to reset-password.html,
// anything else is ordinary static file serving. Every response carries
// permissive CORS headers so the page can be exercised from other origins.
package webserve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 10 * time.Second

var errNotListening = errors.New("server is not listening")

// Server is a static file server for the reset page.
type Server struct {
	config ServerConfigOptions
	logger zerolog.Logger

	// root is resolved to an absolute path by Listen and never changes afterwards.
	root string

	listener net.Listener
	httpSrv  *http.Server
	stopOnce sync.Once
}

// New returns a Server. The logger is taken from ctx.
func New(ctx context.Context, config ConfigOptions) *Server {
	return &Server{
		config: config.ServerConfigOptions,
		logger: log.Ctx(ctx).With().Str("component", "webserve").Logger(),
		root:   config.Root,
	}
}

// Listen resolves the root directory and binds the listening address.
// Nothing is served until Serve is called.
func (s *Server) Listen() error {
	root, err := filepath.Abs(s.config.Root)
	if err != nil {
		return fmt.Errorf("could not resolve root %q: %w", s.config.Root, err)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("could not open root: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}
	s.root = root
	if _, err := os.Stat(filepath.Join(root, PageFile)); err != nil {
		s.logger.Warn().Err(err).Str("root", root).Msgf("%s is not readable, page requests will fail", PageFile)
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.logger.Info().Str("addr", ln.Addr().String()).Str("root", root).Msg("listening")
	return nil
}

// Serve blocks serving HTTP until Shutdown is called.
// A graceful shutdown is not an error.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errNotListening
	}
	if err := s.httpSrv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx is done. Idempotent.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		if s.httpSrv == nil {
			return
		}
		s.logger.Info().Msg("shutting down")
		if err = s.httpSrv.Shutdown(ctx); err != nil {
			err = fmt.Errorf("server shutdown failed: %w", err)
		}
		// Serve may never have taken ownership of the listener.
		if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = fmt.Errorf("could not close listener: %w", cerr)
		}
	})
	return err
}

// Handler returns the routed handler: access log and CORS headers around
// page rewriting and static file serving.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter().SkipClean(true)
	r.Use(accessLog(s.logger), cors)

	r.Methods(http.MethodGet, http.MethodHead).Handler(pageRewrite(http.FileServer(http.Dir(s.root))))
	r.Methods(http.MethodOptions).HandlerFunc(handlePreflight)
	// Catch-all so that middlewares also run for methods we do not serve.
	r.PathPrefix("/").HandlerFunc(handleUnsupported)

	s.logger.Debug().Str("root", s.root).Msg("registered HTTP handler")
	return r
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound port, which differs from the configured one when that was 0.
func (s *Server) Port() int {
	if addr, ok := s.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return s.config.Port
}

// URL returns the local URL of the page.
func (s *Server) URL() string {
	return "http://localhost:" + strconv.Itoa(s.Port())
}

// Root returns the directory files are served from.
func (s *Server) Root() string {
	return s.root
}
