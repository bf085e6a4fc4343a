// Package assets serves the local assets directory over HTTP so that
// downloaded artifacts can be opened by URL.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/ytget/ytm-offline/internal/logging"
	"github.com/ytget/ytm-offline/internal/platform"
)

// PathPrefix is the URL prefix the assets directory is mounted at
const PathPrefix = "/assets/"

const shutdownTimeout = 5 * time.Second

// Server serves files below dir at PathPrefix
type Server struct {
	addr   string
	dir    string
	logger *logging.Logger

	mu       sync.Mutex
	srv      *nethttp.Server
	listener net.Listener
}

// NewServer creates a server for dir listening on addr, e.g. "127.0.0.1:5010"
func NewServer(addr, dir string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{addr: addr, dir: dir, logger: logger}
}

// Handler returns the HTTP handler. Directory listings are not served.
func (s *Server) Handler() nethttp.Handler {
	files := nethttp.StripPrefix(PathPrefix, nethttp.FileServer(nethttp.Dir(s.dir)))

	mux := nethttp.NewServeMux()
	mux.HandleFunc(PathPrefix, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet && r.Method != nethttp.MethodHead {
			nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		if len(r.URL.Path) > 0 && r.URL.Path[len(r.URL.Path)-1] == '/' {
			nethttp.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
	return mux
}

// Start listens on the configured address and serves in the background.
// It returns the bound address.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return "", errors.New("assets server already started")
	}
	if err := platform.CreateDirectoryIfNotExists(s.dir); err != nil {
		return "", fmt.Errorf("failed to create assets directory: %w", err)
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.srv = &nethttp.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srv := s.srv
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("assets server stopped")
		}
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Str("dir", s.dir).Msg("serving assets")
	return ln.Addr().String(), nil
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
	}
	return srv.Shutdown(ctx)
}
