package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/IvanShishkin/webtrail/internal/diff"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint
var Version = "dev"

// ChangesetSource is the read side of the changeset store
type ChangesetSource interface {
	diff.Source
	Users() ([]string, error)
}

// Server serves stored changesets and diffs over HTTP
type Server struct {
	source ChangesetSource
	engine *diff.Engine
	logger *zap.Logger
	mode   diff.Mode
	addr   string
}

// NewServer creates a server listening on the given port
func NewServer(source ChangesetSource, port int, mode diff.Mode, logger *zap.Logger) *Server {
	if mode == "" {
		mode = diff.ModeChar
	}
	return &Server{
		source: source,
		engine: diff.NewEngine(source),
		logger: logger,
		mode:   mode,
		addr:   fmt.Sprintf(":%d", port),
	}
}

// Handler builds the routed handler wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/users", s.handleUsers)
	mux.HandleFunc("GET /api/v1/users/{user}/changesets", s.handleChangesets)
	mux.HandleFunc("GET /api/v1/users/{user}/changesets/{id}", s.handleChangeset)
	mux.HandleFunc("GET /api/v1/users/{user}/diff/latest", s.handleDiffLatest)
	mux.HandleFunc("GET /api/v1/users/{user}/diff/{a}/{b}", s.handleDiff)

	mux.HandleFunc("GET /history/{user}", s.handleHistoryPage)
	mux.HandleFunc("GET /diff/{user}/{a}/{b}", s.handleDiffPage)

	return requestLogger(s.logger)(mux)
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}
