package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"payment-reminder/internal/common/logger"
)

// Server runs the reminder listener and the admin listener side by side.
type Server struct {
	public          *http.Server
	admin           *http.Server
	shutdownTimeout time.Duration
	logger          logger.Logger
}

type Options struct {
	Address           string
	AdminAddress      string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

func New(opts Options, reminder, admin http.Handler, log logger.Logger) *Server {
	return &Server{
		public: &http.Server{
			Addr:              opts.Address,
			Handler:           reminder,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
		},
		admin: &http.Server{
			Addr:              opts.AdminAddress,
			Handler:           admin,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
		},
		shutdownTimeout: opts.ShutdownTimeout,
		logger:          log,
	}
}

// Run serves until ctx is cancelled or a listener fails, then shuts both
// listeners down within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	for _, srv := range []*http.Server{s.public, s.admin} {
		go func(srv *http.Server) {
			s.logger.Info("listening", map[string]interface{}{"address": srv.Addr})
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listener %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received, stopping server...", nil)
	case runErr = <-errCh:
		s.logger.Error("listener failed", map[string]interface{}{"error": runErr})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	for _, srv := range []*http.Server{s.public, s.admin} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Error shutting down listener", map[string]interface{}{
				"address": srv.Addr,
				"error":   err,
			})
		}
	}
	return runErr
}
