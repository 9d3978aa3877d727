package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpAdapter "github.com/aretw0/typedclass/pkg/adapters/http"
	"github.com/aretw0/typedclass/pkg/class"
)

// ShutdownTimeout bounds the graceful shutdown of RunServe.
const ShutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Addr     string
	Version  string
	Gatherer prometheus.Gatherer
}

// RunServe serves the registry until ctx is cancelled, then shuts down gracefully.
func RunServe(ctx context.Context, w io.Writer, reg *class.Registry, logger *slog.Logger, opts ServeOptions) error {
	handler := httpAdapter.NewHandler(reg,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithVersion(opts.Version),
		httpAdapter.WithGatherer(opts.Gatherer),
	)

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	fmt.Fprintf(w, "Serving %d structures on %s\n", len(reg.Names()), srv.Addr)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Fprintln(w, "Server stopped gracefully")
		return nil
	}
}
