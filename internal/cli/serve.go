package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-telegram/internal/adapter/http"
	"github.com/spf13/cobra"
)

func newServeCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the report queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *CLI) serve(parent context.Context) error {
	rt := c.runtime
	logger := rt.Logger

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpadapter.NewServer(rt.Config.HTTPAddr, rt.Pipeline, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Readiness flips once the telegrams are loaded.
	if err := rt.Pipeline.Load(ctx); err != nil {
		logger.Error("initial load failed, serving not ready", "error", err)
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("http server error", "error", serveErr)
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.Config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return serveErr
}
