// ABOUTME: Serve command running the REST API over HTTP.
// ABOUTME: Shuts down gracefully when the command context is cancelled.

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/harper/todo/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Serve the todo REST API until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = appCfg.Server.Addr
		}

		handler := api.NewHandler(todoSvc, logger)
		srv := &http.Server{
			Addr:         addr,
			Handler:      handler.Routes(),
			ReadTimeout:  appCfg.Server.ReadTimeout,
			WriteTimeout: appCfg.Server.WriteTimeout,
		}
		return runServer(cmd.Context(), srv, appCfg.Server.ShutdownTimeout)
	},
}

// runServer serves until ctx is done, then drains in-flight requests for up to timeout.
func runServer(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :4000)")
	rootCmd.AddCommand(serveCmd)
}
