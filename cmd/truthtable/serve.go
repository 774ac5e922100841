package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dmath-truthtable/internal/observability"
	"dmath-truthtable/internal/server"
	"dmath-truthtable/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := web.InitMetrics(); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              a.cfg.ListenAddr,
				Handler:           server.NewRouter(web.NewHandler(a.client)),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, srv)
		},
	}

	cmd.Flags().String("listen-addr", "", "address to listen on (default :8080)")

	return cmd
}

// run serves until ctx is done, then shuts srv down gracefully.
func run(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)

	go func() {
		observability.Logger.Info("server started", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	observability.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
