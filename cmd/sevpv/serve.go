package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/OrHava/economy-project/internal/api"
	"github.com/OrHava/economy-project/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Serve the liability API. Runs are archived to --archive when set, otherwise
they are kept in memory until the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := a.newEngine()
			if err != nil {
				return err
			}
			archive, err := store.Open(a.settings.ArchivePath)
			if err != nil {
				return err
			}
			defer archive.Close()

			srv := api.NewServer(a.settings.Listen, api.NewHandler(engine, archive, a.logger))
			return a.serve(cmd.Context(), srv)
		},
	}

	cmd.Flags().String("listen", ":8080", "address to listen on")
	_ = a.v.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func (a *app) serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
