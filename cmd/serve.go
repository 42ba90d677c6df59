package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"go-plantcare/config"
	"go-plantcare/metrics"
	"go-plantcare/routes"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd runs the HTTP API until interrupted.
func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve listens until ctx is cancelled, then shuts down gracefully.
func (a *app) serve(ctx context.Context) error {
	if !a.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Init()

	db, err := config.OpenDB(a.cfg, a.log)
	if err != nil {
		return err
	}
	defer db.Close()

	src, err := a.catalogSource(db)
	if err != nil {
		return err
	}

	router := routes.SetupRouter(routes.Deps{
		DB:        db,
		Catalog:   src,
		Advisor:   a.advisor,
		Log:       a.log,
		JWTSecret: a.cfg.JWTSecret,
		TokenTTL:  a.cfg.TokenTTL,
	})

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Infow("server listening", "addr", srv.Addr, "catalog_source", a.cfg.Catalog.Source)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
