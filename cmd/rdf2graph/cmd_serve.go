package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/rdf2graph/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var preload string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if preload != "" {
				res, err := ingestFile(cmd, a, preload)
				if err != nil {
					return fmt.Errorf("preloading %s: %w", preload, err)
				}

				a.log.WithField("statements", res.Statements).Info("preload complete")
			}

			return serve(ctx, a)
		},
	}
	cmd.Flags().StringVar(&preload, "load", "", "N-Triples file to ingest before serving")

	return cmd
}

func serve(ctx context.Context, a *app) error {
	if a.log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	var checker api.HealthChecker
	if a.pool != nil {
		checker = a.pool
	}

	srv := &http.Server{
		Addr: a.cfg.Addr(),
		Handler: api.NewRouter(&api.RouterDeps{
			Log:         a.log,
			Graph:       a.session,
			Health:      checker,
			Namespaces:  a.ns,
			CORSOrigins: a.cfg.CORSOrigins,
			Version:     versionString(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"backend": a.cfg.StoreBackend,
		}).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.log.Info("shutting down")

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http: %w", err)
		}

		return nil
	})

	return g.Wait()
}
