package api

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"go-pipeline-builder/internal/api/handler"
	"go-pipeline-builder/internal/builder"
	"go-pipeline-builder/internal/config"
	"go-pipeline-builder/internal/logging"
	"go-pipeline-builder/internal/metrics"
	"go-pipeline-builder/internal/store"
	"go-pipeline-builder/pkg/router"
)

// NewRouter assembles the API router for cfg on top of st. The returned
// manager owns the builder sessions and must be swept by the caller.
func NewRouter(cfg config.AppConfig, st store.Store) (*router.Router, *builder.Manager) {
	sessions := builder.NewManager(cfg.Sessions.Max, cfg.Sessions.IdleTTLDuration())

	opts := []router.Option{router.WithLogger(logging.New("http"))}
	var rec handler.Recorder
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New(cfg.Metrics.Namespace)
		opts = append(opts, router.WithObserver(collector))
		rec = collector
	}

	r := router.New(opts...)
	RegisterRoutes(r, handler.New(sessions, st, rec))
	if collector != nil {
		MountMetrics(r, cfg.Metrics.Path, collector.Handler())
	}
	return r, sessions
}

// Serve runs the API until ctx is cancelled, then shuts the server down
// within the configured shutdown timeout.
func Serve(ctx context.Context, cfg config.AppConfig, st store.Store) error {
	log := logging.New("server")
	r, sessions := NewRouter(cfg, st)
	read, write, shutdown := cfg.Server.Timeouts()
	srv := r.Server(cfg.Server.Address, read, write)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Server.Address, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gCtx, cfg.Sessions.SweepEvery())
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down", "timeout", shutdown)
		sctx, cancel := context.WithTimeout(context.Background(), shutdown)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
