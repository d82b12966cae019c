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

	"securecheck-api/catalog"
	"securecheck-api/config"
	"securecheck-api/datasource"
	"securecheck-api/logging"
	"securecheck-api/metrics"
	"securecheck-api/models"
	"securecheck-api/server"
	"securecheck-api/services"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("securecheck api stopped")
		os.Exit(1)
	}
}

func run() error {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		return err
	}

	// Connect to database
	store, err := datasource.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	cat, err := catalog.FromConfig(cfg.Catalog, store.Dialect())
	if err != nil {
		return fmt.Errorf("load report catalog: %w", err)
	}
	log.Info().Int("reports", len(cat.Names())).Str("dialect", cat.Dialect()).Msg("report catalog loaded")

	// Redis is optional: without it reports are not cached and the
	// prediction feed is unavailable.
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("continuing without redis")
	}
	defer cache.Close()

	deps := server.Deps{
		Catalog:   cat,
		Ledger:    store,
		Cache:     cache,
		CORS:      cfg.CORS,
		ReportTTL: cfg.Redis.ReportTTL,
	}
	if cfg.JWT.Enabled {
		if err := store.DB().AutoMigrate(&models.User{}); err != nil {
			return fmt.Errorf("migrate users: %w", err)
		}
		deps.Auth = services.NewAuthService(cfg.JWT)
		deps.Users = store.DB()
	}

	router, err := server.NewRouter(deps)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Bool("auth", cfg.JWT.Enabled).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return metrics.Serve(ctx, cfg.Metrics.Addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
