package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/typewire/typewire/internal/config"
	"github.com/typewire/typewire/internal/server"
	"github.com/typewire/typewire/pkg/cache"
	"github.com/typewire/typewire/pkg/store"
)

// newServeCmd creates the serve command for running the HTTP API.
// The server stores documents in MongoDB and serves rendered artifacts
// from the configured cache backend. It shuts down gracefully when the
// process receives an interrupt.
func newServeCmd() *cobra.Command {
	var configPath string
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the typewire HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (TOML)")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	return cmd
}

// newCache builds the cache backend selected by the configuration.
func newCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendFile:
		return cache.NewFileCache(cfg.Dir)
	case config.CacheBackendRedis:
		return cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// runServe connects the backends and serves until ctx is cancelled.
func runServe(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	st, err := store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("store close failed", "err", err)
		}
	}()

	c, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           server.New(st, c, logger, cfg.Cache.TTL.Duration).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", cfg.Server.Listen, "cache", cfg.Cache.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
