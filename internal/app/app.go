// Package app wires the process together: configuration, logging, the store
// pool, the cache tiers and the phoenix service.
package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/adapter/postgres/audit"
	"github.com/tosdr/phoenix/internal/adapter/postgres/cases"
	"github.com/tosdr/phoenix/internal/adapter/postgres/document"
	"github.com/tosdr/phoenix/internal/adapter/postgres/point"
	"github.com/tosdr/phoenix/internal/adapter/postgres/service"
	"github.com/tosdr/phoenix/internal/adapter/postgres/topic"
	"github.com/tosdr/phoenix/internal/adapter/remote"
	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/config"
	"github.com/tosdr/phoenix/internal/phoenix"
)

// App holds the wired process dependencies.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Pool    *pgxpool.Pool
	Phoenix *phoenix.Service
	Legacy  *remote.Client
}

// New loads configuration and builds the full dependency graph. The returned
// App owns the pool; callers must Close it when done.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting phoenix",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	entities := cache.New(cfg.Cache.Capacity, cfg.Cache.NumShards, cache.EntityTTL)
	exports := cache.New(cfg.Cache.Capacity, cfg.Cache.NumShards, cache.ExportTTL)

	svc := phoenix.NewService(
		logger,
		service.New(pool),
		document.New(pool),
		point.New(pool),
		cases.New(pool),
		topic.New(pool),
		audit.New(pool),
		postgres.NewTxManager(pool),
		entities, exports,
		cfg.Assets,
	)

	legacy := remote.NewClient(
		cfg.Phoenix,
		remote.NewTiers(cfg.Cache.Capacity, cfg.Cache.NumShards),
		logger,
	)

	return &App{
		Config:  cfg,
		Log:     logger,
		Pool:    pool,
		Phoenix: svc,
		Legacy:  legacy,
	}, nil
}

// Close releases the store pool.
func (a *App) Close() {
	a.Pool.Close()
}
