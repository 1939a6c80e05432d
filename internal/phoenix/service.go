// Package phoenix is the cache-augmented data-access layer over the Phoenix
// store. Every read accessor consults a cache tier under a deterministic
// pg_* key before touching Postgres and writes the result back with the
// tier's TTL. Cached entries are immutable snapshots: mutations do not evict
// them, so readers can observe stale data until the TTL runs out.
package phoenix

import (
	"context"
	"log/slog"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/config"
	"github.com/tosdr/phoenix/internal/domain"
)

type serviceRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	SearchByName(ctx context.Context, name string) ([]domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, params domain.ServiceCreate) (int64, error)
}

type documentRepo interface {
	ListByService(ctx context.Context, serviceID int64) ([]domain.Document, error)
	Create(ctx context.Context, params domain.DocumentCreate) (int64, error)
}

type pointRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Point, error)
	List(ctx context.Context) ([]domain.Point, error)
	ListByService(ctx context.Context, serviceID int64) ([]domain.Point, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type caseRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
	List(ctx context.Context) ([]domain.Case, error)
}

type topicRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Topic, error)
	List(ctx context.Context) ([]domain.Topic, error)
}

type auditRepo interface {
	Create(ctx context.Context, v domain.Version) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the Phoenix read accessors, export assembly and
// create-only mutations. All dependencies are injected once at the
// composition root; there is no lazily-initialized global state.
type Service struct {
	services  serviceRepo
	documents documentRepo
	points    pointRepo
	cases     caseRepo
	topics    topicRepo
	audit     auditRepo
	tx        txManager

	entities *cache.Cache // per-entity tier, 15m
	exports  *cache.Cache // assembled-export tier, 1h

	logoHost string
	logos    *LogoResolver

	log *slog.Logger
}

// NewService creates the Phoenix service.
func NewService(
	log *slog.Logger,
	services serviceRepo,
	documents documentRepo,
	points pointRepo,
	cases caseRepo,
	topics topicRepo,
	audit auditRepo,
	tx txManager,
	entities, exports *cache.Cache,
	assets config.AssetsConfig,
) *Service {
	return &Service{
		services:  services,
		documents: documents,
		points:    points,
		cases:     cases,
		topics:    topics,
		audit:     audit,
		tx:        tx,
		entities:  entities,
		exports:   exports,
		logoHost:  assets.LogoHost,
		logos:     NewLogoResolver(assets.ThemeDir, assets.Theme),
		log:       log.With("service", "phoenix"),
	}
}

// cacheWrite stores v under key, logging instead of failing on encode
// errors: on the store read path the cache is an optimization, not the
// success signal, so a failed write must not abort a read that already has
// its result. The legacy remote path has the opposite contract and does not
// use this helper.
func cacheWrite[T any](s *Service, ctx context.Context, c *cache.Cache, key string, v T) {
	if err := cache.Put(c, key, v); err != nil {
		s.log.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
