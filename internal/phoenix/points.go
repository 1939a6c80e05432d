package phoenix

import (
	"context"
	"fmt"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/domain"
)

// GetPoint returns a point by id. Uncached: single-point reads back the
// moderation tooling, which must see fresh status.
func (s *Service) GetPoint(ctx context.Context, id int64) (*domain.Point, error) {
	p, err := s.points.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get point %d: %w", id, err)
	}
	return p, nil
}

// ListPoints returns all points.
func (s *Service) ListPoints(ctx context.Context) ([]domain.Point, error) {
	key := cache.PointsKey()
	if points, ok := cache.Lookup[[]domain.Point](s.entities, key); ok {
		return points, nil
	}

	points, err := s.points.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}

	cacheWrite(s, ctx, s.entities, key, points)
	return points, nil
}

// ListPointsByService returns all points belonging to a service regardless
// of approval status.
func (s *Service) ListPointsByService(ctx context.Context, serviceID int64) ([]domain.Point, error) {
	key := cache.PointsByServiceKey(serviceID)
	if points, ok := cache.Lookup[[]domain.Point](s.entities, key); ok {
		return points, nil
	}

	points, err := s.points.ListByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list points by service %d: %w", serviceID, err)
	}

	cacheWrite(s, ctx, s.entities, key, points)
	return points, nil
}

// PointExists reports whether a point with the given id exists, cached
// consistently with the entity lookup path.
func (s *Service) PointExists(ctx context.Context, id int64) (bool, error) {
	key := cache.PointExistsKey(id)
	if exists, ok := cache.Lookup[bool](s.entities, key); ok {
		return exists, nil
	}

	exists, err := s.points.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("point exists %d: %w", id, err)
	}

	cacheWrite(s, ctx, s.entities, key, exists)
	return exists, nil
}
