package phoenix

import (
	"context"
	"fmt"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/domain"
)

// GetCase returns a case by id.
// Returns domain.ErrNotFound when the case does not exist.
func (s *Service) GetCase(ctx context.Context, id int64) (*domain.Case, error) {
	key := cache.CaseKey(id)
	if c, ok := cache.Lookup[domain.Case](s.entities, key); ok {
		return &c, nil
	}

	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get case %d: %w", id, err)
	}

	cacheWrite(s, ctx, s.entities, key, *c)
	return c, nil
}

// ListCases returns all cases ordered by id. With fresh set the cache is
// bypassed in both directions: the store is queried and the snapshot is not
// written back.
func (s *Service) ListCases(ctx context.Context, fresh bool) ([]domain.Case, error) {
	key := cache.CasesKey()
	if !fresh {
		if result, ok := cache.Lookup[[]domain.Case](s.entities, key); ok {
			return result, nil
		}
	}

	result, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	if !fresh {
		cacheWrite(s, ctx, s.entities, key, result)
	}
	return result, nil
}
