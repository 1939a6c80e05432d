package phoenix

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tosdr/phoenix/internal/domain"
)

func testService(id int64, name string) domain.Service {
	return domain.Service{
		ID:                        id,
		Name:                      name,
		Slug:                      "slug-" + name,
		URL:                       "example.com,example.org",
		Rating:                    "N/A",
		IsComprehensivelyReviewed: false,
	}
}

func TestService_GetService_DerivedFields(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	svc := testService(42, "ToS;DR Test")
	deps.services.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Service, error) {
		assert.Equal(t, int64(42), id)
		return &svc, nil
	}
	s := deps.build()

	record, err := s.GetService(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "ToSDRTest", record.NiceService)
	assert.Equal(t, "42.png", record.Image)
	assert.Equal(t, "ToS;DR Test", record.Name)
}

func TestService_GetService_CachesRow(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	svc := testService(7, "Cached")
	deps.services.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Service, error) {
		return &svc, nil
	}
	s := deps.build()

	first, err := s.GetService(context.Background(), 7)
	require.NoError(t, err)
	second, err := s.GetService(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), deps.services.getByIDCalls.Load(), "second read must be a cache hit")
}

func TestService_GetService_NotFound(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	deps.services.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Service, error) {
		return nil, domain.ErrNotFound
	}
	s := deps.build()

	record, err := s.GetService(context.Background(), 404)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, record)
}

func TestService_GetService_StoreErrorNotCached(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	boom := errors.Join(domain.ErrStoreUnavailable, errors.New("connection refused"))
	deps.services.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Service, error) {
		return nil, boom
	}
	s := deps.build()

	_, err := s.GetService(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = s.GetService(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, int64(2), deps.services.getByIDCalls.Load(), "failed lookups must not be cached")
}

func TestService_GetServiceBySlug_CaseInsensitiveKey(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	svc := testService(3, "Slugged")
	calls := 0
	deps.services.GetBySlugFunc = func(ctx context.Context, slug string) (*domain.Service, error) {
		calls++
		return &svc, nil
	}
	s := deps.build()

	_, err := s.GetServiceBySlug(context.Background(), "Slug-Slugged")
	require.NoError(t, err)
	_, err = s.GetServiceBySlug(context.Background(), "slug-slugged")
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "differently-cased slugs share one cache entry")
}

func TestService_GetServiceByName_Uncached(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	svc := testService(9, "Fresh")
	calls := 0
	deps.services.GetByNameFunc = func(ctx context.Context, name string) (*domain.Service, error) {
		calls++
		return &svc, nil
	}
	s := deps.build()

	_, err := s.GetServiceByName(context.Background(), "Fresh")
	require.NoError(t, err)
	_, err = s.GetServiceByName(context.Background(), "Fresh")
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "name lookups bypass the cache")
}

func TestService_SearchServices_DecoratesOnCacheHit(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	matches := []domain.Service{testService(1, "Alpha One"), testService(2, "Alpha Two")}
	deps.services.SearchByNameFunc = func(ctx context.Context, name string) ([]domain.Service, error) {
		return matches, nil
	}
	s := deps.build()

	first, err := s.SearchServices(context.Background(), "alpha")
	require.NoError(t, err)
	second, err := s.SearchServices(context.Background(), "Alpha")
	require.NoError(t, err)

	assert.Equal(t, int64(1), deps.services.searchCalls.Load())
	require.Len(t, second, 2)
	assert.Equal(t, first, second, "decoration must be identical on hit and miss")
	assert.Equal(t, "AlphaOne", second[0].NiceService)
	assert.False(t, second[0].HasImage)
	assert.Equal(t, "/img/logo/AlphaOne.png", second[0].Image)
}

func TestService_ListServices_Cached(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	deps.services.ListFunc = func(ctx context.Context) ([]domain.Service, error) {
		return []domain.Service{testService(1, "A"), testService(2, "B")}, nil
	}
	s := deps.build()

	first, err := s.ListServices(context.Background())
	require.NoError(t, err)
	second, err := s.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), deps.services.listCalls.Load())
}

func TestService_ServiceExists_CachesOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		exists bool
	}{
		{name: "positive", exists: true},
		{name: "negative", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps := newTestDeps(t)
			calls := 0
			deps.services.ExistsByIDFunc = func(ctx context.Context, id int64) (bool, error) {
				calls++
				return tt.exists, nil
			}
			s := deps.build()

			got, err := s.ServiceExists(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)

			got, err = s.ServiceExists(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)
			assert.Equal(t, 1, calls, "both outcomes are cached, including the negative one")
		})
	}
}

func TestService_ListCases_FreshBypassesCache(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	deps.cases.ListFunc = func(ctx context.Context) ([]domain.Case, error) {
		return []domain.Case{{ID: 1, Title: "Tracks you", Classification: "bad", Score: 50}}, nil
	}
	s := deps.build()

	_, err := s.ListCases(context.Background(), true)
	require.NoError(t, err)
	_, err = s.ListCases(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deps.cases.listCalls.Load(), "fresh reads never consult the cache")

	// A fresh read must not have populated the cache either.
	_, err = s.ListCases(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deps.cases.listCalls.Load())

	_, err = s.ListCases(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deps.cases.listCalls.Load())
}

func TestService_GetPoint_Uncached(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	deps.points.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Point, error) {
		return &domain.Point{ID: id, Status: "pending"}, nil
	}
	s := deps.build()

	_, err := s.GetPoint(context.Background(), 11)
	require.NoError(t, err)
	_, err = s.GetPoint(context.Background(), 11)
	require.NoError(t, err)

	assert.Equal(t, int64(2), deps.points.getByIDCalls.Load())
}
