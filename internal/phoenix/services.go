package phoenix

import (
	"context"
	"fmt"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/domain"
)

// ServiceRecord is a service row with the derived fields single-service
// lookups carry: the alphanumeric "nice" identifier and the canonical
// "<id>.png" image filename. Derived fields are computed per read and are
// never cached; only the raw row snapshot is.
type ServiceRecord struct {
	domain.Service
	NiceService string `json:"nice_service"`
	Image       string `json:"image"`
}

// SearchResult is a service row decorated with the themed-logo probe, as
// surfaced in listing search results.
type SearchResult struct {
	domain.Service
	NiceService string `json:"nice_service"`
	HasImage    bool   `json:"has_image"`
	Image       string `json:"image"`
}

// GetService returns a service by id with derived fields.
// Returns domain.ErrNotFound when the service does not exist.
func (s *Service) GetService(ctx context.Context, id int64) (*ServiceRecord, error) {
	key := cache.ServiceKey(id)
	if svc, ok := cache.Lookup[domain.Service](s.entities, key); ok {
		return s.serviceRecord(svc), nil
	}

	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}

	cacheWrite(s, ctx, s.entities, key, *svc)
	return s.serviceRecord(*svc), nil
}

// GetServiceBySlug returns the raw service row for a slug, matched
// case-insensitively. Returns domain.ErrNotFound when no service matches.
func (s *Service) GetServiceBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	key := cache.ServiceBySlugKey(slug)
	if svc, ok := cache.Lookup[domain.Service](s.entities, key); ok {
		return &svc, nil
	}

	svc, err := s.services.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get service by slug %q: %w", slug, err)
	}

	cacheWrite(s, ctx, s.entities, key, *svc)
	return svc, nil
}

// GetServiceByName returns a service by exact name (case-insensitive) with
// derived fields. This lookup is intentionally uncached: it backs the
// duplicate check in CreateService, where a stale snapshot would let
// duplicates through.
func (s *Service) GetServiceByName(ctx context.Context, name string) (*ServiceRecord, error) {
	svc, err := s.services.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get service by name %q: %w", name, err)
	}
	return s.serviceRecord(*svc), nil
}

// SearchServices returns services whose name contains the term,
// case-insensitively. Each match carries the themed-logo probe results;
// the probe runs per match on both the cache-hit and store paths.
func (s *Service) SearchServices(ctx context.Context, name string) ([]SearchResult, error) {
	key := cache.SearchServiceKey(name)
	if matches, ok := cache.Lookup[[]domain.Service](s.entities, key); ok {
		return s.searchResults(matches), nil
	}

	matches, err := s.services.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search services %q: %w", name, err)
	}

	cacheWrite(s, ctx, s.entities, key, matches)
	return s.searchResults(matches), nil
}

// ListServices returns all services not hidden from listings.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	key := cache.ServicesKey()
	if services, ok := cache.Lookup[[]domain.Service](s.entities, key); ok {
		return services, nil
	}

	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	cacheWrite(s, ctx, s.entities, key, services)
	return services, nil
}

// ServiceExists reports whether a service with the given id exists. The
// boolean outcome is cached under its own key, consistently with the entity
// lookup path.
func (s *Service) ServiceExists(ctx context.Context, id int64) (bool, error) {
	key := cache.ServiceExistsKey(id)
	if exists, ok := cache.Lookup[bool](s.entities, key); ok {
		return exists, nil
	}

	exists, err := s.services.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("service exists %d: %w", id, err)
	}

	cacheWrite(s, ctx, s.entities, key, exists)
	return exists, nil
}

// ServiceExistsBySlug reports whether a service with the given slug exists.
// Uncached: it backs slug-uniqueness checks.
func (s *Service) ServiceExistsBySlug(ctx context.Context, slug string) (bool, error) {
	exists, err := s.services.ExistsBySlug(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("service exists by slug %q: %w", slug, err)
	}
	return exists, nil
}

// ServiceExistsByName reports whether a service with the given name exists.
// Uncached: it backs the duplicate check in CreateService.
func (s *Service) ServiceExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := s.services.ExistsByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("service exists by name %q: %w", name, err)
	}
	return exists, nil
}

func (s *Service) serviceRecord(svc domain.Service) *ServiceRecord {
	return &ServiceRecord{
		Service:     svc,
		NiceService: FilterAlphaNum(svc.Name),
		Image:       fmt.Sprintf("%d.png", svc.ID),
	}
}

func (s *Service) searchResults(matches []domain.Service) []SearchResult {
	results := make([]SearchResult, len(matches))
	for i, svc := range matches {
		image, hasImage := s.logos.Resolve(svc.Name)
		results[i] = SearchResult{
			Service:     svc,
			NiceService: FilterAlphaNum(svc.Name),
			HasImage:    hasImage,
			Image:       image,
		}
	}
	return results
}
