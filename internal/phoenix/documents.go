package phoenix

import (
	"context"
	"fmt"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/domain"
)

// ListDocumentsByService returns all documents owned by a service,
// unfiltered by any status.
func (s *Service) ListDocumentsByService(ctx context.Context, serviceID int64) ([]domain.Document, error) {
	key := cache.DocumentsByServiceKey(serviceID)
	if documents, ok := cache.Lookup[[]domain.Document](s.entities, key); ok {
		return documents, nil
	}

	documents, err := s.documents.ListByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list documents by service %d: %w", serviceID, err)
	}

	cacheWrite(s, ctx, s.entities, key, documents)
	return documents, nil
}
