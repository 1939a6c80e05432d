package phoenix

import (
	"context"
	"fmt"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/domain"
)

// GetTopic returns a topic by id.
// Returns domain.ErrNotFound when the topic does not exist.
func (s *Service) GetTopic(ctx context.Context, id int64) (*domain.Topic, error) {
	key := cache.TopicKey(id)
	if t, ok := cache.Lookup[domain.Topic](s.entities, key); ok {
		return &t, nil
	}

	t, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get topic %d: %w", id, err)
	}

	cacheWrite(s, ctx, s.entities, key, *t)
	return t, nil
}

// ListTopics returns all topics ordered by id.
func (s *Service) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	key := cache.TopicsKey()
	if topics, ok := cache.Lookup[[]domain.Topic](s.entities, key); ok {
		return topics, nil
	}

	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	cacheWrite(s, ctx, s.entities, key, topics)
	return topics, nil
}
