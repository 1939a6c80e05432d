// Package topic implements the Topic repository using PostgreSQL.
// Topics are an independent classification axis; nothing joins them into
// point output yet.
package topic

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/domain"
)

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new topic repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	getByIDSQL = `SELECT id, COALESCE(name, '') FROM topics WHERE id = $1`
	listSQL    = `SELECT id, COALESCE(name, '') FROM topics ORDER BY id ASC`
)

// GetByID returns a topic by primary key.
// Returns domain.ErrNotFound when no row matches.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.Topic
	if err := q.QueryRow(ctx, getByIDSQL, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, postgres.MapError(err, "topic", id)
	}
	return &t, nil
}

// List returns all topics ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, postgres.MapError(err, "topics", "list")
	}
	defer rows.Close()

	topics := make([]domain.Topic, 0)
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, postgres.MapError(err, "topic", "list")
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "topic", "list")
	}
	return topics, nil
}
