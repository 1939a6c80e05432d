// Package cases implements the Case repository using PostgreSQL.
// The package is plural because "case" is a Go keyword.
package cases

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/domain"
)

// Repo provides case persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new case repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const caseColumns = `id, COALESCE(title, ''), COALESCE(classification, ''),
	COALESCE(score, 0), created_at, updated_at`

const (
	getByIDSQL = `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	listSQL    = `SELECT ` + caseColumns + ` FROM cases ORDER BY id ASC`
)

// GetByID returns a case by primary key.
// Returns domain.ErrNotFound when no row matches.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Case
	err := q.QueryRow(ctx, getByIDSQL, id).Scan(
		&c.ID, &c.Title, &c.Classification, &c.Score, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "case", id)
	}
	return &c, nil
}

// List returns all cases ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.Case, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, postgres.MapError(err, "cases", "list")
	}
	defer rows.Close()

	result := make([]domain.Case, 0)
	for rows.Next() {
		var c domain.Case
		err := rows.Scan(&c.ID, &c.Title, &c.Classification, &c.Score, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, postgres.MapError(err, "case", "list")
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "case", "list")
	}
	return result, nil
}
