// Package point implements the Point repository using PostgreSQL.
package point

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/domain"
)

// Repo provides point persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new point repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// The quoteText column is camelCase in the upstream schema and must stay
// quoted.
const pointColumns = `id, service_id, document_id, case_id, COALESCE(status, ''),
	COALESCE("quoteText", ''), COALESCE(title, ''), COALESCE(slug, ''),
	COALESCE(analysis, ''), created_at, updated_at`

const (
	getByIDSQL       = `SELECT ` + pointColumns + ` FROM points WHERE id = $1`
	listSQL          = `SELECT ` + pointColumns + ` FROM points ORDER BY id ASC`
	listByServiceSQL = `SELECT ` + pointColumns + ` FROM points WHERE service_id = $1 ORDER BY id ASC`
	existsByIDSQL    = `SELECT EXISTS(SELECT 1 FROM points WHERE id = $1)`
)

// GetByID returns a point by primary key.
// Returns domain.ErrNotFound when no row matches.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Point, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.Point
	err := scanPoint(q.QueryRow(ctx, getByIDSQL, id), &p)
	if err != nil {
		return nil, postgres.MapError(err, "point", id)
	}
	return &p, nil
}

// List returns all points, ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.Point, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, postgres.MapError(err, "points", "list")
	}
	defer rows.Close()

	return collectPoints(rows, "list")
}

// ListByService returns all points belonging to a service regardless of
// status, ordered by id. Returns an empty slice (not nil) when the service
// has no points.
func (r *Repo) ListByService(ctx context.Context, serviceID int64) ([]domain.Point, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByServiceSQL, serviceID)
	if err != nil {
		return nil, postgres.MapError(err, "points", serviceID)
	}
	defer rows.Close()

	return collectPoints(rows, serviceID)
}

// ExistsByID reports whether a point row with the given id exists.
func (r *Repo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, existsByIDSQL, id).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "point exists", id)
	}
	return exists, nil
}

func scanPoint(row pgx.Row, p *domain.Point) error {
	return row.Scan(
		&p.ID, &p.ServiceID, &p.DocumentID, &p.CaseID, &p.Status,
		&p.QuoteText, &p.Title, &p.Slug, &p.Analysis,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func collectPoints(rows pgx.Rows, ref any) ([]domain.Point, error) {
	points := make([]domain.Point, 0)
	for rows.Next() {
		var p domain.Point
		if err := scanPoint(rows, &p); err != nil {
			return nil, postgres.MapError(err, "point", ref)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "point", ref)
	}
	return points, nil
}
