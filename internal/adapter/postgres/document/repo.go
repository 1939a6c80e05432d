// Package document implements the Document repository using PostgreSQL.
package document

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/domain"
)

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const documentColumns = `id, service_id, COALESCE(name, ''), COALESCE(url, ''),
	COALESCE(xpath, ''), created_at, updated_at`

const (
	listByServiceSQL = `SELECT ` + documentColumns + ` FROM documents WHERE service_id = $1 ORDER BY id ASC`

	createSQL = `INSERT INTO documents (name, url, xpath, service_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id`
)

// ListByService returns all documents owned by a service, ordered by id.
// Returns an empty slice (not nil) when the service has no documents.
func (r *Repo) ListByService(ctx context.Context, serviceID int64) ([]domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByServiceSQL, serviceID)
	if err != nil {
		return nil, postgres.MapError(err, "documents", serviceID)
	}
	defer rows.Close()

	documents := make([]domain.Document, 0)
	for rows.Next() {
		var d domain.Document
		err := rows.Scan(&d.ID, &d.ServiceID, &d.Name, &d.URL, &d.XPath, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, postgres.MapError(err, "documents", serviceID)
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "documents", serviceID)
	}
	return documents, nil
}

// Create inserts a new document row and returns its id.
// A missing owner service surfaces as domain.ErrNotFound via the
// foreign-key mapping.
func (r *Repo) Create(ctx context.Context, params domain.DocumentCreate) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, createSQL, params.Name, params.URL, params.XPath, params.ServiceID).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "document", params.Name)
	}
	return id, nil
}
