// Package audit implements the versions repository using PostgreSQL.
// The versions table is an append-only log of mutations to Service and
// Document rows; records are never updated or deleted.
package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/domain"
)

// Repo provides version-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	createSQL = `INSERT INTO versions (item_type, item_id, event, created_at, object_changes, whodunnit, object)
	VALUES ($1, $2, $3, NOW(), $4, $5, $6) RETURNING id`

	getByItemSQL = `SELECT id, item_type, item_id, event, COALESCE(object_changes, ''),
	COALESCE(whodunnit, ''), COALESCE(object, ''), created_at
	FROM versions WHERE item_type = $1 AND item_id = $2 ORDER BY created_at DESC`
)

// Create inserts a new version record and returns its id.
func (r *Repo) Create(ctx context.Context, v domain.Version) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, createSQL,
		v.ItemType, v.ItemID, v.Event, v.ObjectChanges, v.Whodunnit, v.Object,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "version", v.ItemType)
	}
	return id, nil
}

// GetByItem returns the audit trail for one entity, newest first.
func (r *Repo) GetByItem(ctx context.Context, itemType string, itemID int64) ([]domain.Version, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getByItemSQL, itemType, itemID)
	if err != nil {
		return nil, postgres.MapError(err, "versions", itemID)
	}
	defer rows.Close()

	versions := make([]domain.Version, 0)
	for rows.Next() {
		var v domain.Version
		var changes, object string
		err := rows.Scan(&v.ID, &v.ItemType, &v.ItemID, &v.Event, &changes, &v.Whodunnit, &object, &v.CreatedAt)
		if err != nil {
			return nil, postgres.MapError(err, "version", itemID)
		}
		if changes != "" {
			v.ObjectChanges = &changes
		}
		if object != "" {
			v.Object = &object
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "version", itemID)
	}
	return versions, nil
}
