// Package service implements the Service repository using PostgreSQL.
// Lookups are by id, slug and name; the slug and name matches are
// case-insensitive, and the name search is a substring match.
package service

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/domain"
)

// Repo provides service persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new service repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Nullable text columns are coalesced so rows scan into plain strings;
// an ungraded rating coalesces to the "N/A" sentinel the export shaping
// checks for.
const serviceColumns = `id, name, COALESCE(slug, ''), COALESCE(url, ''),
	COALESCE(wikipedia, ''), COALESCE(rating, 'N/A'),
	COALESCE(is_comprehensively_reviewed, false), COALESCE(image, ''),
	COALESCE(status, ''), created_at, updated_at`

const (
	getByIDSQL   = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	getBySlugSQL = `SELECT ` + serviceColumns + ` FROM services WHERE LOWER(slug) = LOWER($1)`
	getByNameSQL = `SELECT ` + serviceColumns + ` FROM services WHERE LOWER(name) = LOWER($1)`

	// Hidden services carry a non-empty status and are excluded from listings.
	listSQL = `SELECT ` + serviceColumns + ` FROM services WHERE status IS NULL OR status = ''`

	existsByIDSQL   = `SELECT EXISTS(SELECT 1 FROM services WHERE id = $1)`
	existsBySlugSQL = `SELECT EXISTS(SELECT 1 FROM services WHERE LOWER(slug) = LOWER($1))`
	existsByNameSQL = `SELECT EXISTS(SELECT 1 FROM services WHERE LOWER(name) = LOWER($1))`

	createSQL = `INSERT INTO services (name, url, wikipedia, created_at, updated_at)
	VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id`
)

// GetByID returns a service by primary key.
// Returns domain.ErrNotFound when no row matches.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	svc, err := scanService(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "service", id)
	}
	return svc, nil
}

// GetBySlug returns a service by slug, matched case-insensitively.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	svc, err := scanService(q.QueryRow(ctx, getBySlugSQL, slug))
	if err != nil {
		return nil, postgres.MapError(err, "service", slug)
	}
	return svc, nil
}

// GetByName returns a service by exact name, matched case-insensitively.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	svc, err := scanService(q.QueryRow(ctx, getByNameSQL, name))
	if err != nil {
		return nil, postgres.MapError(err, "service", name)
	}
	return svc, nil
}

// SearchByName returns services whose name contains the term,
// case-insensitively, ordered by id. Returns an empty slice (not nil) when
// nothing matches.
func (r *Repo) SearchByName(ctx context.Context, name string) ([]domain.Service, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := sq.Select(serviceColumns).
		From("services").
		Where(sq.Like{"LOWER(name)": "%" + strings.ToLower(name) + "%"}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("search services: build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "service search", name)
	}
	defer rows.Close()

	return scanServices(rows, name)
}

// List returns all services that are not hidden from listings.
func (r *Repo) List(ctx context.Context) ([]domain.Service, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, postgres.MapError(err, "services", "list")
	}
	defer rows.Close()

	return scanServices(rows, "list")
}

// ExistsByID reports whether a service row with the given id exists.
func (r *Repo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, existsByIDSQL, id)
}

// ExistsBySlug reports whether a service with the given slug exists,
// matched case-insensitively.
func (r *Repo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, existsBySlugSQL, slug)
}

// ExistsByName reports whether a service with the given name exists,
// matched case-insensitively.
func (r *Repo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, existsByNameSQL, name)
}

func (r *Repo) exists(ctx context.Context, query string, arg any) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "service exists", arg)
	}
	return exists, nil
}

// Create inserts a new service row and returns its id.
func (r *Repo) Create(ctx context.Context, params domain.ServiceCreate) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, createSQL, params.Name, params.URL, params.Wikipedia).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "service", params.Name)
	}
	return id, nil
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.URL, &s.Wikipedia,
		&s.Rating, &s.IsComprehensivelyReviewed, &s.Image, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanServices(rows pgx.Rows, ref any) ([]domain.Service, error) {
	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		err := rows.Scan(
			&s.ID, &s.Name, &s.Slug, &s.URL, &s.Wikipedia,
			&s.Rating, &s.IsComprehensivelyReviewed, &s.Image, &s.Status,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, postgres.MapError(err, "service", ref)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "service", ref)
	}
	return services, nil
}
