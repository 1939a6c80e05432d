package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tosdr/phoenix/internal/domain"
)

// Seed helpers insert rows directly, bypassing the repositories under test.
// Tests share one database, so every seeded service gets a uuid-suffixed
// name and slug to stay clear of the unique indexes under t.Parallel().

// SeedService inserts a service row and returns it fully populated.
func SeedService(t *testing.T, pool *pgxpool.Pool) domain.Service {
	t.Helper()

	suffix := uuid.NewString()[:8]
	svc := domain.Service{
		Name:                      "Test Service " + suffix,
		Slug:                      "test-service-" + suffix,
		URL:                       "test-" + suffix + ".example.com",
		Wikipedia:                 "https://en.wikipedia.org/wiki/Test",
		Rating:                    "N/A",
		IsComprehensivelyReviewed: false,
	}
	return SeedServiceRow(t, pool, svc)
}

// SeedServiceRow inserts the given service row as-is (the caller controls
// rating, status and friends) and returns it with id and timestamps set.
func SeedServiceRow(t *testing.T, pool *pgxpool.Pool, svc domain.Service) domain.Service {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := pool.QueryRow(ctx, `
		INSERT INTO services (name, slug, url, wikipedia, rating, is_comprehensively_reviewed, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		svc.Name, svc.Slug, svc.URL, svc.Wikipedia, svc.Rating, svc.IsComprehensivelyReviewed, nullable(svc.Status),
	).Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed service: %v", err)
	}
	return svc
}

// SeedDocument inserts a document for the given service.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, serviceID int64, name string) domain.Document {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := domain.Document{
		ServiceID: serviceID,
		Name:      name,
		URL:       "https://example.com/" + uuid.NewString()[:8],
		XPath:     "//main",
	}
	err := pool.QueryRow(ctx, `
		INSERT INTO documents (service_id, name, url, xpath, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		doc.ServiceID, doc.Name, doc.URL, doc.XPath,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed document: %v", err)
	}
	return doc
}

// SeedCase inserts a case row.
func SeedCase(t *testing.T, pool *pgxpool.Pool, title, classification string, score int) domain.Case {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := domain.Case{Title: title, Classification: classification, Score: score}
	err := pool.QueryRow(ctx, `
		INSERT INTO cases (title, classification, score, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		c.Title, c.Classification, c.Score,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed case: %v", err)
	}
	return c
}

// SeedTopic inserts a topic row.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, name string) domain.Topic {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	topic := domain.Topic{Name: name}
	err := pool.QueryRow(ctx, `INSERT INTO topics (name) VALUES ($1) RETURNING id`, topic.Name).
		Scan(&topic.ID)
	if err != nil {
		t.Fatalf("testhelper: seed topic: %v", err)
	}
	return topic
}

// SeedPoint inserts a point tied to the given service, document and case.
func SeedPoint(t *testing.T, pool *pgxpool.Pool, serviceID, documentID, caseID int64, status string) domain.Point {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	suffix := uuid.NewString()[:8]
	p := domain.Point{
		ServiceID:  serviceID,
		DocumentID: documentID,
		CaseID:     caseID,
		Status:     status,
		QuoteText:  "quoted text " + suffix,
		Title:      "Point " + suffix,
		Slug:       "point-" + suffix,
		Analysis:   "analysis " + suffix,
	}
	err := pool.QueryRow(ctx, `
		INSERT INTO points (service_id, document_id, case_id, status, "quoteText", title, slug, analysis, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		p.ServiceID, p.DocumentID, p.CaseID, p.Status, p.QuoteText, p.Title, p.Slug, p.Analysis,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed point: %v", err)
	}
	return p
}

// nullable maps "" to NULL so seeded rows exercise the COALESCE read paths.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
