package phoenix

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/config"
	"github.com/tosdr/phoenix/internal/domain"
)

// ---------------------------------------------------------------------------
// Func-field mocks. A nil func means the test does not expect the call.
// ---------------------------------------------------------------------------

type serviceRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.Service, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*domain.Service, error)
	GetByNameFunc    func(ctx context.Context, name string) (*domain.Service, error)
	SearchByNameFunc func(ctx context.Context, name string) ([]domain.Service, error)
	ListFunc         func(ctx context.Context) ([]domain.Service, error)
	ExistsByIDFunc   func(ctx context.Context, id int64) (bool, error)
	ExistsBySlugFunc func(ctx context.Context, slug string) (bool, error)
	ExistsByNameFunc func(ctx context.Context, name string) (bool, error)
	CreateFunc       func(ctx context.Context, params domain.ServiceCreate) (int64, error)

	getByIDCalls atomic.Int64
	listCalls    atomic.Int64
	searchCalls  atomic.Int64
	createCalls  atomic.Int64
}

func (m *serviceRepoMock) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	m.getByIDCalls.Add(1)
	return m.GetByIDFunc(ctx, id)
}

func (m *serviceRepoMock) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return m.GetBySlugFunc(ctx, slug)
}

func (m *serviceRepoMock) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	return m.GetByNameFunc(ctx, name)
}

func (m *serviceRepoMock) SearchByName(ctx context.Context, name string) ([]domain.Service, error) {
	m.searchCalls.Add(1)
	return m.SearchByNameFunc(ctx, name)
}

func (m *serviceRepoMock) List(ctx context.Context) ([]domain.Service, error) {
	m.listCalls.Add(1)
	return m.ListFunc(ctx)
}

func (m *serviceRepoMock) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return m.ExistsByIDFunc(ctx, id)
}

func (m *serviceRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return m.ExistsBySlugFunc(ctx, slug)
}

func (m *serviceRepoMock) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.ExistsByNameFunc(ctx, name)
}

func (m *serviceRepoMock) Create(ctx context.Context, params domain.ServiceCreate) (int64, error) {
	m.createCalls.Add(1)
	return m.CreateFunc(ctx, params)
}

type documentRepoMock struct {
	ListByServiceFunc func(ctx context.Context, serviceID int64) ([]domain.Document, error)
	CreateFunc        func(ctx context.Context, params domain.DocumentCreate) (int64, error)

	listByServiceCalls atomic.Int64
}

func (m *documentRepoMock) ListByService(ctx context.Context, serviceID int64) ([]domain.Document, error) {
	m.listByServiceCalls.Add(1)
	return m.ListByServiceFunc(ctx, serviceID)
}

func (m *documentRepoMock) Create(ctx context.Context, params domain.DocumentCreate) (int64, error) {
	return m.CreateFunc(ctx, params)
}

type pointRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Point, error)
	ListFunc          func(ctx context.Context) ([]domain.Point, error)
	ListByServiceFunc func(ctx context.Context, serviceID int64) ([]domain.Point, error)
	ExistsByIDFunc    func(ctx context.Context, id int64) (bool, error)

	getByIDCalls       atomic.Int64
	listByServiceCalls atomic.Int64
}

func (m *pointRepoMock) GetByID(ctx context.Context, id int64) (*domain.Point, error) {
	m.getByIDCalls.Add(1)
	return m.GetByIDFunc(ctx, id)
}

func (m *pointRepoMock) List(ctx context.Context) ([]domain.Point, error) {
	return m.ListFunc(ctx)
}

func (m *pointRepoMock) ListByService(ctx context.Context, serviceID int64) ([]domain.Point, error) {
	m.listByServiceCalls.Add(1)
	return m.ListByServiceFunc(ctx, serviceID)
}

func (m *pointRepoMock) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return m.ExistsByIDFunc(ctx, id)
}

type caseRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Case, error)
	ListFunc    func(ctx context.Context) ([]domain.Case, error)

	getByIDCalls atomic.Int64
	listCalls    atomic.Int64
}

func (m *caseRepoMock) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	m.getByIDCalls.Add(1)
	return m.GetByIDFunc(ctx, id)
}

func (m *caseRepoMock) List(ctx context.Context) ([]domain.Case, error) {
	m.listCalls.Add(1)
	return m.ListFunc(ctx)
}

type topicRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Topic, error)
	ListFunc    func(ctx context.Context) ([]domain.Topic, error)
}

func (m *topicRepoMock) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *topicRepoMock) List(ctx context.Context) ([]domain.Topic, error) {
	return m.ListFunc(ctx)
}

type auditRepoMock struct {
	CreateFunc func(ctx context.Context, v domain.Version) (int64, error)

	createCalls atomic.Int64
}

func (m *auditRepoMock) Create(ctx context.Context, v domain.Version) (int64, error) {
	m.createCalls.Add(1)
	return m.CreateFunc(ctx, v)
}

// txManagerMock runs the callback on the same context, mimicking a committed
// transaction.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Test service construction
// ---------------------------------------------------------------------------

type testDeps struct {
	services  *serviceRepoMock
	documents *documentRepoMock
	points    *pointRepoMock
	cases     *caseRepoMock
	topics    *topicRepoMock
	audit     *auditRepoMock
	tx        *txManagerMock
	entities  *cache.Cache
	exports   *cache.Cache
	assets    config.AssetsConfig
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	return &testDeps{
		services:  &serviceRepoMock{},
		documents: &documentRepoMock{},
		points:    &pointRepoMock{},
		cases:     &caseRepoMock{},
		topics:    &topicRepoMock{},
		audit:     &auditRepoMock{},
		tx:        &txManagerMock{},
		entities:  cache.New(1000, 16, cache.EntityTTL),
		exports:   cache.New(1000, 16, cache.ExportTTL),
		assets: config.AssetsConfig{
			LogoHost: "https://s3.tosdr.org/logos",
			ThemeDir: t.TempDir(),
			Theme:    "crisp",
		},
	}
}

func (d *testDeps) build() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(logger,
		d.services, d.documents, d.points, d.cases, d.topics, d.audit, d.tx,
		d.entities, d.exports, d.assets,
	)
}
