package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	postgres "github.com/tosdr/phoenix/internal/adapter/postgres"
	"github.com/tosdr/phoenix/internal/adapter/postgres/audit"
	"github.com/tosdr/phoenix/internal/adapter/postgres/service"
	"github.com/tosdr/phoenix/internal/adapter/postgres/testhelper"
	"github.com/tosdr/phoenix/internal/domain"
)

func TestTxManager_Commit(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	services := service.New(pool)
	versions := audit.New(pool)
	ctx := context.Background()

	name := "Tx Commit " + uuid.NewString()[:8]
	var serviceID int64
	err := tm.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		serviceID, err = services.Create(txCtx, domain.ServiceCreate{Name: name})
		if err != nil {
			return err
		}
		_, err = versions.Create(txCtx, domain.Version{
			ItemType: domain.ItemTypeService,
			ItemID:   serviceID,
			Event:    domain.EventCreate,
		})
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: unexpected error: %v", err)
	}

	// Both writes are visible after commit.
	if _, err := services.GetByID(ctx, serviceID); err != nil {
		t.Fatalf("GetByID after commit: %v", err)
	}
	trail, err := versions.GetByItem(ctx, domain.ItemTypeService, serviceID)
	if err != nil {
		t.Fatalf("GetByItem after commit: %v", err)
	}
	if len(trail) != 1 {
		t.Errorf("trail len = %d, want 1", len(trail))
	}
}

func TestTxManager_RollbackOnError(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	services := service.New(pool)
	ctx := context.Background()

	name := "Tx Rollback " + uuid.NewString()[:8]
	boom := errors.New("boom")

	var serviceID int64
	err := tm.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		serviceID, err = services.Create(txCtx, domain.ServiceCreate{Name: name})
		if err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	// The insert must have been rolled back.
	_, err = services.GetByID(ctx, serviceID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID after rollback = %v, want ErrNotFound", err)
	}
}

func TestTxManager_RollbackOnPanic(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	services := service.New(pool)
	ctx := context.Background()

	name := "Tx Panic " + uuid.NewString()[:8]

	var serviceID int64
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected re-panic")
			}
		}()
		_ = tm.RunInTx(ctx, func(txCtx context.Context) error {
			var err error
			serviceID, err = services.Create(txCtx, domain.ServiceCreate{Name: name})
			if err != nil {
				return err
			}
			panic("kaboom")
		})
	}()

	_, err := services.GetByID(ctx, serviceID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID after panic = %v, want ErrNotFound", err)
	}
}
