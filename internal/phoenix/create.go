package phoenix

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tosdr/phoenix/internal/domain"
)

// CreateServiceInput carries the caller-supplied fields for a new service.
type CreateServiceInput struct {
	Name      string
	URL       string
	Wikipedia string

	// User is recorded as whodunnit on the version row.
	User string
}

// CreateDocumentInput carries the caller-supplied fields for a new document.
type CreateDocumentInput struct {
	Name      string
	URL       string
	XPath     string
	ServiceID int64
	User      string
}

// CreateService inserts a new service and appends a "create" version record
// in the same transaction. Returns domain.ErrAlreadyExists when a service
// with the same name (case-insensitive) is present.
//
// The corresponding read caches are deliberately not refreshed: cache
// entries are immutable snapshots and expire on their own.
func (s *Service) CreateService(ctx context.Context, input CreateServiceInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, fmt.Errorf("create service: name is required: %w", domain.ErrValidation)
	}

	exists, err := s.services.ExistsByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("create service %q: %w", name, err)
	}
	if exists {
		return 0, fmt.Errorf("create service %q: %w", name, domain.ErrAlreadyExists)
	}

	var id int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		id, txErr = s.services.Create(txCtx, domain.ServiceCreate{
			Name:      name,
			URL:       input.URL,
			Wikipedia: input.Wikipedia,
		})
		if txErr != nil {
			return txErr
		}

		changes := "Created service"
		_, txErr = s.audit.Create(txCtx, domain.Version{
			ItemType:      domain.ItemTypeService,
			ItemID:        id,
			Event:         domain.EventCreate,
			ObjectChanges: &changes,
			Whodunnit:     input.User,
		})
		return txErr
	})
	if err != nil {
		return 0, fmt.Errorf("create service %q: %w", name, err)
	}

	s.log.InfoContext(ctx, "service created",
		slog.Int64("service_id", id),
		slog.String("name", name),
		slog.String("whodunnit", input.User),
	)

	return id, nil
}

// CreateDocument inserts a new document for an existing service and appends
// a "create" version record in the same transaction. Returns
// domain.ErrNotFound when the owning service does not exist. The existence
// check runs through the cached accessor, so a service hidden behind a
// stale negative snapshot is rejected until the snapshot expires.
func (s *Service) CreateDocument(ctx context.Context, input CreateDocumentInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, fmt.Errorf("create document: name is required: %w", domain.ErrValidation)
	}

	exists, err := s.ServiceExists(ctx, input.ServiceID)
	if err != nil {
		return 0, fmt.Errorf("create document %q: %w", name, err)
	}
	if !exists {
		return 0, fmt.Errorf("create document %q: service %d: %w",
			name, input.ServiceID, domain.ErrNotFound)
	}

	var id int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		id, txErr = s.documents.Create(txCtx, domain.DocumentCreate{
			Name:      name,
			URL:       input.URL,
			XPath:     input.XPath,
			ServiceID: input.ServiceID,
		})
		if txErr != nil {
			return txErr
		}

		changes := "Created document"
		_, txErr = s.audit.Create(txCtx, domain.Version{
			ItemType:      domain.ItemTypeDocument,
			ItemID:        id,
			Event:         domain.EventCreate,
			ObjectChanges: &changes,
			Whodunnit:     input.User,
		})
		return txErr
	})
	if err != nil {
		return 0, fmt.Errorf("create document %q: %w", name, err)
	}

	s.log.InfoContext(ctx, "document created",
		slog.Int64("document_id", id),
		slog.Int64("service_id", input.ServiceID),
		slog.String("name", name),
	)

	return id, nil
}

// CreateVersion appends a version record unconditionally. It is the
// audit primitive every mutation funnels through; callers outside this
// package use it to record events on rows they manage themselves.
func (s *Service) CreateVersion(ctx context.Context, v domain.Version) (int64, error) {
	id, err := s.audit.Create(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("create version %s/%d: %w", v.ItemType, v.ItemID, err)
	}
	return id, nil
}
