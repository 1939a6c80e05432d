package domain

import "time"

// Version is an append-only audit record of a mutation to a Service or
// Document row. Versions are never updated or deleted.
type Version struct {
	ID       int64  `json:"id"`
	ItemType string `json:"item_type"`
	ItemID   int64  `json:"item_id"`
	Event    string `json:"event"`

	// ObjectChanges and Object mirror the paper_trail columns of the
	// upstream schema; either may be absent.
	ObjectChanges *string `json:"object_changes"`
	Whodunnit     string  `json:"whodunnit"`
	Object        *string `json:"object"`

	CreatedAt time.Time `json:"created_at"`
}

// EventCreate is the event recorded for row creation.
const EventCreate = "create"

// Item types recorded in version rows.
const (
	ItemTypeService  = "Service"
	ItemTypeDocument = "Document"
)
