package domain

import "time"

// Document is a legal text (terms of service, privacy policy, ...) belonging
// to a Service.
type Document struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"service_id"`
	Name      string `json:"name"`
	URL       string `json:"url"`

	// XPath is the legacy extraction rule used by the crawler.
	XPath string `json:"xpath"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentCreate carries the fields for a new document row.
type DocumentCreate struct {
	Name      string
	URL       string
	XPath     string
	ServiceID int64
}
