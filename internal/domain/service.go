package domain

import (
	"strings"
	"time"
)

// Service is a tracked product or platform whose terms are reviewed.
type Service struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	// URL holds a comma-joined list of URLs the service is reachable under.
	URL       string `json:"url"`
	Wikipedia string `json:"wikipedia"`

	// Rating is the letter classification ("A".."E") or "N/A" when ungraded.
	Rating                    string `json:"rating"`
	IsComprehensivelyReviewed bool   `json:"is_comprehensively_reviewed"`

	// Image is the stored image reference. Read accessors override it with
	// the derived "<id>.png" filename.
	Image string `json:"image"`

	// Status is empty for active services; any other value hides the
	// service from listings.
	Status string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hidden reports whether the service is excluded from public listings.
func (s Service) Hidden() bool { return s.Status != "" }

// URLs splits the comma-joined URL field. Segments are not trimmed and a
// trailing comma yields a trailing empty segment; downstream consumers
// depend on the raw split.
func (s Service) URLs() []string { return strings.Split(s.URL, ",") }

// ServiceCreate carries the fields for a new service row.
type ServiceCreate struct {
	Name      string
	URL       string
	Wikipedia string
}
