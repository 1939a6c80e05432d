package domain

import "time"

// PointStatusApproved marks points that are exposed in public exports.
const PointStatusApproved = "approved"

// Point is a single reviewed clause tied to a Document and a Case.
type Point struct {
	ID         int64  `json:"id"`
	ServiceID  int64  `json:"service_id"`
	DocumentID int64  `json:"document_id"`
	CaseID     int64  `json:"case_id"`
	Status     string `json:"status"`

	// QuoteText is the verbatim excerpt from the source document.
	// The column name is camelCase in the upstream schema.
	QuoteText string `json:"quoteText"`

	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Analysis string `json:"analysis"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Approved reports whether the point is public.
func (p Point) Approved() bool { return p.Status == PointStatusApproved }

// NeedsModeration is the inverse of Approved, kept as its own method because
// the export shapes carry it as an explicit flag.
func (p Point) NeedsModeration() bool { return !p.Approved() }
