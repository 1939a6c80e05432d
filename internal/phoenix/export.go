package phoenix

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tosdr/phoenix/internal/cache"
	"github.com/tosdr/phoenix/internal/domain"
)

// discussionBaseURL prefixes the per-point discussion link in both export
// shapes.
const discussionBaseURL = "https://edit.tosdr.org/points/"

// setField is a fixed marker carried by every exported point.
const setField = "set+service+and+topic"

// Rating is the "class" field of the skeleton shape: the rating letter when
// the service is comprehensively reviewed and graded, JSON false otherwise.
type Rating struct {
	Letter string
	Graded bool
}

// MarshalJSON emits the rating letter or the literal false.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Graded {
		return []byte("false"), nil
	}
	return json.Marshal(r.Letter)
}

// DocumentLink is one entry of the skeleton shape's links map.
type DocumentLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CaseAnnotation is the nested per-point object of the skeleton shape.
type CaseAnnotation struct {
	Binding bool   `json:"binding"`
	Case    string `json:"case"`
	Point   string `json:"point"`
	Score   int    `json:"score"`
	TLDR    string `json:"tldr"`
}

// SkeletonPoint is one approved point in the skeleton shape.
type SkeletonPoint struct {
	Discussion      string         `json:"discussion"`
	ID              int64          `json:"id"`
	NeedsModeration bool           `json:"needsModeration"`
	QuoteDoc        string         `json:"quoteDoc"`
	QuoteText       string         `json:"quoteText"`
	Services        []int64        `json:"services"`
	Set             string         `json:"set"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Topics          []int64        `json:"topics"`
	Tosdr           CaseAnnotation `json:"tosdr"`
}

// SkeletonExport is the v1/v2 output document for a service: document links,
// the ids of approved points and a flattened record per approved point.
type SkeletonExport struct {
	ID         int64                   `json:"id"`
	Name       string                  `json:"name"`
	Slug       string                  `json:"slug"`
	Image      string                  `json:"image"`
	Class      Rating                  `json:"class"`
	Links      map[string]DocumentLink `json:"links"`
	Points     []int64                 `json:"points"`
	PointsData map[int64]SkeletonPoint `json:"pointsData"`
	URLs       []string                `json:"urls"`
}

// FlatPoint is one point in the flat shape. Unlike the skeleton shape it is
// emitted for every point regardless of status and carries the full joined
// document and case objects.
type FlatPoint struct {
	Discussion      string           `json:"discussion"`
	ID              int64            `json:"id"`
	NeedsModeration bool             `json:"needsModeration"`
	Document        *domain.Document `json:"document"`
	Quote           string           `json:"quote"`
	Services        []int64          `json:"services"`
	Set             string           `json:"set"`
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	Topics          []int64          `json:"topics"`
	Case            *domain.Case     `json:"case"`
}

// FlatExport is the v3 output document: the full service record plus all
// documents, all points and the split URL list.
type FlatExport struct {
	ID                        int64             `json:"id"`
	Name                      string            `json:"name"`
	Slug                      string            `json:"slug"`
	URL                       string            `json:"url"`
	Wikipedia                 string            `json:"wikipedia"`
	Rating                    string            `json:"rating"`
	IsComprehensivelyReviewed bool              `json:"is_comprehensively_reviewed"`
	Image                     string            `json:"image"`
	Status                    string            `json:"status"`
	Documents                 []domain.Document `json:"documents"`
	Points                    []FlatPoint       `json:"points"`
	URLs                      []string          `json:"urls"`
}

// Export assembles the output document for a service in the given version.
// Versions 1 and 2 share the skeleton shape, version 3 is the flat shape;
// any other version is a validation error.
func (s *Service) Export(ctx context.Context, serviceID int64, version int) (any, error) {
	switch version {
	case 1, 2:
		return s.ExportSkeleton(ctx, serviceID, version)
	case 3:
		return s.ExportFlat(ctx, serviceID)
	default:
		return nil, fmt.Errorf("export service %d: unsupported version %d: %w",
			serviceID, version, domain.ErrValidation)
	}
}

// ExportSkeleton assembles the v1/v2 shape. The assembled document is
// cached for an hour under its own key, independent of the per-entity
// caches it was built from; an export either fully assembles or fails, no
// partial document is cached or returned.
func (s *Service) ExportSkeleton(ctx context.Context, serviceID int64, version int) (*SkeletonExport, error) {
	if version != 1 && version != 2 {
		return nil, fmt.Errorf("skeleton export service %d: version %d: %w",
			serviceID, version, domain.ErrValidation)
	}

	key := cache.ExportKey(serviceID, version)
	if exp, ok := cache.Lookup[SkeletonExport](s.exports, key); ok {
		return &exp, nil
	}

	data, err := s.exportData(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	links := make(map[string]DocumentLink, len(data.documents))
	for _, doc := range data.documents {
		links[doc.Name] = DocumentLink{Name: doc.Name, URL: doc.URL}
	}

	approved := make([]int64, 0, len(data.points))
	pointsData := make(map[int64]SkeletonPoint, len(data.points))
	for _, p := range data.points {
		if !p.Approved() {
			continue
		}
		approved = append(approved, p.ID)

		doc, ok := data.docsByID[p.DocumentID]
		if !ok {
			return nil, fmt.Errorf("skeleton export service %d: point %d references missing document %d",
				serviceID, p.ID, p.DocumentID)
		}
		c, err := s.GetCase(ctx, p.CaseID)
		if err != nil {
			return nil, fmt.Errorf("skeleton export service %d: %w", serviceID, err)
		}

		pointsData[p.ID] = SkeletonPoint{
			Discussion:      fmt.Sprintf("%s%d", discussionBaseURL, p.ID),
			ID:              p.ID,
			NeedsModeration: p.NeedsModeration(),
			QuoteDoc:        doc.Name,
			QuoteText:       p.QuoteText,
			Services:        []int64{serviceID},
			Set:             setField,
			Slug:            p.Slug,
			Title:           p.Title,
			Topics:          []int64{},
			Tosdr: CaseAnnotation{
				Binding: true,
				Case:    c.Title,
				Point:   c.Classification,
				Score:   c.Score,
				TLDR:    p.Analysis,
			},
		}
	}

	exp := &SkeletonExport{
		ID:         data.service.ID,
		Name:       data.service.Name,
		Slug:       data.service.Slug,
		Image:      s.logoHost + "/" + data.service.Image,
		Class:      ratingOf(data.service.Service),
		Links:      links,
		Points:     approved,
		PointsData: pointsData,
		URLs:       data.service.URLs(),
	}

	cacheWrite(s, ctx, s.exports, key, *exp)
	return exp, nil
}

// ExportFlat assembles the v3 shape: every point regardless of approval
// status, each with its joined document and case.
func (s *Service) ExportFlat(ctx context.Context, serviceID int64) (*FlatExport, error) {
	key := cache.ExportKey(serviceID, 3)
	if exp, ok := cache.Lookup[FlatExport](s.exports, key); ok {
		return &exp, nil
	}

	data, err := s.exportData(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	points := make([]FlatPoint, 0, len(data.points))
	for _, p := range data.points {
		doc, ok := data.docsByID[p.DocumentID]
		if !ok {
			return nil, fmt.Errorf("flat export service %d: point %d references missing document %d",
				serviceID, p.ID, p.DocumentID)
		}
		c, err := s.GetCase(ctx, p.CaseID)
		if err != nil {
			return nil, fmt.Errorf("flat export service %d: %w", serviceID, err)
		}

		points = append(points, FlatPoint{
			Discussion:      fmt.Sprintf("%s%d", discussionBaseURL, p.ID),
			ID:              p.ID,
			NeedsModeration: p.NeedsModeration(),
			Document:        &doc,
			Quote:           p.QuoteText,
			Services:        []int64{serviceID},
			Set:             setField,
			Slug:            p.Slug,
			Title:           p.Title,
			Topics:          []int64{},
			Case:            c,
		})
	}

	svc := data.service
	exp := &FlatExport{
		ID:                        svc.ID,
		Name:                      svc.Name,
		Slug:                      svc.Slug,
		URL:                       svc.URL,
		Wikipedia:                 svc.Wikipedia,
		Rating:                    svc.Rating,
		IsComprehensivelyReviewed: svc.IsComprehensivelyReviewed,
		Image:                     s.logoHost + "/" + svc.Image,
		Status:                    svc.Status,
		Documents:                 data.documents,
		Points:                    points,
		URLs:                      svc.URLs(),
	}

	cacheWrite(s, ctx, s.exports, key, *exp)
	return exp, nil
}

// exportData fetches the joined inputs shared by both shapes through the
// regular cache-augmented accessors, so an export populates the per-entity
// tier as a side effect.
type exportData struct {
	service   *ServiceRecord
	points    []domain.Point
	documents []domain.Document
	docsByID  map[int64]domain.Document
}

func (s *Service) exportData(ctx context.Context, serviceID int64) (*exportData, error) {
	svc, err := s.GetService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("export service %d: %w", serviceID, err)
	}

	points, err := s.ListPointsByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("export service %d: %w", serviceID, err)
	}

	documents, err := s.ListDocumentsByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("export service %d: %w", serviceID, err)
	}

	docsByID := make(map[int64]domain.Document, len(documents))
	for _, doc := range documents {
		docsByID[doc.ID] = doc
	}

	return &exportData{
		service:   svc,
		points:    points,
		documents: documents,
		docsByID:  docsByID,
	}, nil
}

// ratingOf derives the skeleton "class": ungraded services and services
// without a comprehensive review export false.
func ratingOf(svc domain.Service) Rating {
	if svc.Rating == "N/A" || !svc.IsComprehensivelyReviewed {
		return Rating{}
	}
	return Rating{Letter: svc.Rating, Graded: true}
}
