package service

import (
	"context"
	"fmt"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/imageload"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/repo"
)

// ExportService assembles a flat export of the whole journey collection.
type ExportService struct {
	journeys repo.JourneyRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(journeys repo.JourneyRepo) *ExportService {
	return &ExportService{journeys: journeys}
}

// Export returns one ExportRow per journey in storage order.
// Unlike the page, an unreadable store is an error here: an export that
// silently came back empty would look like data loss.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	journeys, err := s.journeys.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(journeys))
	for _, j := range journeys {
		rows = append(rows, domain.ExportRow{
			ID:          j.ID,
			Destination: j.Destination,
			Date:        j.Date,
			DisplayDate: render.FormatDate(j.Date),
			Description: j.Description,
			ImageBytes:  imageload.DecodedLen(j.Image),
			Image:       j.Image,
		})
	}
	return rows, nil
}
