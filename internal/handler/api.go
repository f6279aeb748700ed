package handler

import (
	"context"
	"errors"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/handler/gen"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/search"
)

// ListJourneys handles GET /api/journeys.
// Journeys are returned in storage order; an empty collection is [].
func (s *Server) ListJourneys(ctx context.Context, _ gen.ListJourneysRequestObject) (gen.ListJourneysResponseObject, error) {
	journeys, err := s.journeys.List(ctx)
	if err != nil {
		return nil, err
	}

	data := make(gen.ListJourneys200JSONResponse, len(journeys))
	for i, j := range journeys {
		data[i] = journeyToResponse(j)
	}
	return data, nil
}

// GetJourney handles GET /api/journeys/{id}.
func (s *Server) GetJourney(ctx context.Context, req gen.GetJourneyRequestObject) (gen.GetJourneyResponseObject, error) {
	j, err := s.journeys.GetByID(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetJourney404JSONResponse(notFoundBody("journey not found")), nil
		}
		return nil, err
	}
	return gen.GetJourney200JSONResponse(journeyToResponse(j)), nil
}

// DeleteJourney handles DELETE /api/journeys/{id}.
// Deleting an unknown id still answers 204.
func (s *Server) DeleteJourney(ctx context.Context, req gen.DeleteJourneyRequestObject) (gen.DeleteJourneyResponseObject, error) {
	if _, err := s.form.Delete(ctx, req.Id); err != nil {
		return nil, err
	}
	return gen.DeleteJourney204Response{}, nil
}

// SearchJourneys handles GET /api/search?q=, reporting which displayed cards
// match. The page calls it on every keystroke in the search box.
func (s *Server) SearchJourneys(_ context.Context, req gen.SearchJourneysRequestObject) (gen.SearchJourneysResponseObject, error) {
	var q string
	if req.Params.Q != nil {
		q = *req.Params.Q
	}
	cards := s.form.Cards()
	res := search.Filter(cards, q)
	return gen.SearchJourneys200JSONResponse{
		Query:    res.Query,
		Matched:  res.Matched(cards),
		Dimmed:   res.Dimmed(cards),
		NotFound: res.NotFound,
	}, nil
}

// --- mapping helpers --------------------------------------------------------

// journeyToResponse converts a domain.Journey into the generated gen.Journey type.
func journeyToResponse(j domain.Journey) gen.Journey {
	return gen.Journey{
		Id:          j.ID,
		Destination: j.Destination,
		Date:        j.Date,
		IsoDate:     isoDate(j.Date),
		DisplayDate: render.FormatDate(j.Date),
		Description: j.Description,
		Image:       j.Image,
	}
}

// isoDate parses a "2006-01-02" date. Dates entered in any other shape are
// kept verbatim in the date field and yield nil here.
func isoDate(s string) *openapi_types.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: t}
}
