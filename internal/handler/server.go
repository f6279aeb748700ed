// Package handler implements the HTTP surface of the photo journal: the
// server-rendered journal page, its form posts, and a small JSON API.
// The JSON API is gen.StrictServerInterface, generated from spec/openapi.yaml;
// the page handlers are plain chi handlers. All of them are methods on Server.
package handler

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.5.0 --config=gen/cfg.yaml ../../spec/openapi.yaml

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/handler/gen"
	"github.com/pkordes/photo-journal/internal/imageload"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/service"
)

// JourneyController defines the form operations the page handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage.
type JourneyController interface {
	Submit(ctx context.Context, mode domain.Mode, sub service.Submission) (service.Outcome, error)
	Edit(ctx context.Context, id string) (service.FormState, error)
	Reset() service.FormState
	Delete(ctx context.Context, id string) (domain.Notice, error)
	Preview(ctx context.Context, formID string, f *imageload.File) (string, error)
	Cards() []render.Card
}

// JourneyReader is the read side of the repository used by the JSON API.
type JourneyReader interface {
	List(ctx context.Context) ([]domain.Journey, error)
	GetByID(ctx context.Context, id string) (domain.Journey, error)
}

// Exporter produces the flat collection export.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
// It implements gen.StrictServerInterface for the JSON API.
type Server struct {
	form     JourneyController
	journeys JourneyReader
	export   Exporter
	pages    *render.Renderer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger uses slog.Default.
func NewServer(form JourneyController, journeys JourneyReader, export Exporter, pages *render.Renderer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{form: form, journeys: journeys, export: export, pages: pages, log: log}
}

// compile-time check: Server must satisfy the generated strict interface.
var _ gen.StrictServerInterface = (*Server)(nil)

// Register mounts every route on r: the generated JSON API and the page handlers.
func (s *Server) Register(r chi.Router) {
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/", s.GetPage)
	r.Post("/journeys", s.PostJourney)
	r.Get("/journeys/{id}/edit", s.GetEditPage)
	r.Post("/journeys/{id}/delete", s.PostDelete)
	r.Post("/preview", s.PostPreview)

	api := gen.NewStrictHandlerWithOptions(s, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.requestError,
		ResponseErrorHandlerFunc: s.serverError,
	})
	gen.HandlerWithOptions(api, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.requestError,
	})
}
