package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/photo-journal/internal/handler"
	"github.com/pkordes/photo-journal/internal/handler/gen"
	"github.com/pkordes/photo-journal/internal/imageload"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/repo"
	"github.com/pkordes/photo-journal/internal/service"
	"github.com/pkordes/photo-journal/internal/store"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// failingSlots is a store.Slots whose backend is always down.
type failingSlots struct{}

func (failingSlots) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk unplugged")
}
func (failingSlots) Put(context.Context, string, string) error {
	return errors.New("disk unplugged")
}

// newTestRouter wires the full stack over the given slots, with sequential ids.
func newTestRouter(t *testing.T, slots store.Slots) http.Handler {
	t.Helper()
	n := 0
	journeys := repo.NewJourneyRepo(
		store.NewAdapter(slots),
		repo.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	form := service.NewFormController(journeys, render.NewGallery(), imageload.New(), nil)
	_ = form.Hydrate(context.Background())

	pages, err := render.NewRenderer()
	require.NoError(t, err)

	r := chi.NewRouter()
	handler.NewServer(form, journeys, service.NewExportService(journeys), pages, nil).Register(r)
	return r
}

func newMemoryRouter(t *testing.T) http.Handler {
	return newTestRouter(t, store.NewMemorySlots())
}

// multipartBody builds a form post. A nil photo omits the file part.
func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, h, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(t *testing.T, h http.Handler, target string, fields map[string]string, photo []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, photo)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	return do(t, h, req)
}

func journeyFields(destination, description string) map[string]string {
	return map[string]string{
		"destination": destination,
		"date":        "2025-08-01",
		"description": description,
		"form_id":     "form-1",
	}
}

// createJourney posts a new journey and asserts the redirect.
func createJourney(t *testing.T, h http.Handler, destination, description string) {
	t.Helper()
	rec := postForm(t, h, "/journeys", journeyFields(destination, description), pngBytes)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, "/?notice=created#gallery", rec.Header().Get("Location"))
}

func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := get(t, newMemoryRouter(t), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

// TestGetHealth_strictHandler drives the generated router directly, without
// the page routes.
func TestGetHealth_strictHandler(t *testing.T) {
	srv := handler.NewServer(nil, nil, nil, nil, nil)
	h := gen.Handler(gen.NewStrictHandler(srv, nil))

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body gen.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

func TestGetOpenAPI_servesYAML(t *testing.T) {
	rec := get(t, newMemoryRouter(t), "/openapi.yaml")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "/api/journeys")
}
