package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/handler"
	"github.com/pkordes/photo-journal/internal/imageload"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/service"
)

// mockController is a hand-written test double for handler.JourneyController.
// Each method is a function field; unset fields fall back to an empty form.
type mockController struct {
	submit  func(ctx context.Context, mode domain.Mode, sub service.Submission) (service.Outcome, error)
	preview func(ctx context.Context, formID string, f *imageload.File) (string, error)
}

func (m *mockController) Submit(ctx context.Context, mode domain.Mode, sub service.Submission) (service.Outcome, error) {
	return m.submit(ctx, mode, sub)
}
func (m *mockController) Edit(context.Context, string) (service.FormState, error) {
	return service.FormState{}, domain.ErrNotFound
}
func (m *mockController) Reset() service.FormState {
	return service.FormState{SubmitLabel: service.LabelCreate}
}
func (m *mockController) Delete(context.Context, string) (domain.Notice, error) {
	return domain.NoticeDeleted, nil
}
func (m *mockController) Preview(ctx context.Context, formID string, f *imageload.File) (string, error) {
	return m.preview(ctx, formID, f)
}
func (m *mockController) Cards() []render.Card { return nil }

// compile-time check: mockController must satisfy handler.JourneyController.
var _ handler.JourneyController = (*mockController)(nil)

func newMockRouter(t *testing.T, ctl handler.JourneyController) http.Handler {
	t.Helper()
	pages, err := render.NewRenderer()
	require.NoError(t, err)
	r := chi.NewRouter()
	handler.NewServer(ctl, nil, nil, pages, nil).Register(r)
	return r
}

func supersededErr(op string) error {
	return fmt.Errorf("service.FormController.%s: %w", op, imageload.ErrSuperseded)
}

func TestPostPreview_superseded_409(t *testing.T) {
	h := newMockRouter(t, &mockController{
		preview: func(context.Context, string, *imageload.File) (string, error) {
			return "", supersededErr("Preview")
		},
	})

	rec := postForm(t, h, "/preview", map[string]string{"form_id": "f1"}, pngBytes)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestPostJourney_superseded_redirectsWithoutNotice(t *testing.T) {
	h := newMockRouter(t, &mockController{
		submit: func(context.Context, domain.Mode, service.Submission) (service.Outcome, error) {
			return service.Outcome{}, supersededErr("Submit")
		},
	})

	rec := postForm(t, h, "/journeys", journeyFields("Kyoto", "Temples"), pngBytes)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#gallery", rec.Header().Get("Location"))
}
