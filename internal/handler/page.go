package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/imageload"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/search"
	"github.com/pkordes/photo-journal/internal/service"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files. The overall body size is capped by middleware.
const multipartMemory = 8 << 20

// GetPage handles GET /.
// ?q= filters the gallery; ?notice= shows a transient message.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	notice := domain.ParseNotice(r.URL.Query().Get("notice"))
	s.writePage(w, r, http.StatusOK, s.form.Reset(), notice)
}

// GetEditPage handles GET /journeys/{id}/edit: the page with the form
// loaded for editing. A journey that no longer exists silently falls back
// to the plain page.
func (s *Server) GetEditPage(w http.ResponseWriter, r *http.Request) {
	form, err := s.form.Edit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, "/#gallery", http.StatusSeeOther)
			return
		}
		s.pageError(w, r, err, s.form.Reset())
		return
	}
	s.writePage(w, r, http.StatusOK, form, domain.NoticeNone)
}

// PostJourney handles POST /journeys, the add/update form.
// Success redirects to the gallery with a notice; validation failures
// re-render the page with 422, the notice, and what the user typed.
// A post whose photo load was superseded by a newer post of the same form
// redirects without a notice; the newer post reports the outcome.
func (s *Server) PostJourney(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.rejectBody(w, r, err)
		return
	}

	mode := domain.Editing(strings.TrimSpace(r.FormValue("editing_id")))
	sub := service.Submission{
		Destination: r.FormValue("destination"),
		Date:        r.FormValue("date"),
		Description: r.FormValue("description"),
		FormID:      r.FormValue("form_id"),
	}
	sub.Photo = formPhoto(r)

	out, err := s.form.Submit(r.Context(), mode, sub)
	if err != nil {
		if errors.Is(err, imageload.ErrSuperseded) {
			s.log.InfoContext(r.Context(), "form post superseded", "form_id", sub.FormID)
			http.Redirect(w, r, "/#gallery", http.StatusSeeOther)
			return
		}
		if notice := domain.NoticeFor(err); notice != domain.NoticeNone {
			s.writePage(w, r, http.StatusUnprocessableEntity, s.retainedForm(r, mode, sub), notice)
			return
		}
		s.pageError(w, r, err, s.retainedForm(r, mode, sub))
		return
	}

	http.Redirect(w, r, "/?notice="+string(out.Notice)+"#gallery", http.StatusSeeOther)
}

// PostDelete handles POST /journeys/{id}/delete from a card's Delete control.
func (s *Server) PostDelete(w http.ResponseWriter, r *http.Request) {
	notice, err := s.form.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.pageError(w, r, err, s.form.Reset())
		return
	}
	http.Redirect(w, r, "/?notice="+string(notice)+"#gallery", http.StatusSeeOther)
}

type previewResponse struct {
	Image string `json:"image"`
}

// PostPreview handles POST /preview: a live preview of a freshly chosen
// photo. An empty selection returns an empty image, clearing the preview.
// A preview replaced by a newer one for the same form answers 409 with no
// body; the page script ignores it.
func (s *Server) PostPreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeJSON(w, bodyErrorStatus(err), requestBody(err.Error()))
		return
	}
	image, err := s.form.Preview(r.Context(), r.FormValue("form_id"), formPhoto(r))
	if err != nil {
		if errors.Is(err, imageload.ErrSuperseded) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		if isValidation(err) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Image: image})
}

// --- helpers ----------------------------------------------------------------

// formPhoto returns the uploaded photo, or nil when none was chosen.
// The request's multipart form must already be parsed.
func formPhoto(r *http.Request) *imageload.File {
	if r.MultipartForm == nil {
		return nil
	}
	fhs := r.MultipartForm.File["photo"]
	if len(fhs) == 0 {
		return nil
	}
	return imageload.FromMultipart(fhs[0])
}

// retainedForm rebuilds the form after a failed submission so the user does
// not lose their input. In edit mode the stored photo stays in the preview.
func (s *Server) retainedForm(r *http.Request, mode domain.Mode, sub service.Submission) service.FormState {
	form := s.form.Reset()
	if mode.IsEditing() {
		if existing, err := s.form.Edit(r.Context(), mode.EditingID()); err == nil {
			form = existing
		} else {
			form = service.FormState{Mode: mode, SubmitLabel: service.LabelUpdate, Emphasis: true}
		}
	}
	form.Destination = sub.Destination
	form.Date = sub.Date
	form.Description = sub.Description
	return form
}

// rejectBody answers a form post whose body could not be read, most often
// because it exceeded the upload limit.
func (s *Server) rejectBody(w http.ResponseWriter, r *http.Request, err error) {
	status := bodyErrorStatus(err)
	s.log.WarnContext(r.Context(), "rejected form body", "status", status, "error", err)
	notice := domain.NoticeMissingFields
	if status == http.StatusRequestEntityTooLarge {
		notice = domain.NoticeInvalidPhoto
	}
	s.writePage(w, r, status, s.form.Reset(), notice)
}

// pageError logs an unexpected failure behind a form post and re-renders the
// page with form and a notice.
func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error, form service.FormState) {
	status := errorStatus(err)
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	s.writePage(w, r, status, form, domain.NoticeStoreFailed)
}

func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// writePage renders the journal page: the gallery filtered by ?q=, the form
// in the given state, and an optional notice.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, form service.FormState, notice domain.Notice) {
	cards := s.form.Cards()
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	res := search.Filter(cards, query)

	page := render.Page{
		Cards:    cards,
		Marks:    res.Marks,
		Query:    query,
		NotFound: res.NotFound,
		Notice:   notice.Text(),
		Form:     formView(form),
		FormID:   uuid.NewString(),
	}

	var buf bytes.Buffer
	if err := s.pages.Page(&buf, page); err != nil {
		s.log.ErrorContext(r.Context(), "render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func formView(f service.FormState) render.Form {
	return render.Form{
		EditingID:   f.Mode.EditingID(),
		Destination: f.Destination,
		Date:        f.Date,
		Description: f.Description,
		Preview:     f.Preview,
		SubmitLabel: f.SubmitLabel,
		Emphasis:    f.Emphasis,
	}
}
