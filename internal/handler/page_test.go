package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPage_empty(t *testing.T) {
	rec := get(t, newMemoryRouter(t), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `id="travel-form"`)
	assert.Contains(t, body, "Add Journey")
	assert.NotContains(t, body, "gallery-item")
	assert.NotContains(t, body, "custom-toast")
}

func TestPostJourney_createThenShowCard(t *testing.T) {
	h := newMemoryRouter(t)
	createJourney(t, h, "  Kyoto ", "Cherry blossoms")

	rec := get(t, h, "/?notice=created")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-id="id-1"`)
	assert.Contains(t, body, "<h3>Kyoto</h3>")
	assert.Contains(t, body, "August 1, 2025")
	assert.Contains(t, body, `src="data:image/png;base64,`)
	assert.Contains(t, body, "Your journey has been added!")
}

func TestPostJourney_newestCardFirst(t *testing.T) {
	h := newMemoryRouter(t)
	createJourney(t, h, "Kyoto", "Temples")
	createJourney(t, h, "Lisbon", "Trams")

	body := get(t, h, "/").Body.String()

	assert.Less(t, strings.Index(body, `data-id="id-2"`), strings.Index(body, `data-id="id-1"`))
}

func TestPostJourney_missingFields_422KeepsInput(t *testing.T) {
	h := newMemoryRouter(t)

	rec := postForm(t, h, "/journeys", journeyFields("Kyoto", "   "), pngBytes)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please fill out all fields.")
	assert.Contains(t, body, `value="Kyoto"`)
	assert.NotContains(t, body, "gallery-item")
}

func TestPostJourney_missingPhoto_422(t *testing.T) {
	rec := postForm(t, newMemoryRouter(t), "/journeys", journeyFields("Kyoto", "Temples"), nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select a photo.")
}

func TestPostJourney_notAnImage_422(t *testing.T) {
	rec := postForm(t, newMemoryRouter(t), "/journeys", journeyFields("Kyoto", "Temples"), []byte("just some text"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "The selected file is not an image.")
}

func TestPostJourney_editKeepsIDAndImage(t *testing.T) {
	h := newMemoryRouter(t)
	createJourney(t, h, "Kyoto", "Cherry blossoms")
	before := get(t, h, "/api/journeys/id-1").Body.String()
	require.Contains(t, before, "data:image/png;base64,")

	fields := journeyFields("Kyoto", "Autumn leaves")
	fields["editing_id"] = "id-1"
	rec := postForm(t, h, "/journeys", fields, nil)

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/?notice=updated#gallery", rec.Header().Get("Location"))

	after := get(t, h, "/api/journeys")
	assert.Contains(t, after.Body.String(), `"description":"Autumn leaves"`)
	assert.Contains(t, after.Body.String(), `"id":"id-1"`)
	assert.Equal(t, 1, strings.Count(after.Body.String(), `"id":`))

	page := get(t, h, "/").Body.String()
	assert.Equal(t, 1, strings.Count(page, "gallery-item"))
	assert.Contains(t, page, "Autumn leaves")
}

func TestPostJourney_editVanishedWithoutPhoto_422(t *testing.T) {
	fields := journeyFields("Kyoto", "Autumn leaves")
	fields["editing_id"] = "gone"

	rec := postForm(t, newMemoryRouter(t), "/journeys", fields, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please select a photo.")
	assert.Contains(t, body, `name="editing_id" value="gone"`)
	assert.Contains(t, body, "Update Journey")
}

func TestPostJourney_oversizedBody_413(t *testing.T) {
	h := newMemoryRouter(t)
	body, contentType := multipartBody(t, journeyFields("Kyoto", "Temples"), pngBytes)
	req := httptest.NewRequest(http.MethodPost, "/journeys", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	http.MaxBytesHandler(h, 64).ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "The selected file is not an image.")
}

func TestGetEditPage_populatesForm(t *testing.T) {
	h := newMemoryRouter(t)
	createJourney(t, h, "Kyoto", "Cherry blossoms")

	rec := get(t, h, "/journeys/id-1/edit")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="editing_id" value="id-1"`)
	assert.Contains(t, body, `value="Kyoto"`)
	assert.Contains(t, body, `value="2025-08-01"`)
	assert.Contains(t, body, "Update Journey")
	assert.Contains(t, body, "form-section glow")
	assert.Contains(t, body, `id="photo-preview" src="data:image/png;base64,`)
}

func TestGetEditPage_vanishedRedirects(t *testing.T) {
	rec := get(t, newMemoryRouter(t), "/journeys/gone/edit")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#gallery", rec.Header().Get("Location"))
}

func TestPostDelete_removesCard(t *testing.T) {
	h := newMemoryRouter(t)
	createJourney(t, h, "Kyoto", "Temples")

	rec := postForm(t, h, "/journeys/id-1/delete", nil, nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?notice=deleted#gallery", rec.Header().Get("Location"))
	assert.NotContains(t, get(t, h, "/").Body.String(), "gallery-item")
	assert.JSONEq(t, `[]`, get(t, h, "/api/journeys").Body.String())

	// Deleting again is a no-op.
	rec = postForm(t, h, "/journeys/id-1/delete", nil, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestGetPage_search(t *testing.T) {
	h := newMemoryRouter(t)
	createJourney(t, h, "Kyoto", "Temples")
	createJourney(t, h, "Lisbon", "Trams")

	body := get(t, h, "/?q=KYO").Body.String()
	assert.Contains(t, body, `class="gallery-item matched" data-id="id-1"`)
	assert.Contains(t, body, `class="gallery-item dimmed" data-id="id-2"`)
	assert.NotContains(t, body, `id="not-found-msg" class="show"`)

	body = get(t, h, "/?q=paris").Body.String()
	assert.Contains(t, body, `id="not-found-msg" class="show"`)
}

func TestGetPage_unknownNoticeIgnored(t *testing.T) {
	rec := get(t, newMemoryRouter(t), "/?notice=%3Cscript%3E")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "custom-toast")
}

func TestGetPage_escapesUserText(t *testing.T) {
	h := newMemoryRouter(t)
	createJourney(t, h, "<script>alert(1)</script>", "Temples")

	body := get(t, h, "/").Body.String()

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestPostPreview(t *testing.T) {
	h := newMemoryRouter(t)

	rec := postForm(t, h, "/preview", map[string]string{"form_id": "form-1"}, pngBytes)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"image":"data:image/png;base64,`)

	rec = postForm(t, h, "/preview", map[string]string{"form_id": "form-1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"image":""}`, rec.Body.String())

	rec = postForm(t, h, "/preview", map[string]string{"form_id": "form-1"}, []byte("plain text"))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"validation_error"`)
}

func TestPostPreview_notMultipart_400(t *testing.T) {
	rec := do(t, newMemoryRouter(t), httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader("x")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPage_unavailableStoreStillRenders(t *testing.T) {
	rec := get(t, newTestRouter(t, failingSlots{}), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "gallery-item")
}

func TestPostJourney_unavailableStore_rendersPage(t *testing.T) {
	rec := postForm(t, newTestRouter(t, failingSlots{}), "/journeys", journeyFields("Kyoto", "Temples"), pngBytes)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "could not be saved right now")
	assert.Contains(t, body, `value="Kyoto"`)
	assert.Contains(t, body, `id="travel-form"`)
}

func TestPostDelete_unavailableStore_rendersPage(t *testing.T) {
	rec := postForm(t, newTestRouter(t, failingSlots{}), "/journeys/id-1/delete", nil, nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "could not be saved right now")
}

func TestGetEditPage_unavailableStore_rendersPage(t *testing.T) {
	rec := get(t, newTestRouter(t, failingSlots{}), "/journeys/id-1/edit")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Add Journey")
}
