package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pkordes/photo-journal/internal/imageload"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mark is the search highlight applied to a card. It doubles as a CSS class.
type Mark string

const (
	MarkNone    Mark = ""
	MarkMatched Mark = "matched"
	MarkDimmed  Mark = "dimmed"
)

// Form is the state of the add/edit form as shown on the page.
type Form struct {
	// EditingID is empty while creating. It round-trips through a hidden
	// field so every submission carries its own mode.
	EditingID   string
	Destination string
	Date        string
	Description string
	Preview     string
	SubmitLabel string
	// Emphasis highlights the form section while an entry is being edited.
	Emphasis bool
}

// Page is everything the journal page template needs.
type Page struct {
	Cards    []Card
	Marks    map[string]Mark
	Query    string
	NotFound bool
	Notice   string
	Form     Form
	// FormID keys photo loads so a newer preview supersedes older ones.
	FormID string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").Funcs(template.FuncMap{
		"imgsrc":   imageSrc,
		"cardData": newCardView,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render.NewRenderer: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full journal page.
func (r *Renderer) Page(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page.html", p); err != nil {
		return fmt.Errorf("render.Renderer.Page: %w", err)
	}
	return nil
}

// Card writes a single card fragment.
func (r *Renderer) Card(w io.Writer, c Card, m Mark) error {
	if err := r.tmpl.ExecuteTemplate(w, "card", newCardView(c, m)); err != nil {
		return fmt.Errorf("render.Renderer.Card: %w", err)
	}
	return nil
}

type cardView struct {
	Card Card
	Mark Mark
}

func newCardView(c Card, m Mark) cardView {
	return cardView{Card: c, Mark: m}
}

// imageSrc lets image data URIs through html/template's URL sanitizer.
// Anything else renders as an empty src.
func imageSrc(s string) template.URL {
	if !imageload.IsImageDataURI(s) {
		return ""
	}
	return template.URL(s) //nolint:gosec // checked to be a base64 image data URI
}
