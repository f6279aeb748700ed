// Package service contains the business logic for the photo journal.
// Services validate inputs, enforce business rules, and orchestrate the
// repository, the photo loader and the gallery projection.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/imageload"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/repo"
)

// Submit button labels for each form mode.
const (
	LabelCreate = "Add Journey"
	LabelUpdate = "Update Journey"
)

// photoLoader is satisfied by *imageload.Loader.
type photoLoader interface {
	Load(ctx context.Context, key string, f *imageload.File) *imageload.Future
}

// Submission is the raw content of one form post.
type Submission struct {
	Destination string
	Date        string
	Description string
	// Photo is nil when no new photo was chosen.
	Photo *imageload.File
	// FormID identifies the form instance the post came from.
	FormID string
}

// FormState is what the form should show next.
type FormState struct {
	Mode        domain.Mode
	Destination string
	Date        string
	Description string
	Preview     string
	SubmitLabel string
	Emphasis    bool
}

// Outcome describes a successful submission.
type Outcome struct {
	Journey domain.Journey
	Card    render.Card
	Notice  domain.Notice
	// Form is the reset form, back in creating mode.
	Form FormState
}

// FormController validates journey submissions and coordinates the photo
// loader, the repository and the gallery.
type FormController struct {
	// mu pairs each repository write with its gallery update so the card
	// order always matches the order writes reached storage.
	mu sync.Mutex

	repo    repo.JourneyRepo
	gallery *render.Gallery
	loader  photoLoader
	log     *slog.Logger
}

// NewFormController constructs a FormController. A nil logger uses slog.Default.
func NewFormController(r repo.JourneyRepo, g *render.Gallery, l photoLoader, log *slog.Logger) *FormController {
	if log == nil {
		log = slog.Default()
	}
	return &FormController{repo: r, gallery: g, loader: l, log: log}
}

// Hydrate rebuilds the gallery from the repository. When storage cannot be
// read the gallery is left empty and the error is returned for logging;
// the page stays usable.
func (c *FormController) Hydrate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	journeys, err := c.repo.List(ctx)
	c.gallery.Reset()
	c.gallery.RenderAll(journeys)
	if err != nil {
		return fmt.Errorf("service.FormController.Hydrate: %w", err)
	}
	return nil
}

// Submit creates or updates a journey according to mode.
//
// Validation failures wrap domain.ErrValidation and leave every store and
// the gallery untouched. When editing without a new photo, the stored
// image of the journey under edit is kept.
func (c *FormController) Submit(ctx context.Context, mode domain.Mode, sub Submission) (Outcome, error) {
	j := domain.Journey{
		ID:          mode.EditingID(),
		Destination: strings.TrimSpace(sub.Destination),
		Date:        sub.Date,
		Description: strings.TrimSpace(sub.Description),
	}
	if j.Destination == "" || strings.TrimSpace(j.Date) == "" || j.Description == "" {
		return Outcome{}, fmt.Errorf("service.FormController.Submit: %w: destination, date and description are required", domain.ErrValidation)
	}

	if mode.IsEditing() && sub.Photo == nil {
		existing, err := c.repo.GetByID(ctx, mode.EditingID())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// The journey vanished; there is no image left to keep.
				return Outcome{}, fmt.Errorf("service.FormController.Submit: %w", domain.ErrMissingPhoto)
			}
			return Outcome{}, fmt.Errorf("service.FormController.Submit: %w", err)
		}
		j.Image = existing.Image
	} else {
		if sub.Photo == nil {
			return Outcome{}, fmt.Errorf("service.FormController.Submit: %w", domain.ErrMissingPhoto)
		}
		image, err := c.decode(ctx, submitKey(sub.FormID), sub.Photo)
		if err != nil {
			return Outcome{}, fmt.Errorf("service.FormController.Submit: %w", err)
		}
		j.Image = image
	}

	c.mu.Lock()
	saved, err := c.repo.Upsert(ctx, j)
	if err != nil {
		c.mu.Unlock()
		return Outcome{}, fmt.Errorf("service.FormController.Submit: %w", err)
	}
	card := c.gallery.Replace(saved)
	c.mu.Unlock()

	notice := domain.NoticeCreated
	if mode.IsEditing() {
		notice = domain.NoticeUpdated
	}
	c.log.InfoContext(ctx, "journey saved",
		"id", saved.ID,
		"notice", string(notice),
		"image_bytes", imageload.DecodedLen(saved.Image),
	)

	return Outcome{Journey: saved, Card: card, Notice: notice, Form: c.Reset()}, nil
}

// Edit loads the journey with id into the form and switches it to update
// mode. Returns domain.ErrNotFound if the journey no longer exists.
func (c *FormController) Edit(ctx context.Context, id string) (FormState, error) {
	j, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return FormState{}, fmt.Errorf("service.FormController.Edit: %w", err)
	}
	return FormState{
		Mode:        domain.Editing(j.ID),
		Destination: j.Destination,
		Date:        j.Date,
		Description: j.Description,
		Preview:     j.Image,
		SubmitLabel: LabelUpdate,
		Emphasis:    true,
	}, nil
}

// Reset returns an empty form in creating mode.
func (c *FormController) Reset() FormState {
	return FormState{Mode: domain.Creating(), SubmitLabel: LabelCreate}
}

// Delete removes the journey and its card. Deleting an unknown id succeeds.
func (c *FormController) Delete(ctx context.Context, id string) (domain.Notice, error) {
	c.mu.Lock()
	if err := c.repo.Delete(ctx, id); err != nil {
		c.mu.Unlock()
		return domain.NoticeNone, fmt.Errorf("service.FormController.Delete: %w", err)
	}
	c.gallery.RemoveByID(id)
	c.mu.Unlock()
	c.log.InfoContext(ctx, "journey deleted", "id", id)
	return domain.NoticeDeleted, nil
}

// Preview decodes a freshly selected photo for display in the form.
// A nil file yields "" (the preview is cleared).
func (c *FormController) Preview(ctx context.Context, formID string, f *imageload.File) (string, error) {
	image, err := c.decode(ctx, previewKey(formID), f)
	if err != nil {
		return "", fmt.Errorf("service.FormController.Preview: %w", err)
	}
	return image, nil
}

// Cards returns the gallery snapshot in display order.
func (c *FormController) Cards() []render.Card {
	return c.gallery.Cards()
}

func (c *FormController) decode(ctx context.Context, key string, f *imageload.File) (string, error) {
	image, err := c.loader.Load(ctx, key, f).Wait(ctx)
	if err != nil {
		if errors.Is(err, imageload.ErrNotImage) || errors.Is(err, imageload.ErrTooLarge) {
			return "", fmt.Errorf("%w: %w", domain.ErrInvalidPhoto, err)
		}
		return "", err
	}
	return image, nil
}

func submitKey(formID string) string  { return "submit:" + formID }
func previewKey(formID string) string { return "preview:" + formID }
