// Package render materializes journeys as gallery cards and renders the
// journal page. The gallery is a derived, re-creatable projection of the
// repository: it decides display order (most recent first) but is never
// read back as a source of truth.
package render

import (
	"slices"
	"sync"
	"time"

	"github.com/pkordes/photo-journal/internal/domain"
)

// DisplayDateLayout is the long, locale-fixed date shown on cards.
const DisplayDateLayout = "January 2, 2006"

// Card is the rendered form of one journey.
type Card struct {
	ID          string
	Image       string
	Destination string
	DisplayDate string
	Description string
}

// Title is the text the search filter matches against.
func (c Card) Title() string {
	return c.Destination
}

// NewCard builds the card for a journey.
func NewCard(j domain.Journey) Card {
	return Card{
		ID:          j.ID,
		Image:       j.Image,
		Destination: j.Destination,
		DisplayDate: FormatDate(j.Date),
		Description: j.Description,
	}
}

// FormatDate turns a stored "2006-01-02" date into "August 1, 2025".
// Values that do not parse are shown as stored.
func FormatDate(raw string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DisplayDateLayout)
		}
	}
	return raw
}

// Gallery is the ordered set of cards currently on display.
// It is safe for concurrent use.
type Gallery struct {
	mu    sync.RWMutex
	cards []Card // index 0 is the first card shown
}

// NewGallery returns an empty gallery.
func NewGallery() *Gallery {
	return &Gallery{}
}

// Render creates the card for j and puts it in front of every other card.
func (g *Gallery) Render(j domain.Journey) Card {
	c := NewCard(j)
	g.mu.Lock()
	g.cards = slices.Insert(g.cards, 0, c)
	g.mu.Unlock()
	return c
}

// RemoveByID drops the card for id. It reports whether a card was removed;
// an unknown id is a no-op.
func (g *Gallery) RemoveByID(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := slices.IndexFunc(g.cards, func(c Card) bool { return c.ID == id })
	if i < 0 {
		return false
	}
	g.cards = slices.Delete(g.cards, i, i+1)
	return true
}

// Replace removes any card for j.ID and renders j in front.
func (g *Gallery) Replace(j domain.Journey) Card {
	g.RemoveByID(j.ID)
	return g.Render(j)
}

// RenderAll renders each journey in sequence order, so the last journey in
// storage ends up first on display.
func (g *Gallery) RenderAll(journeys []domain.Journey) {
	for _, j := range journeys {
		g.Render(j)
	}
}

// Reset removes every card.
func (g *Gallery) Reset() {
	g.mu.Lock()
	g.cards = nil
	g.mu.Unlock()
}

// Cards returns a snapshot of the cards in display order.
func (g *Gallery) Cards() []Card {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.cards)
}

// Card returns the displayed card for id.
func (g *Gallery) Card(id string) (Card, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i := slices.IndexFunc(g.cards, func(c Card) bool { return c.ID == id })
	if i < 0 {
		return Card{}, false
	}
	return g.cards[i], true
}
