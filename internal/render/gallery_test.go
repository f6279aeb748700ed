package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/render"
)

func journey(id, dest string) domain.Journey {
	return domain.Journey{
		ID:          id,
		Destination: dest,
		Date:        "2025-08-01",
		Description: "Cherry blossoms",
		Image:       "data:image/png;base64,iVBORw0KGgo=",
	}
}

func ids(cards []render.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2025-08-01":           "August 1, 2025",
		"2024-12-25":           "December 25, 2024",
		"2025-08-01T10:00:00Z": "August 1, 2025",
		"sometime in spring":   "sometime in spring",
		"":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, render.FormatDate(in), in)
	}
}

func TestNewCard(t *testing.T) {
	c := render.NewCard(journey("a", "Kyoto"))

	assert.Equal(t, "a", c.ID)
	assert.Equal(t, "Kyoto", c.Title())
	assert.Equal(t, "August 1, 2025", c.DisplayDate)
	assert.Equal(t, "Cherry blossoms", c.Description)
}

func TestGallery_RenderPrepends(t *testing.T) {
	g := render.NewGallery()

	g.Render(journey("a", "Kyoto"))
	g.Render(journey("b", "Lisbon"))

	assert.Equal(t, []string{"b", "a"}, ids(g.Cards()))
}

func TestGallery_RenderAll_MostRecentFirst(t *testing.T) {
	g := render.NewGallery()

	g.RenderAll([]domain.Journey{journey("a", "Kyoto"), journey("b", "Lisbon"), journey("c", "Quito")})

	assert.Equal(t, []string{"c", "b", "a"}, ids(g.Cards()))
}

func TestGallery_RemoveByID(t *testing.T) {
	g := render.NewGallery()
	g.RenderAll([]domain.Journey{journey("a", "Kyoto"), journey("b", "Lisbon")})

	assert.True(t, g.RemoveByID("a"))
	assert.False(t, g.RemoveByID("a"), "second removal is a no-op")
	assert.False(t, g.RemoveByID("missing"))

	assert.Equal(t, []string{"b"}, ids(g.Cards()))
}

func TestGallery_ReplaceMovesToFront(t *testing.T) {
	g := render.NewGallery()
	g.RenderAll([]domain.Journey{journey("a", "Kyoto"), journey("b", "Lisbon")})

	edited := journey("a", "Kyoto")
	edited.Description = "Autumn leaves"
	g.Replace(edited)

	cards := g.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].ID)
	assert.Equal(t, "Autumn leaves", cards[0].Description)
}

func TestGallery_CardsIsSnapshot(t *testing.T) {
	g := render.NewGallery()
	g.Render(journey("a", "Kyoto"))

	snap := g.Cards()
	snap[0].Destination = "mutated"

	c, ok := g.Card("a")
	require.True(t, ok)
	assert.Equal(t, "Kyoto", c.Destination)
}

func TestGallery_Reset(t *testing.T) {
	g := render.NewGallery()
	g.Render(journey("a", "Kyoto"))

	g.Reset()

	assert.Empty(t, g.Cards())
	_, ok := g.Card("a")
	assert.False(t, ok)
}
