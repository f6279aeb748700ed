// Package search implements the live destination filter over the cards on
// display. It is pure: it never reads or writes the journey store.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pkordes/photo-journal/internal/render"
)

// Result is the outcome of filtering one gallery snapshot.
type Result struct {
	Query string
	// Marks holds one entry per card. An empty query leaves it empty, which
	// clears every marking.
	Marks    map[string]render.Mark
	Matches  int
	NotFound bool
}

// Matched returns the ids of matched cards in display order.
func (r Result) Matched(cards []render.Card) []string {
	return r.withMark(cards, render.MarkMatched)
}

// Dimmed returns the ids of dimmed cards in display order.
func (r Result) Dimmed(cards []render.Card) []string {
	return r.withMark(cards, render.MarkDimmed)
}

func (r Result) withMark(cards []render.Card, m render.Mark) []string {
	out := []string{}
	for _, c := range cards {
		if r.Marks[c.ID] == m {
			out = append(out, c.ID)
		}
	}
	return out
}

// NormalizeQuery trims and case-folds a raw query.
func NormalizeQuery(raw string) string {
	// A Caser keeps state and is not safe for concurrent use; make one per call.
	return cases.Fold().String(strings.TrimSpace(raw))
}

// Filter marks each card whose title contains the query as matched and
// every other card as dimmed. NotFound is set exactly when the query is
// non-empty and nothing matched.
func Filter(cards []render.Card, rawQuery string) Result {
	q := NormalizeQuery(rawQuery)
	res := Result{Query: q, Marks: make(map[string]render.Mark, len(cards))}
	if q == "" {
		return res
	}

	fold := cases.Fold()
	for _, c := range cards {
		if strings.Contains(fold.String(c.Title()), q) {
			res.Marks[c.ID] = render.MarkMatched
			res.Matches++
		} else {
			res.Marks[c.ID] = render.MarkDimmed
		}
	}
	res.NotFound = res.Matches == 0
	return res
}
