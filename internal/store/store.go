// Package store persists the journey collection as one serialized value in a
// key/value slot store. The whole collection is read and written at once;
// there are no partial or record-level writes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/photo-journal/internal/domain"
)

// DefaultKey is the slot that holds the journey collection.
const DefaultKey = "journeys"

// ErrUnavailable is returned by Adapter.Load when the backing slot store
// cannot be read. The returned collection is still usable (empty).
var ErrUnavailable = errors.New("store unavailable")

// Slots is a key/value string store. Get reports ok=false for an absent key.
// Implementations must be safe for concurrent use.
type Slots interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
}

// Adapter reads and writes the full journey collection in a single slot.
type Adapter struct {
	slots Slots
	key   string
	log   *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey overrides the slot key. Empty keys are ignored.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger used to report malformed stored content.
func WithLogger(log *slog.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAdapter constructs an Adapter over the given slot store.
func NewAdapter(slots Slots, opts ...Option) *Adapter {
	a := &Adapter{slots: slots, key: DefaultKey, log: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load returns the stored collection in storage order.
//
// An absent slot or blank value yields an empty collection. Malformed content
// also yields an empty collection and is logged, never returned as an error.
// A failing backend yields an empty collection together with an error
// wrapping ErrUnavailable, so callers can decide whether to proceed.
func (a *Adapter) Load(ctx context.Context) ([]domain.Journey, error) {
	raw, ok, err := a.slots.Get(ctx, a.key)
	if err != nil {
		return []domain.Journey{}, fmt.Errorf("store.Adapter.Load: %w: %w", ErrUnavailable, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.Journey{}, nil
	}

	var journeys []domain.Journey
	if err := json.Unmarshal([]byte(raw), &journeys); err != nil {
		a.log.WarnContext(ctx, "stored collection is malformed; treating as empty",
			"key", a.key,
			"error", err,
		)
		return []domain.Journey{}, nil
	}
	if journeys == nil {
		journeys = []domain.Journey{}
	}
	return journeys, nil
}

// Save serializes the whole collection and overwrites the slot.
// A nil collection is stored as an empty list.
func (a *Adapter) Save(ctx context.Context, journeys []domain.Journey) error {
	if journeys == nil {
		journeys = []domain.Journey{}
	}
	b, err := json.Marshal(journeys)
	if err != nil {
		return fmt.Errorf("store.Adapter.Save: encode: %w", err)
	}
	if err := a.slots.Put(ctx, a.key, string(b)); err != nil {
		return fmt.Errorf("store.Adapter.Save: %w", err)
	}
	return nil
}
