// Package repo owns the canonical journey collection.
// Every mutation is a full load → mutate → save cycle against the store
// adapter. No business validation lives here.
package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/photo-journal/internal/domain"
)

// collection is the whole-collection persistence contract satisfied by
// *store.Adapter.
type collection interface {
	Load(ctx context.Context) ([]domain.Journey, error)
	Save(ctx context.Context, journeys []domain.Journey) error
}

// JourneyRepo defines the persistence operations for journeys.
// The service layer depends on this interface, which allows it to be
// unit-tested with a mock.
type JourneyRepo interface {
	// List returns every journey in storage (insertion) order.
	List(ctx context.Context) ([]domain.Journey, error)

	// GetByID returns the journey with the given id.
	// Returns domain.ErrNotFound if no such journey exists.
	GetByID(ctx context.Context, id string) (domain.Journey, error)

	// Upsert replaces the journey with a matching id in place, appends it
	// when the id is unknown, or assigns a fresh id and appends it when the
	// id is empty. It returns the journey as stored.
	Upsert(ctx context.Context, journey domain.Journey) (domain.Journey, error)

	// Delete removes the journey with the given id. Deleting an absent id is
	// a no-op and returns nil.
	Delete(ctx context.Context, id string) error
}

// storeJourneyRepo is the JourneyRepo backed by a whole-collection store.
type storeJourneyRepo struct {
	// mu serializes read-modify-write cycles; HTTP handlers run concurrently.
	mu    sync.Mutex
	store collection
	newID func() string
}

// Option configures the repository.
type Option func(*storeJourneyRepo)

// WithIDGenerator replaces the id generator. Tests use it for stable ids.
func WithIDGenerator(gen func() string) Option {
	return func(r *storeJourneyRepo) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// NewJourneyRepo constructs a JourneyRepo over the given collection store.
// In production pass *store.Adapter.
func NewJourneyRepo(store collection, opts ...Option) JourneyRepo {
	r := &storeJourneyRepo{store: store, newID: newJourneyID}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newJourneyID returns a time-ordered UUIDv7 string, falling back to a random
// v4 if the clock-based generator fails.
func newJourneyID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (r *storeJourneyRepo) List(ctx context.Context) ([]domain.Journey, error) {
	journeys, err := r.store.Load(ctx)
	if err != nil {
		return journeys, fmt.Errorf("repo.JourneyRepo.List: %w", err)
	}
	return journeys, nil
}

func (r *storeJourneyRepo) GetByID(ctx context.Context, id string) (domain.Journey, error) {
	journeys, err := r.store.Load(ctx)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.GetByID: %w", err)
	}
	i := indexOf(journeys, id)
	if i < 0 {
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.GetByID: %w", domain.ErrNotFound)
	}
	return journeys[i], nil
}

func (r *storeJourneyRepo) Upsert(ctx context.Context, journey domain.Journey) (domain.Journey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// An unreadable slot must not be overwritten with a one-element list.
	journeys, err := r.store.Load(ctx)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.Upsert: %w", err)
	}

	if !journey.HasID() {
		journey.ID = r.newID()
		journeys = append(journeys, journey)
	} else if i := indexOf(journeys, journey.ID); i >= 0 {
		journeys[i] = journey
	} else {
		journeys = append(journeys, journey)
	}

	if err := r.store.Save(ctx, journeys); err != nil {
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.Upsert: %w", err)
	}
	return journey, nil
}

func (r *storeJourneyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	journeys, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("repo.JourneyRepo.Delete: %w", err)
	}

	kept := slices.DeleteFunc(journeys, func(j domain.Journey) bool { return j.ID == id })
	if err := r.store.Save(ctx, kept); err != nil {
		return fmt.Errorf("repo.JourneyRepo.Delete: %w", err)
	}
	return nil
}

func indexOf(journeys []domain.Journey, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(journeys, func(j domain.Journey) bool { return j.ID == id })
}
