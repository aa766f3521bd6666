package repository

import (
	"sort"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

// EventRepo stores events keyed by id.  All values going in and out are deep
// copies; the rosters inside the repo are only reachable through Update.
type EventRepo struct {
	mu     sync.RWMutex
	events map[string]model.Event
}

// NewEventRepo returns an empty event repository.
func NewEventRepo() *EventRepo {
	return &EventRepo{events: make(map[string]model.Event)}
}

// Add stores a new event.  The id must not already exist.
func (r *EventRepo) Add(e model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; ok {
		return ErrDuplicateID
	}
	r.events[e.ID] = e.Clone()
	return nil
}

// FindByID returns a copy of the event or ErrNotFound.
func (r *EventRepo) FindByID(id string) (model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	return e.Clone(), nil
}

// Update replaces the stored event.  The event must already exist.
func (r *EventRepo) Update(e model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return ErrNotFound
	}
	r.events[e.ID] = e.Clone()
	return nil
}

// Remove deletes the event by id.
func (r *EventRepo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

// ListAll returns copies of every event, ordered by id for stable output.
func (r *EventRepo) ListAll() []model.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceAll swaps the whole collection, used when restoring a snapshot at
// startup.
func (r *EventRepo) ReplaceAll(events []model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = make(map[string]model.Event, len(events))
	for _, e := range events {
		r.events[e.ID] = e.Clone()
	}
}
