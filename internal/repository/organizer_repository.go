package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

// OrganizerRepo stores organizer profiles keyed by id.
type OrganizerRepo struct {
	mu         sync.RWMutex
	organizers map[string]model.Organizer
}

// NewOrganizerRepo returns an empty organizer repository.
func NewOrganizerRepo() *OrganizerRepo {
	return &OrganizerRepo{organizers: make(map[string]model.Organizer)}
}

func cloneOrganizer(o model.Organizer) model.Organizer {
	cp := o
	cp.CreatedEventIDs = append([]string(nil), o.CreatedEventIDs...)
	return cp
}

// Add stores a new organizer.  Emails are unique within the collection.
func (r *OrganizerRepo) Add(o model.Organizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.organizers[o.ID]; ok {
		return ErrDuplicateID
	}
	for _, existing := range r.organizers {
		if strings.EqualFold(existing.Email, o.Email) {
			return ErrEmailExists
		}
	}
	r.organizers[o.ID] = cloneOrganizer(o)
	return nil
}

// FindByID returns a copy of the organizer or ErrNotFound.
func (r *OrganizerRepo) FindByID(id string) (model.Organizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.organizers[id]
	if !ok {
		return model.Organizer{}, ErrNotFound
	}
	return cloneOrganizer(o), nil
}

// FindByEmail returns the organizer with the given email, or ErrNotFound.
func (r *OrganizerRepo) FindByEmail(email string) (model.Organizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.organizers {
		if strings.EqualFold(o.Email, email) {
			return cloneOrganizer(o), nil
		}
	}
	return model.Organizer{}, ErrNotFound
}

// Update replaces the stored organizer.
func (r *OrganizerRepo) Update(o model.Organizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.organizers[o.ID]; !ok {
		return ErrNotFound
	}
	r.organizers[o.ID] = cloneOrganizer(o)
	return nil
}

// Remove deletes the organizer by id.
func (r *OrganizerRepo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.organizers[id]; !ok {
		return ErrNotFound
	}
	delete(r.organizers, id)
	return nil
}

// ListAll returns copies of every organizer ordered by id.
func (r *OrganizerRepo) ListAll() []model.Organizer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Organizer, 0, len(r.organizers))
	for _, o := range r.organizers {
		out = append(out, cloneOrganizer(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceAll swaps the whole collection when restoring a snapshot.
func (r *OrganizerRepo) ReplaceAll(organizers []model.Organizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.organizers = make(map[string]model.Organizer, len(organizers))
	for _, o := range organizers {
		r.organizers[o.ID] = cloneOrganizer(o)
	}
}
