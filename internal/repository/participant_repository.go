package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

// ParticipantRepo stores participant profiles keyed by id.
type ParticipantRepo struct {
	mu           sync.RWMutex
	participants map[string]model.Participant
}

// NewParticipantRepo returns an empty participant repository.
func NewParticipantRepo() *ParticipantRepo {
	return &ParticipantRepo{participants: make(map[string]model.Participant)}
}

func cloneParticipant(p model.Participant) model.Participant {
	cp := p
	cp.Interests = append([]string(nil), p.Interests...)
	cp.RegisteredEventIDs = append([]string(nil), p.RegisteredEventIDs...)
	return cp
}

// Add stores a new participant.  Emails are unique within the collection.
func (r *ParticipantRepo) Add(p model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[p.ID]; ok {
		return ErrDuplicateID
	}
	for _, existing := range r.participants {
		if strings.EqualFold(existing.Email, p.Email) {
			return ErrEmailExists
		}
	}
	r.participants[p.ID] = cloneParticipant(p)
	return nil
}

// FindByID returns a copy of the participant or ErrNotFound.
func (r *ParticipantRepo) FindByID(id string) (model.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[id]
	if !ok {
		return model.Participant{}, ErrNotFound
	}
	return cloneParticipant(p), nil
}

// FindByEmail returns the participant with the given email, or ErrNotFound.
func (r *ParticipantRepo) FindByEmail(email string) (model.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.participants {
		if strings.EqualFold(p.Email, email) {
			return cloneParticipant(p), nil
		}
	}
	return model.Participant{}, ErrNotFound
}

// Update replaces the stored participant.
func (r *ParticipantRepo) Update(p model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[p.ID]; !ok {
		return ErrNotFound
	}
	r.participants[p.ID] = cloneParticipant(p)
	return nil
}

// Remove deletes the participant by id.
func (r *ParticipantRepo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[id]; !ok {
		return ErrNotFound
	}
	delete(r.participants, id)
	return nil
}

// ListAll returns copies of every participant ordered by id.
func (r *ParticipantRepo) ListAll() []model.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, cloneParticipant(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceAll swaps the whole collection when restoring a snapshot.
func (r *ParticipantRepo) ReplaceAll(participants []model.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = make(map[string]model.Participant, len(participants))
	for _, p := range participants {
		r.participants[p.ID] = cloneParticipant(p)
	}
}
