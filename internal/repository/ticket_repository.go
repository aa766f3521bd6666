package repository

import (
	"sort"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

// TicketRepo stores tickets keyed by id.
type TicketRepo struct {
	mu      sync.RWMutex
	tickets map[string]model.Ticket
}

// NewTicketRepo returns an empty ticket repository.
func NewTicketRepo() *TicketRepo {
	return &TicketRepo{tickets: make(map[string]model.Ticket)}
}

// Add stores a new ticket.
func (r *TicketRepo) Add(t model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[t.ID]; ok {
		return ErrDuplicateID
	}
	r.tickets[t.ID] = t
	return nil
}

// FindByID returns the ticket or ErrNotFound.
func (r *TicketRepo) FindByID(id string) (model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return model.Ticket{}, ErrNotFound
	}
	return t, nil
}

// Update replaces the stored ticket.
func (r *TicketRepo) Update(t model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[t.ID]; !ok {
		return ErrNotFound
	}
	r.tickets[t.ID] = t
	return nil
}

// Remove deletes the ticket by id.
func (r *TicketRepo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

// ListAll returns every ticket ordered by id.
func (r *TicketRepo) ListAll() []model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByEvent returns every ticket sold for an event, ordered by id.
func (r *TicketRepo) ListByEvent(eventID string) []model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Ticket
	for _, t := range r.tickets {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceAll swaps the whole collection when restoring a snapshot.
func (r *TicketRepo) ReplaceAll(tickets []model.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = make(map[string]model.Ticket, len(tickets))
	for _, t := range tickets {
		r.tickets[t.ID] = t
	}
}
