package repository

import (
	"sort"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

// PaymentRepo stores payments keyed by id.
type PaymentRepo struct {
	mu       sync.RWMutex
	payments map[string]model.Payment
}

// NewPaymentRepo returns an empty payment repository.
func NewPaymentRepo() *PaymentRepo {
	return &PaymentRepo{payments: make(map[string]model.Payment)}
}

// Add stores a new payment.
func (r *PaymentRepo) Add(p model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; ok {
		return ErrDuplicateID
	}
	r.payments[p.ID] = p
	return nil
}

// FindByID returns the payment or ErrNotFound.
func (r *PaymentRepo) FindByID(id string) (model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return model.Payment{}, ErrNotFound
	}
	return p, nil
}

// FindByTicket returns the payment linked to a ticket, or ErrNotFound.
func (r *PaymentRepo) FindByTicket(ticketID string) (model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.TicketID == ticketID {
			return p, nil
		}
	}
	return model.Payment{}, ErrNotFound
}

// Update replaces the stored payment.
func (r *PaymentRepo) Update(p model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; !ok {
		return ErrNotFound
	}
	r.payments[p.ID] = p
	return nil
}

// Remove deletes the payment by id.
func (r *PaymentRepo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[id]; !ok {
		return ErrNotFound
	}
	delete(r.payments, id)
	return nil
}

// ListAll returns every payment ordered by id.
func (r *PaymentRepo) ListAll() []model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByEvent returns every payment for an event, ordered by id.
func (r *PaymentRepo) ListByEvent(eventID string) []model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Payment
	for _, p := range r.payments {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceAll swaps the whole collection when restoring a snapshot.
func (r *PaymentRepo) ReplaceAll(payments []model.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = make(map[string]model.Payment, len(payments))
	for _, p := range payments {
		r.payments[p.ID] = p
	}
}
