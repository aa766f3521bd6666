package jsonstore

import (
	"context"

	"github.com/dfquintero/eventia/internal/model"
)

// The Save methods implement the service Mirror interface.  Each upserts the
// entity into the in-memory copy of its collection and rewrites that
// collection's file.

func (s *Store) SaveEvent(_ context.Context, e model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = e.Clone()
	return flush(s.dir, eventsFile, s.events)
}

func (s *Store) SaveOrganizer(_ context.Context, o model.Organizer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.organizers[o.ID] = o
	return flush(s.dir, organizersFile, s.organizers)
}

func (s *Store) SaveParticipant(_ context.Context, p model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[p.ID] = p
	return flush(s.dir, participantsFile, s.participants)
}

func (s *Store) SaveTicket(_ context.Context, t model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[t.ID] = t
	return flush(s.dir, ticketsFile, s.tickets)
}

func (s *Store) SavePayment(_ context.Context, p model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = p
	return flush(s.dir, paymentsFile, s.payments)
}

func (s *Store) SaveUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return flush(s.dir, usersFile, s.users)
}

// The list accessors hand the loaded collections to the repositories at
// startup so state survives restarts.

func (s *Store) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Clone())
	}
	return out
}

func (s *Store) Organizers() []model.Organizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Organizer, 0, len(s.organizers))
	for _, o := range s.organizers {
		out = append(out, o)
	}
	return out
}

func (s *Store) Participants() []model.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p)
	}
	return out
}

func (s *Store) Tickets() []model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	return out
}

func (s *Store) Payments() []model.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	return out
}

func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}
