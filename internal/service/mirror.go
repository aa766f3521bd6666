package service

import (
	"context"

	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/queue"
)

// Mirror is the persistence collaborator.  Services call it after a mutation
// has been committed to the in-memory repositories and after the event lock
// has been released; a mirror failure never rolls back or corrupts in-memory
// state.  Implementations: jsonstore (default), mysqlstore (optional).
type Mirror interface {
	SaveEvent(ctx context.Context, e model.Event) error
	SaveOrganizer(ctx context.Context, o model.Organizer) error
	SaveParticipant(ctx context.Context, p model.Participant) error
	SaveTicket(ctx context.Context, t model.Ticket) error
	SavePayment(ctx context.Context, p model.Payment) error
	SaveUser(ctx context.Context, u model.User) error
}

// NopMirror discards every write.  Used in tests and when persistence is
// disabled.
type NopMirror struct{}

func (NopMirror) SaveEvent(context.Context, model.Event) error             { return nil }
func (NopMirror) SaveOrganizer(context.Context, model.Organizer) error     { return nil }
func (NopMirror) SaveParticipant(context.Context, model.Participant) error { return nil }
func (NopMirror) SaveTicket(context.Context, model.Ticket) error           { return nil }
func (NopMirror) SavePayment(context.Context, model.Payment) error         { return nil }
func (NopMirror) SaveUser(context.Context, model.User) error               { return nil }

// MultiMirror fans every write out to all members.  The first error is
// returned but every member is attempted.
type MultiMirror []Mirror

func (m MultiMirror) SaveEvent(ctx context.Context, e model.Event) error {
	return m.each(func(x Mirror) error { return x.SaveEvent(ctx, e) })
}
func (m MultiMirror) SaveOrganizer(ctx context.Context, o model.Organizer) error {
	return m.each(func(x Mirror) error { return x.SaveOrganizer(ctx, o) })
}
func (m MultiMirror) SaveParticipant(ctx context.Context, p model.Participant) error {
	return m.each(func(x Mirror) error { return x.SaveParticipant(ctx, p) })
}
func (m MultiMirror) SaveTicket(ctx context.Context, t model.Ticket) error {
	return m.each(func(x Mirror) error { return x.SaveTicket(ctx, t) })
}
func (m MultiMirror) SavePayment(ctx context.Context, p model.Payment) error {
	return m.each(func(x Mirror) error { return x.SavePayment(ctx, p) })
}
func (m MultiMirror) SaveUser(ctx context.Context, u model.User) error {
	return m.each(func(x Mirror) error { return x.SaveUser(ctx, u) })
}

func (m MultiMirror) each(save func(Mirror) error) error {
	var first error
	for _, x := range m {
		if err := save(x); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Publisher sends domain notifications to the message broker.  Publishing is
// fire-and-forget from the caller's point of view; errors are logged by the
// implementation and never interrupt the request flow.
type Publisher interface {
	PublishRegistrationConfirmed(ctx context.Context, ev queue.RegistrationConfirmedEvent) error
	PublishPaymentProcessed(ctx context.Context, ev queue.PaymentProcessedEvent) error
}

// NopPublisher drops every message.  Used in tests and when the broker is
// disabled.
type NopPublisher struct{}

func (NopPublisher) PublishRegistrationConfirmed(context.Context, queue.RegistrationConfirmedEvent) error {
	return nil
}
func (NopPublisher) PublishPaymentProcessed(context.Context, queue.PaymentProcessedEvent) error {
	return nil
}
