package service

import (
	"context"
	"log"
	"time"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/queue"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/validate"
)

// TicketingService issues tickets and payments and drives the payment state
// machine.  Purchase runs under the event's mutex from the shared LockMap so
// ticket and payment creation is atomic relative to roster mutations on the
// same event.  Payment and ticket transitions run under a lock keyed by the
// payment or ticket id, so a check-then-act on a repository copy cannot race
// with a concurrent caller of the same transition.
type TicketingService struct {
	events       *repository.EventRepo
	participants *repository.ParticipantRepo
	tickets      *repository.TicketRepo
	payments     *repository.PaymentRepo
	locks        *LockMap
	gen          ids.Generator
	policy       ApprovalPolicy
	mirror       Mirror
	publisher    Publisher
	clk          clock.Clock
}

// NewTicketingService wires the issuance engine.
func NewTicketingService(
	events *repository.EventRepo,
	participants *repository.ParticipantRepo,
	tickets *repository.TicketRepo,
	payments *repository.PaymentRepo,
	locks *LockMap,
	gen ids.Generator,
	policy ApprovalPolicy,
	mirror Mirror,
	publisher Publisher,
	clk clock.Clock,
) *TicketingService {
	return &TicketingService{
		events:       events,
		participants: participants,
		tickets:      tickets,
		payments:     payments,
		locks:        locks,
		gen:          gen,
		policy:       policy,
		mirror:       mirror,
		publisher:    publisher,
		clk:          clk,
	}
}

// Purchase derives the price and commissions for a ticket and creates the
// linked Ticket (unused) and Payment (PENDING) records.
//
// Price resolution: the ticket type's base price, discounted 20% for VIP
// participants on paid types.  The method commission is charged on top of
// the base and paid by the buyer; the 5% platform commission is computed on
// the same (possibly discounted) base but is an internal split deducted from
// the organizer's share, so TotalAmount = base + method commission only.
func (s *TicketingService) Purchase(ctx context.Context, eventID, participantID string, ticketType model.TicketType, method model.PaymentMethod) (model.Ticket, model.Payment, error) {
	if !ticketType.Valid() {
		return model.Ticket{}, model.Payment{}, &validate.InvalidDataError{Field: "ticket_type", Reason: "unknown ticket type"}
	}
	if !method.Valid() {
		return model.Ticket{}, model.Payment{}, &validate.InvalidDataError{Field: "payment_method", Reason: "unknown payment method"}
	}
	participant, err := s.participants.FindByID(participantID)
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}

	unlock := s.locks.Lock(eventID)
	event, err := s.events.FindByID(eventID)
	if err != nil {
		unlock()
		return model.Ticket{}, model.Payment{}, err
	}

	now := s.clk.Now()
	base := ticketType.PriceFor(participant.VIP)
	ticket := model.Ticket{
		ID:            s.gen.New(ids.PrefixTicket),
		EventID:       event.ID,
		ParticipantID: participant.ID,
		Type:          ticketType,
		Price:         base,
		PurchasedAt:   now,
	}
	payment := model.Payment{
		ID:                 s.gen.New(ids.PrefixPayment),
		TicketID:           ticket.ID,
		ParticipantID:      participant.ID,
		EventID:            event.ID,
		BaseAmount:         base,
		Method:             method,
		MethodCommission:   method.CommissionAmount(base),
		PlatformCommission: model.PlatformCommission(base),
		TotalAmount:        method.TotalWithCommission(base),
		Status:             model.PaymentStatusPending,
		CreatedAt:          now,
	}
	if err := s.tickets.Add(ticket); err != nil {
		unlock()
		return model.Ticket{}, model.Payment{}, err
	}
	if err := s.payments.Add(payment); err != nil {
		// Roll the ticket back so the pair stays consistent.
		_ = s.tickets.Remove(ticket.ID)
		unlock()
		return model.Ticket{}, model.Payment{}, err
	}
	unlock()

	s.persistTicket(ctx, ticket)
	s.persistPayment(ctx, payment)
	return ticket, payment, nil
}

// Process runs the simulated payment outcome on a pending payment.  The
// injected policy decides approval; approval stamps the timestamp and an
// authorization code.  Returns false when the payment is not pending.
func (s *TicketingService) Process(ctx context.Context, paymentID string) (model.Payment, bool, error) {
	unlock := s.locks.Lock(paymentID)
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		unlock()
		return model.Payment{}, false, err
	}
	if payment.Status != model.PaymentStatusPending {
		unlock()
		return payment, false, nil
	}

	if s.policy.Approve(payment) {
		payment.Approve(s.clk.Now(), newAuthCode())
	} else {
		payment.Reject()
	}
	if err := s.payments.Update(payment); err != nil {
		unlock()
		return model.Payment{}, false, err
	}
	unlock()

	s.persistPayment(ctx, payment)
	if err := s.publisher.PublishPaymentProcessed(ctx, queue.PaymentProcessedEvent{
		PaymentID:         payment.ID,
		TicketID:          payment.TicketID,
		EventID:           payment.EventID,
		ParticipantID:     payment.ParticipantID,
		Status:            string(payment.Status),
		Method:            string(payment.Method),
		TotalAmount:       payment.TotalAmount,
		AuthorizationCode: payment.AuthorizationCode,
		ProcessedAt:       s.clk.Now().Format(time.RFC3339),
	}); err != nil {
		log.Printf("queue: publish payment processed failed: %v", err)
	}
	return payment, true, nil
}

// Refund moves an approved payment to REFUNDED.  The ticket's used flag is
// deliberately left untouched.
func (s *TicketingService) Refund(ctx context.Context, paymentID string) (bool, error) {
	unlock := s.locks.Lock(paymentID)
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		unlock()
		return false, err
	}
	if !payment.Refund() {
		unlock()
		return false, nil
	}
	if err := s.payments.Update(payment); err != nil {
		unlock()
		return false, err
	}
	unlock()

	s.persistPayment(ctx, payment)
	return true, nil
}

// Cancel moves a pending payment to CANCELLED.
func (s *TicketingService) Cancel(ctx context.Context, paymentID string) (bool, error) {
	unlock := s.locks.Lock(paymentID)
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		unlock()
		return false, err
	}
	if !payment.Cancel() {
		unlock()
		return false, nil
	}
	if err := s.payments.Update(payment); err != nil {
		unlock()
		return false, err
	}
	unlock()

	s.persistPayment(ctx, payment)
	return true, nil
}

// UseTicket marks a ticket as scanned at the door, once.
func (s *TicketingService) UseTicket(ctx context.Context, ticketID string) (bool, error) {
	unlock := s.locks.Lock(ticketID)
	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		unlock()
		return false, err
	}
	if !ticket.MarkUsed(s.clk.Now()) {
		unlock()
		return false, nil
	}
	if err := s.tickets.Update(ticket); err != nil {
		unlock()
		return false, err
	}
	unlock()

	s.persistTicket(ctx, ticket)
	return true, nil
}

func (s *TicketingService) persistTicket(ctx context.Context, t model.Ticket) {
	if err := s.mirror.SaveTicket(ctx, t); err != nil {
		log.Printf("mirror: save ticket %s failed: %v", t.ID, err)
	}
}

func (s *TicketingService) persistPayment(ctx context.Context, p model.Payment) {
	if err := s.mirror.SavePayment(ctx, p); err != nil {
		log.Printf("mirror: save payment %s failed: %v", p.ID, err)
	}
}
