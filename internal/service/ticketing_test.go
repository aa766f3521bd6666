package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/validate"
)

type ticketingFixture struct {
	tickets  *repository.TicketRepo
	payments *repository.PaymentRepo
	svc      *TicketingService
}

func newTicketingFixture(t *testing.T, policy ApprovalPolicy, vip bool) ticketingFixture {
	t.Helper()
	events := repository.NewEventRepo()
	participants := repository.NewParticipantRepo()
	tickets := repository.NewTicketRepo()
	payments := repository.NewPaymentRepo()
	if err := events.Add(model.Event{
		ID:       "EVT-000001",
		Capacity: 100,
		Name:     "GopherCon Bogota",
		Status:   model.EventStatusPublished,
	}); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	if err := participants.Add(model.Participant{
		Person: model.Person{ID: "PRT-000001", FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"},
		VIP:    vip,
	}); err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	svc := NewTicketingService(
		events, participants, tickets, payments,
		NewLockMap(), ids.NewSequence(), policy,
		NopMirror{}, NopPublisher{}, clock.NewFixed(testNow),
	)
	return ticketingFixture{tickets: tickets, payments: payments, svc: svc}
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("standard ticket by cash", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		ticket, payment, err := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)
		if err != nil {
			t.Fatalf("Purchase: %v", err)
		}
		if ticket.Price != 50_000 {
			t.Errorf("ticket price = %d, want 50000", ticket.Price)
		}
		if payment.MethodCommission != 0 {
			t.Errorf("method commission = %d, want 0", payment.MethodCommission)
		}
		if payment.PlatformCommission != 2_500 {
			t.Errorf("platform commission = %d, want 2500", payment.PlatformCommission)
		}
		if payment.TotalAmount != 50_000 {
			t.Errorf("total = %d, want 50000", payment.TotalAmount)
		}
		if payment.Status != model.PaymentStatusPending {
			t.Errorf("status = %s, want PENDING", payment.Status)
		}
		if payment.TicketID != ticket.ID {
			t.Error("payment must reference the ticket")
		}
		if ticket.Used {
			t.Error("fresh tickets are unused")
		}
	})

	t.Run("vip participant pays discounted base plus card commission", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, true)
		ticket, payment, err := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCreditCard)
		if err != nil {
			t.Fatalf("Purchase: %v", err)
		}
		if ticket.Price != 40_000 {
			t.Errorf("discounted price = %d, want 40000", ticket.Price)
		}
		if payment.MethodCommission != 1_200 {
			t.Errorf("method commission = %d, want 1200", payment.MethodCommission)
		}
		if payment.PlatformCommission != 2_000 {
			t.Errorf("platform commission = %d, want 2000", payment.PlatformCommission)
		}
		if payment.TotalAmount != 41_200 {
			t.Errorf("total = %d, want 41200", payment.TotalAmount)
		}
	})

	t.Run("free ticket stays zero everywhere", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, true)
		ticket, payment, err := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeFree, model.PaymentMethodCreditCard)
		if err != nil {
			t.Fatalf("Purchase: %v", err)
		}
		if ticket.Price != 0 || payment.TotalAmount != 0 || payment.MethodCommission != 0 || payment.PlatformCommission != 0 {
			t.Errorf("free ticket produced nonzero amounts: %+v", payment)
		}
	})

	t.Run("unknown ticket type is invalid data", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		_, _, err := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketType("GOLD"), model.PaymentMethodCash)
		var invalid *validate.InvalidDataError
		if !errors.As(err, &invalid) {
			t.Errorf("err = %v, want InvalidDataError", err)
		}
	})

	t.Run("unknown participant is not found", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		_, _, err := f.svc.Purchase(ctx, "EVT-000001", "PRT-nope", model.TicketTypeStandard, model.PaymentMethodCash)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("approval stamps time and code", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		_, payment, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCreditCard)

		processed, ok, err := f.svc.Process(ctx, payment.ID)
		if err != nil || !ok {
			t.Fatalf("Process = (%v, %v), want (true, nil)", ok, err)
		}
		if processed.Status != model.PaymentStatusApproved {
			t.Errorf("status = %s, want APPROVED", processed.Status)
		}
		if processed.ApprovedAt == nil || !processed.ApprovedAt.Equal(testNow) {
			t.Error("approval timestamp not stamped")
		}
		if !strings.HasPrefix(processed.AuthorizationCode, "AUTH-") || len(processed.AuthorizationCode) != 13 {
			t.Errorf("authorization code = %q", processed.AuthorizationCode)
		}
	})

	t.Run("rejection leaves no approval pair", func(t *testing.T) {
		f := newTicketingFixture(t, RejectAll{}, false)
		_, payment, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCreditCard)

		processed, ok, err := f.svc.Process(ctx, payment.ID)
		if err != nil || !ok {
			t.Fatalf("Process = (%v, %v), want (true, nil)", ok, err)
		}
		if processed.Status != model.PaymentStatusRejected {
			t.Errorf("status = %s, want REJECTED", processed.Status)
		}
		if processed.ApprovedAt != nil || processed.AuthorizationCode != "" {
			t.Error("rejected payment must not carry the approval pair")
		}
	})

	t.Run("reprocessing is a conflict", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		_, payment, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)
		f.svc.Process(ctx, payment.ID)
		_, ok, err := f.svc.Process(ctx, payment.ID)
		if err != nil || ok {
			t.Errorf("second Process = (%v, %v), want (false, nil)", ok, err)
		}
	})
}

func TestRefundAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("refund requires approval and leaves ticket usage alone", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		ticket, payment, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)

		if ok, _ := f.svc.Refund(ctx, payment.ID); ok {
			t.Error("pending payment should not refund")
		}
		f.svc.Process(ctx, payment.ID)
		f.svc.UseTicket(ctx, ticket.ID)

		ok, err := f.svc.Refund(ctx, payment.ID)
		if err != nil || !ok {
			t.Fatalf("Refund = (%v, %v), want (true, nil)", ok, err)
		}
		got, _ := f.payments.FindByID(payment.ID)
		if got.Status != model.PaymentStatusRefunded {
			t.Errorf("status = %s, want REFUNDED", got.Status)
		}
		tk, _ := f.tickets.FindByID(ticket.ID)
		if !tk.Used {
			t.Error("refund must not flip the ticket's used flag")
		}
	})

	t.Run("cancel only while pending", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		_, payment, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)

		ok, err := f.svc.Cancel(ctx, payment.ID)
		if err != nil || !ok {
			t.Fatalf("Cancel = (%v, %v), want (true, nil)", ok, err)
		}
		_, payment2, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)
		f.svc.Process(ctx, payment2.ID)
		if ok, _ := f.svc.Cancel(ctx, payment2.ID); ok {
			t.Error("approved payment should not cancel")
		}
	})
}

func TestConcurrentTransitionsApplyOnce(t *testing.T) {
	ctx := context.Background()
	const contenders = 16

	race := func(t *testing.T, op func() (bool, error)) int {
		t.Helper()
		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0
		for i := 0; i < contenders; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := op()
				if err != nil {
					t.Errorf("transition: %v", err)
					return
				}
				if ok {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		return succeeded
	}

	t.Run("refund", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		_, payment, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)
		f.svc.Process(ctx, payment.ID)

		if n := race(t, func() (bool, error) { return f.svc.Refund(ctx, payment.ID) }); n != 1 {
			t.Errorf("%d refunds reported success, want exactly 1", n)
		}
		got, _ := f.payments.FindByID(payment.ID)
		if got.Status != model.PaymentStatusRefunded {
			t.Errorf("status = %s, want REFUNDED", got.Status)
		}
	})

	t.Run("process", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		_, payment, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)

		n := race(t, func() (bool, error) {
			_, ok, err := f.svc.Process(ctx, payment.ID)
			return ok, err
		})
		if n != 1 {
			t.Errorf("%d process calls reported success, want exactly 1", n)
		}
	})

	t.Run("use ticket", func(t *testing.T) {
		f := newTicketingFixture(t, ApproveAll{}, false)
		ticket, _, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)

		if n := race(t, func() (bool, error) { return f.svc.UseTicket(ctx, ticket.ID) }); n != 1 {
			t.Errorf("%d scans reported success, want exactly 1", n)
		}
	})
}

func TestUseTicket(t *testing.T) {
	ctx := context.Background()
	f := newTicketingFixture(t, ApproveAll{}, false)
	ticket, _, _ := f.svc.Purchase(ctx, "EVT-000001", "PRT-000001", model.TicketTypeStandard, model.PaymentMethodCash)

	ok, err := f.svc.UseTicket(ctx, ticket.ID)
	if err != nil || !ok {
		t.Fatalf("UseTicket = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = f.svc.UseTicket(ctx, ticket.ID)
	if err != nil || ok {
		t.Errorf("second UseTicket = (%v, %v), want (false, nil)", ok, err)
	}
	if _, err := f.svc.UseTicket(ctx, "TKT-nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
