package model

import "time"

// Payment records the money side of a ticket purchase.  Amounts are fixed at
// creation; only the status and the approval pair (timestamp + authorization
// code) change afterwards.  The approval pair is set if and only if the
// payment is approved.
//
// Fields:
//  ID                 – prefixed identifier ("PAY-...").
//  TicketID           – ticket this payment pays for.
//  ParticipantID      – payer.
//  EventID            – event, denormalized for reporting.
//  BaseAmount         – ticket price in pesos (VIP discount already applied).
//  Method             – payment method used.
//  MethodCommission   – method commission in pesos, charged to the buyer.
//  PlatformCommission – platform's 5% of BaseAmount; an internal split taken
//                       from the organizer's share, not charged to the buyer.
//  TotalAmount        – what the buyer pays: BaseAmount + MethodCommission.
//  Status             – PENDING / APPROVED / REJECTED / REFUNDED / CANCELLED.
//  AuthorizationCode  – gateway code, only present when approved.
//  CreatedAt          – creation timestamp.
//  ApprovedAt         – approval timestamp (nil unless approved).
type Payment struct {
	ID                 string        `json:"id"`
	TicketID           string        `json:"ticket_id"`
	ParticipantID      string        `json:"participant_id"`
	EventID            string        `json:"event_id"`
	BaseAmount         int64         `json:"base_amount"`
	Method             PaymentMethod `json:"method"`
	MethodCommission   int64         `json:"method_commission"`
	PlatformCommission int64         `json:"platform_commission"`
	TotalAmount        int64         `json:"total_amount"`
	Status             PaymentStatus `json:"status"`
	AuthorizationCode  string        `json:"authorization_code,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	ApprovedAt         *time.Time    `json:"approved_at,omitempty"`
}

// Approve moves a pending payment to APPROVED, stamping the approval time
// and authorization code.  Returns false from any other status.
func (p *Payment) Approve(now time.Time, authCode string) bool {
	if p.Status != PaymentStatusPending {
		return false
	}
	p.Status = PaymentStatusApproved
	p.ApprovedAt = &now
	p.AuthorizationCode = authCode
	return true
}

// Reject moves a pending payment to REJECTED.
func (p *Payment) Reject() bool {
	if p.Status != PaymentStatusPending {
		return false
	}
	p.Status = PaymentStatusRejected
	return true
}

// Refund moves an approved payment to REFUNDED.  Only approved payments may
// be refunded; the linked ticket's used flag is left untouched.
func (p *Payment) Refund() bool {
	if p.Status != PaymentStatusApproved {
		return false
	}
	p.Status = PaymentStatusRefunded
	return true
}

// Cancel moves a pending payment to CANCELLED.  Approved payments must be
// refunded instead.
func (p *Payment) Cancel() bool {
	if p.Status != PaymentStatusPending {
		return false
	}
	p.Status = PaymentStatusCancelled
	return true
}

// OrganizerNet returns the organizer's share: base minus platform commission
// while the payment is approved, zero otherwise.
func (p *Payment) OrganizerNet() int64 {
	if p.Status != PaymentStatusApproved {
		return 0
	}
	return p.BaseAmount - p.PlatformCommission
}

// PlatformNet returns the platform's share while the payment is approved,
// zero otherwise.
func (p *Payment) PlatformNet() int64 {
	if p.Status != PaymentStatusApproved {
		return 0
	}
	return p.PlatformCommission
}
