package model

// This file holds the catalog enumerations of the platform: event types and
// statuses, ticket types with their price table, payment methods with their
// commission table, payment statuses and account statuses.  They are pure
// value tables; none of them carry mutable state.  All monetary amounts are
// integer Colombian pesos, and percentages are expressed in basis points so
// derived amounts stay exact integers.

// EventType classifies an event.  It has no derived behaviour; it exists for
// filtering and reporting.
type EventType string

const (
	EventTypeConference EventType = "CONFERENCE"
	EventTypeSeminar    EventType = "SEMINAR"
	EventTypeWorkshop   EventType = "WORKSHOP"
	EventTypeConcert    EventType = "CONCERT"
	EventTypeWebinar    EventType = "WEBINAR"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusDraft      EventStatus = "DRAFT"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusInProgress EventStatus = "IN_PROGRESS"
	EventStatusFinished   EventStatus = "FINISHED"
	EventStatusCancelled  EventStatus = "CANCELLED"
)

// AcceptsRegistration reports whether new registrations are allowed in this
// status.  Registration is rejected once an event is cancelled or finished.
func (s EventStatus) AcceptsRegistration() bool {
	return s != EventStatusCancelled && s != EventStatusFinished
}

// AcceptsCheckIn reports whether participants may be checked in.  Check-in is
// only meaningful while the event is published or running.
func (s EventStatus) AcceptsCheckIn() bool {
	return s == EventStatusPublished || s == EventStatusInProgress
}

// legalTransitions maps each status to the statuses it may move to.
var legalTransitions = map[EventStatus][]EventStatus{
	EventStatusDraft:      {EventStatusPublished, EventStatusCancelled},
	EventStatusPublished:  {EventStatusInProgress, EventStatusCancelled},
	EventStatusInProgress: {EventStatusFinished, EventStatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition.  FINISHED and CANCELLED are terminal.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, n := range legalTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// TicketType determines the base price of a ticket.
type TicketType string

const (
	TicketTypeFree     TicketType = "FREE"
	TicketTypeStandard TicketType = "STANDARD"
	TicketTypePremium  TicketType = "PREMIUM"
	TicketTypeVIP      TicketType = "VIP"
)

// BasePrice returns the list price in pesos for the ticket type.  Unknown
// types price as zero.
func (t TicketType) BasePrice() int64 {
	switch t {
	case TicketTypeStandard:
		return 50_000
	case TicketTypePremium:
		return 120_000
	case TicketTypeVIP:
		return 250_000
	default:
		return 0
	}
}

// PriceWithVIPDiscount returns the base price with the 20% VIP participant
// discount applied.  FREE tickets stay free.
func (t TicketType) PriceWithVIPDiscount() int64 {
	return t.BasePrice() * 80 / 100
}

// PriceFor resolves the price a participant pays for this ticket type.  VIP
// participants get the discount on every paid type.
func (t TicketType) PriceFor(vip bool) int64 {
	if vip && t != TicketTypeFree {
		return t.PriceWithVIPDiscount()
	}
	return t.BasePrice()
}

// Valid reports whether t is one of the known ticket types.
func (t TicketType) Valid() bool {
	switch t {
	case TicketTypeFree, TicketTypeStandard, TicketTypePremium, TicketTypeVIP:
		return true
	}
	return false
}

// PaymentMethod identifies how a payment is collected.  Each method carries a
// fixed commission rate charged on top of the base price.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodPSE          PaymentMethod = "PSE"
	PaymentMethodNequi        PaymentMethod = "NEQUI"
	PaymentMethodDaviplata    PaymentMethod = "DAVIPLATA"
)

// CommissionBps returns the method's commission rate in basis points
// (1 bps = 0.01%).
func (m PaymentMethod) CommissionBps() int64 {
	switch m {
	case PaymentMethodCreditCard:
		return 300
	case PaymentMethodDebitCard, PaymentMethodNequi, PaymentMethodDaviplata:
		return 150
	case PaymentMethodBankTransfer:
		return 100
	case PaymentMethodPSE:
		return 200
	default: // CASH
		return 0
	}
}

// CommissionAmount returns the commission in pesos for a given base amount.
func (m PaymentMethod) CommissionAmount(base int64) int64 {
	return base * m.CommissionBps() / 10_000
}

// TotalWithCommission returns what the buyer is charged: base plus the
// method commission.
func (m PaymentMethod) TotalWithCommission(base int64) int64 {
	return base + m.CommissionAmount(base)
}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodBankTransfer, PaymentMethodPSE, PaymentMethodNequi, PaymentMethodDaviplata:
		return true
	}
	return false
}

// PlatformCommissionBps is the platform's cut, charged on the (possibly
// discounted) base price.  It is an internal split deducted from the
// organizer's share, never added to what the buyer pays.
const PlatformCommissionBps int64 = 500

// PlatformCommission returns the platform commission in pesos for a base
// amount.
func PlatformCommission(base int64) int64 {
	return base * PlatformCommissionBps / 10_000
}

// PaymentStatus is the state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusApproved  PaymentStatus = "APPROVED"
	PaymentStatusRejected  PaymentStatus = "REJECTED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// AccountStatus is the state of a user account.  Only ACTIVE accounts may
// log in.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusInactive  AccountStatus = "INACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// OrganizerTier buckets organizers by years of experience.
type OrganizerTier string

const (
	TierJunior     OrganizerTier = "JUNIOR"
	TierSemiSenior OrganizerTier = "SEMI_SENIOR"
	TierSenior     OrganizerTier = "SENIOR"
)
