package model

import "time"

// Ticket is a participant's entry pass for an event.  Everything but the
// usage pair is immutable after purchase.  Price is fixed at purchase time
// and may already include the VIP discount.
//
// Fields:
//  ID            – prefixed identifier ("TKT-...").
//  EventID       – event the ticket admits to.
//  ParticipantID – holder of the ticket.
//  Type          – ticket type that determined the price.
//  Price         – price paid in pesos, VIP discount included when it applied.
//  PurchasedAt   – purchase timestamp.
//  Used          – whether the ticket has been scanned at the door.
//  UsedAt        – when it was scanned (nil while unused).
type Ticket struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	ParticipantID string     `json:"participant_id"`
	Type          TicketType `json:"type"`
	Price         int64      `json:"price"`
	PurchasedAt   time.Time  `json:"purchased_at"`
	Used          bool       `json:"used"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
}

// MarkUsed flips the used flag exactly once.  A ticket can never become
// unused again; a second call returns false.
func (t *Ticket) MarkUsed(now time.Time) bool {
	if t.Used {
		return false
	}
	t.Used = true
	t.UsedAt = &now
	return true
}
