// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into notification log lines.
package queue

// RegistrationConfirmedEvent is published when a participant is registered
// into an event.  It carries enough context for downstream consumers to
// notify or log without querying the service.
type RegistrationConfirmedEvent struct {
	EventID         string `json:"event_id"`
	EventName       string `json:"event_name"`
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	AvailableSlots  int    `json:"available_slots"`
	RegisteredAt    string `json:"registered_at"`
}

// PaymentProcessedEvent is published after a payment's simulated processing
// completes, whether it was approved or rejected.
type PaymentProcessedEvent struct {
	PaymentID         string `json:"payment_id"`
	TicketID          string `json:"ticket_id"`
	EventID           string `json:"event_id"`
	ParticipantID     string `json:"participant_id"`
	Status            string `json:"status"`
	Method            string `json:"method"`
	TotalAmount       int64  `json:"total_amount"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
	ProcessedAt       string `json:"processed_at"`
}
