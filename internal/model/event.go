package model

import "time"

// Event is the central entity of the platform: a scheduled gathering with a
// fixed capacity and two participant rosters.  The identifier, type, capacity
// and organizer are immutable after creation; name, description, schedule,
// location and status may change.  Rosters hold participant ids only, never
// Participant objects.
//
// Invariants maintained by the methods below:
//   - the attended roster is always a subset of the registered roster
//   - the registered roster never exceeds Capacity
//   - neither roster holds duplicates
//
// Mutations here are not self-synchronizing; the service layer serializes
// them per event id.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	Capacity    int         `json:"capacity"`
	OrganizerID string      `json:"organizer_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`
	Status      EventStatus `json:"status"`
	Registered  []string    `json:"registered"`
	Attended    []string    `json:"attended"`
	Agenda      []string    `json:"agenda"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsRegistered reports whether the participant id is on the registered roster.
func (e *Event) IsRegistered(participantID string) bool {
	return contains(e.Registered, participantID)
}

// HasAttended reports whether the participant id is on the attended roster.
func (e *Event) HasAttended(participantID string) bool {
	return contains(e.Attended, participantID)
}

// Register appends a participant id to the registered roster.  It returns
// false, without modifying the event, when the id is empty, already
// registered, the event is at capacity, or the status no longer accepts
// registrations.
func (e *Event) Register(participantID string) bool {
	if participantID == "" {
		return false
	}
	if !e.Status.AcceptsRegistration() {
		return false
	}
	if len(e.Registered) >= e.Capacity {
		return false
	}
	if e.IsRegistered(participantID) {
		return false
	}
	e.Registered = append(e.Registered, participantID)
	return true
}

// CheckIn moves a registered participant onto the attended roster.  It
// returns false when the participant is not registered, already checked in,
// or the event status does not accept check-ins.
func (e *Event) CheckIn(participantID string) bool {
	if !e.Status.AcceptsCheckIn() {
		return false
	}
	if !e.IsRegistered(participantID) {
		return false
	}
	if e.HasAttended(participantID) {
		return false
	}
	e.Attended = append(e.Attended, participantID)
	return true
}

// CancelRegistration removes a participant from the registered roster and,
// if they had already checked in, from the attended roster as well so the
// subset invariant holds.  Returns whether a removal occurred.
func (e *Event) CancelRegistration(participantID string) bool {
	removed := false
	e.Registered, removed = remove(e.Registered, participantID)
	if removed {
		e.Attended, _ = remove(e.Attended, participantID)
	}
	return removed
}

// AttendanceRate returns attended over registered as a percentage, or 0 when
// nobody is registered.
func (e *Event) AttendanceRate() float64 {
	if len(e.Registered) == 0 {
		return 0
	}
	return float64(len(e.Attended)) / float64(len(e.Registered)) * 100
}

// AvailableSlots returns the remaining capacity.
func (e *Event) AvailableSlots() int {
	return e.Capacity - len(e.Registered)
}

// TransitionTo applies a lifecycle transition, returning false when the move
// is not legal from the current status.
func (e *Event) TransitionTo(next EventStatus) bool {
	if !e.Status.CanTransitionTo(next) {
		return false
	}
	e.Status = next
	return true
}

// AddAgendaItem appends a free-text agenda entry.
func (e *Event) AddAgendaItem(item string) {
	e.Agenda = append(e.Agenda, item)
}

// Clone returns a deep copy so repository callers cannot mutate rosters that
// belong to the stored event.
func (e *Event) Clone() Event {
	cp := *e
	cp.Registered = append([]string(nil), e.Registered...)
	cp.Attended = append([]string(nil), e.Attended...)
	cp.Agenda = append([]string(nil), e.Agenda...)
	return cp
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
