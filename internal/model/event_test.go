package model

import "testing"

func newTestEvent(capacity int, status EventStatus) Event {
	return Event{
		ID:       "EVT-000001",
		Type:     EventTypeConference,
		Capacity: capacity,
		Name:     "GopherCon Bogota",
		Status:   status,
	}
}

func TestEventRegister(t *testing.T) {
	t.Run("accepts until capacity", func(t *testing.T) {
		e := newTestEvent(2, EventStatusPublished)
		if !e.Register("PRT-1") || !e.Register("PRT-2") {
			t.Fatal("registrations within capacity should be accepted")
		}
		if e.Register("PRT-3") {
			t.Error("registration beyond capacity should be rejected")
		}
		if got := e.AvailableSlots(); got != 0 {
			t.Errorf("AvailableSlots = %d, want 0", got)
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		e := newTestEvent(10, EventStatusPublished)
		e.Register("PRT-1")
		if e.Register("PRT-1") {
			t.Error("duplicate registration should be rejected")
		}
		if len(e.Registered) != 1 {
			t.Errorf("roster length = %d, want 1", len(e.Registered))
		}
	})

	t.Run("rejects empty id", func(t *testing.T) {
		e := newTestEvent(10, EventStatusPublished)
		if e.Register("") {
			t.Error("empty participant id should be rejected")
		}
	})

	t.Run("rejects closed statuses", func(t *testing.T) {
		for _, status := range []EventStatus{EventStatusFinished, EventStatusCancelled} {
			e := newTestEvent(10, status)
			if e.Register("PRT-1") {
				t.Errorf("registration in %s should be rejected", status)
			}
		}
	})
}

func TestEventCheckIn(t *testing.T) {
	t.Run("requires registration", func(t *testing.T) {
		e := newTestEvent(10, EventStatusInProgress)
		if e.CheckIn("PRT-1") {
			t.Error("check-in without registration should be rejected")
		}
	})

	t.Run("once per participant", func(t *testing.T) {
		e := newTestEvent(10, EventStatusInProgress)
		e.Register("PRT-1")
		if !e.CheckIn("PRT-1") {
			t.Fatal("first check-in should succeed")
		}
		if e.CheckIn("PRT-1") {
			t.Error("second check-in should be rejected")
		}
	})

	t.Run("attended stays a subset of registered", func(t *testing.T) {
		e := newTestEvent(10, EventStatusInProgress)
		e.Register("PRT-1")
		e.Register("PRT-2")
		e.CheckIn("PRT-1")
		for _, id := range e.Attended {
			if !e.IsRegistered(id) {
				t.Errorf("attended id %s is not registered", id)
			}
		}
	})

	t.Run("rejected outside published or in-progress", func(t *testing.T) {
		e := newTestEvent(10, EventStatusDraft)
		e.Register("PRT-1")
		if e.CheckIn("PRT-1") {
			t.Error("check-in on a draft event should be rejected")
		}
	})
}

func TestEventCancelRegistration(t *testing.T) {
	e := newTestEvent(10, EventStatusInProgress)
	e.Register("PRT-1")
	e.Register("PRT-2")
	e.CheckIn("PRT-1")

	if !e.CancelRegistration("PRT-1") {
		t.Fatal("cancel of a registered participant should succeed")
	}
	if e.IsRegistered("PRT-1") || e.HasAttended("PRT-1") {
		t.Error("cancelled participant should be gone from both rosters")
	}
	if e.CancelRegistration("PRT-1") {
		t.Error("second cancel should report no removal")
	}
	if !e.IsRegistered("PRT-2") {
		t.Error("other registrations must be untouched")
	}
}

func TestEventAttendanceRate(t *testing.T) {
	e := newTestEvent(10, EventStatusInProgress)
	if got := e.AttendanceRate(); got != 0 {
		t.Errorf("empty event rate = %v, want 0", got)
	}
	e.Register("PRT-1")
	e.Register("PRT-2")
	e.Register("PRT-3")
	e.Register("PRT-4")
	e.CheckIn("PRT-1")
	if got := e.AttendanceRate(); got != 25 {
		t.Errorf("rate = %v, want 25", got)
	}
}

func TestEventClone(t *testing.T) {
	e := newTestEvent(10, EventStatusPublished)
	e.Register("PRT-1")
	cp := e.Clone()
	cp.Register("PRT-2")
	if len(e.Registered) != 1 {
		t.Error("mutating the clone must not touch the original roster")
	}
}
