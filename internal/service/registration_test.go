package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type registrationFixture struct {
	events       *repository.EventRepo
	participants *repository.ParticipantRepo
	svc          *RegistrationService
}

func newRegistrationFixture(t *testing.T, capacity int, status model.EventStatus) registrationFixture {
	t.Helper()
	events := repository.NewEventRepo()
	participants := repository.NewParticipantRepo()
	if err := events.Add(model.Event{
		ID:       "EVT-000001",
		Type:     model.EventTypeConference,
		Capacity: capacity,
		Name:     "GopherCon Bogota",
		Status:   status,
	}); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	svc := NewRegistrationService(events, participants, NewLockMap(), NopMirror{}, NopPublisher{}, clock.NewFixed(testNow))
	return registrationFixture{events: events, participants: participants, svc: svc}
}

func (f registrationFixture) addParticipant(t *testing.T, id string) {
	t.Helper()
	if err := f.participants.Add(model.Participant{
		Person: model.Person{ID: id, FirstName: "Ana", LastName: "Diaz", Email: id + "@example.com"},
	}); err != nil {
		t.Fatalf("seed participant %s: %v", id, err)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path updates both sides", func(t *testing.T) {
		f := newRegistrationFixture(t, 10, model.EventStatusPublished)
		f.addParticipant(t, "PRT-000001")

		ok, err := f.svc.Register(ctx, "EVT-000001", "PRT-000001")
		if err != nil || !ok {
			t.Fatalf("Register = (%v, %v), want (true, nil)", ok, err)
		}
		event, _ := f.events.FindByID("EVT-000001")
		if !event.IsRegistered("PRT-000001") {
			t.Error("participant missing from event roster")
		}
		p, _ := f.participants.FindByID("PRT-000001")
		if len(p.RegisteredEventIDs) != 1 || p.RegisteredEventIDs[0] != "EVT-000001" {
			t.Errorf("participant registration list = %v", p.RegisteredEventIDs)
		}
	})

	t.Run("unknown event is an error", func(t *testing.T) {
		f := newRegistrationFixture(t, 10, model.EventStatusPublished)
		f.addParticipant(t, "PRT-000001")
		if _, err := f.svc.Register(ctx, "EVT-nope", "PRT-000001"); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown participant is an error", func(t *testing.T) {
		f := newRegistrationFixture(t, 10, model.EventStatusPublished)
		if _, err := f.svc.Register(ctx, "EVT-000001", "PRT-nope"); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("duplicate is a conflict, not an error", func(t *testing.T) {
		f := newRegistrationFixture(t, 10, model.EventStatusPublished)
		f.addParticipant(t, "PRT-000001")
		f.svc.Register(ctx, "EVT-000001", "PRT-000001")
		ok, err := f.svc.Register(ctx, "EVT-000001", "PRT-000001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("duplicate registration should be rejected")
		}
	})

	t.Run("cancelled event rejects", func(t *testing.T) {
		f := newRegistrationFixture(t, 10, model.EventStatusCancelled)
		f.addParticipant(t, "PRT-000001")
		ok, err := f.svc.Register(ctx, "EVT-000001", "PRT-000001")
		if err != nil || ok {
			t.Errorf("Register on cancelled event = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("concurrent registrations never exceed capacity", func(t *testing.T) {
		const capacity = 20
		const contenders = 60
		f := newRegistrationFixture(t, capacity, model.EventStatusPublished)
		for i := 0; i < contenders; i++ {
			f.addParticipant(t, fmt.Sprintf("PRT-%06d", i))
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		accepted := 0
		for i := 0; i < contenders; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := f.svc.Register(ctx, "EVT-000001", fmt.Sprintf("PRT-%06d", i))
				if err != nil {
					t.Errorf("register %d: %v", i, err)
					return
				}
				if ok {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		if accepted != capacity {
			t.Errorf("accepted = %d, want %d", accepted, capacity)
		}
		event, _ := f.events.FindByID("EVT-000001")
		if len(event.Registered) != capacity {
			t.Errorf("roster length = %d, want %d", len(event.Registered), capacity)
		}
	})
}

func TestRegisterSameParticipantAcrossEvents(t *testing.T) {
	// Registrations into different events run under different event locks;
	// the participant's own registration list must still gain every entry.
	ctx := context.Background()
	const eventCount = 8
	events := repository.NewEventRepo()
	participants := repository.NewParticipantRepo()
	for i := 1; i <= eventCount; i++ {
		if err := events.Add(model.Event{
			ID:       fmt.Sprintf("EVT-%06d", i),
			Capacity: 10,
			Name:     "Meetup",
			Status:   model.EventStatusPublished,
		}); err != nil {
			t.Fatalf("seed event %d: %v", i, err)
		}
	}
	if err := participants.Add(model.Participant{
		Person: model.Person{ID: "PRT-000001", FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"},
	}); err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	svc := NewRegistrationService(events, participants, NewLockMap(), NopMirror{}, NopPublisher{}, clock.NewFixed(testNow))

	var wg sync.WaitGroup
	for i := 1; i <= eventCount; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := svc.Register(ctx, fmt.Sprintf("EVT-%06d", i), "PRT-000001")
			if err != nil || !ok {
				t.Errorf("register into event %d = (%v, %v)", i, ok, err)
			}
		}(i)
	}
	wg.Wait()

	p, _ := participants.FindByID("PRT-000001")
	if len(p.RegisteredEventIDs) != eventCount {
		t.Errorf("registration list has %d entries, want %d: %v", len(p.RegisteredEventIDs), eventCount, p.RegisteredEventIDs)
	}
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("registered participant checks in once", func(t *testing.T) {
		f := newRegistrationFixture(t, 10, model.EventStatusPublished)
		f.addParticipant(t, "PRT-000001")
		f.svc.Register(ctx, "EVT-000001", "PRT-000001")

		ok, err := f.svc.CheckIn(ctx, "EVT-000001", "PRT-000001")
		if err != nil || !ok {
			t.Fatalf("CheckIn = (%v, %v), want (true, nil)", ok, err)
		}
		ok, err = f.svc.CheckIn(ctx, "EVT-000001", "PRT-000001")
		if err != nil || ok {
			t.Errorf("second CheckIn = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("unregistered participant is a conflict", func(t *testing.T) {
		f := newRegistrationFixture(t, 10, model.EventStatusPublished)
		f.addParticipant(t, "PRT-000001")
		ok, err := f.svc.CheckIn(ctx, "EVT-000001", "PRT-000001")
		if err != nil || ok {
			t.Errorf("CheckIn = (%v, %v), want (false, nil)", ok, err)
		}
	})
}

func TestCancelRegistration(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture(t, 10, model.EventStatusPublished)
	f.addParticipant(t, "PRT-000001")
	f.svc.Register(ctx, "EVT-000001", "PRT-000001")
	f.svc.CheckIn(ctx, "EVT-000001", "PRT-000001")

	ok, err := f.svc.CancelRegistration(ctx, "EVT-000001", "PRT-000001")
	if err != nil || !ok {
		t.Fatalf("CancelRegistration = (%v, %v), want (true, nil)", ok, err)
	}
	event, _ := f.events.FindByID("EVT-000001")
	if event.IsRegistered("PRT-000001") || event.HasAttended("PRT-000001") {
		t.Error("participant should be off both rosters")
	}
	p, _ := f.participants.FindByID("PRT-000001")
	if len(p.RegisteredEventIDs) != 0 {
		t.Errorf("participant registration list = %v, want empty", p.RegisteredEventIDs)
	}

	ok, err = f.svc.CancelRegistration(ctx, "EVT-000001", "PRT-000001")
	if err != nil || ok {
		t.Errorf("second cancel = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestAttendanceRateAndSlots(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture(t, 4, model.EventStatusPublished)
	for i := 1; i <= 2; i++ {
		id := fmt.Sprintf("PRT-%06d", i)
		f.addParticipant(t, id)
		f.svc.Register(ctx, "EVT-000001", id)
	}
	f.svc.CheckIn(ctx, "EVT-000001", "PRT-000001")

	rate, err := f.svc.AttendanceRate("EVT-000001")
	if err != nil || rate != 50 {
		t.Errorf("AttendanceRate = (%v, %v), want (50, nil)", rate, err)
	}
	slots, err := f.svc.AvailableSlots("EVT-000001")
	if err != nil || slots != 2 {
		t.Errorf("AvailableSlots = (%v, %v), want (2, nil)", slots, err)
	}
}
