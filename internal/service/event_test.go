package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/validate"
)

func newEventFixture(t *testing.T) (*EventService, *repository.EventRepo, *repository.OrganizerRepo) {
	t.Helper()
	events := repository.NewEventRepo()
	organizers := repository.NewOrganizerRepo()
	if err := organizers.Add(model.Organizer{
		Person:       model.Person{ID: "ORG-000001", FirstName: "Luis", LastName: "Mora", Email: "luis@example.com"},
		Organization: "Eventia",
	}); err != nil {
		t.Fatalf("seed organizer: %v", err)
	}
	svc := NewEventService(events, organizers, NewLockMap(), ids.NewSequence(), NopMirror{}, clock.NewFixed(testNow))
	return svc, events, organizers
}

func validInput() CreateEventInput {
	return CreateEventInput{
		OrganizerID: "ORG-000001",
		Type:        model.EventTypeConference,
		Name:        "GopherCon Bogota",
		Description: "Two days of Go talks",
		Location:    "Bogota",
		Capacity:    500,
		StartsAt:    testNow.Add(24 * time.Hour),
		EndsAt:      testNow.Add(48 * time.Hour),
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates draft and records it on the organizer", func(t *testing.T) {
		svc, _, organizers := newEventFixture(t)
		event, err := svc.CreateEvent(ctx, validInput())
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
		if event.Status != model.EventStatusDraft {
			t.Errorf("status = %s, want DRAFT", event.Status)
		}
		if len(event.Registered) != 0 || len(event.Attended) != 0 {
			t.Error("new events start with empty rosters")
		}
		org, _ := organizers.FindByID("ORG-000001")
		if len(org.CreatedEventIDs) != 1 || org.CreatedEventIDs[0] != event.ID {
			t.Errorf("organizer created list = %v", org.CreatedEventIDs)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, _, _ := newEventFixture(t)
		cases := []struct {
			name   string
			mutate func(*CreateEventInput)
		}{
			{"empty name", func(in *CreateEventInput) { in.Name = "  " }},
			{"zero capacity", func(in *CreateEventInput) { in.Capacity = 0 }},
			{"negative capacity", func(in *CreateEventInput) { in.Capacity = -5 }},
			{"capacity over bound", func(in *CreateEventInput) { in.Capacity = validate.MaxCapacity + 1 }},
			{"end before start", func(in *CreateEventInput) { in.EndsAt = in.StartsAt.Add(-time.Hour) }},
			{"empty location", func(in *CreateEventInput) { in.Location = "" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := validInput()
				tc.mutate(&in)
				_, err := svc.CreateEvent(context.Background(), in)
				var invalid *validate.InvalidDataError
				if !errors.As(err, &invalid) {
					t.Errorf("err = %v, want InvalidDataError", err)
				}
			})
		}
	})

	t.Run("unknown organizer", func(t *testing.T) {
		svc, _, _ := newEventFixture(t)
		in := validInput()
		in.OrganizerID = "ORG-nope"
		if _, err := svc.CreateEvent(ctx, in); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventFixture(t)
	event, _ := svc.CreateEvent(ctx, validInput())

	ok, err := svc.ChangeStatus(ctx, event.ID, model.EventStatusPublished)
	if err != nil || !ok {
		t.Fatalf("publish = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = svc.ChangeStatus(ctx, event.ID, model.EventStatusFinished)
	if err != nil || ok {
		t.Errorf("published -> finished = (%v, %v), want (false, nil)", ok, err)
	}
	got, _ := svc.Get(event.ID)
	if got.Status != model.EventStatusPublished {
		t.Errorf("status after illegal move = %s, want PUBLISHED", got.Status)
	}
}

func TestUpdateDetails(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventFixture(t)
	event, _ := svc.CreateEvent(ctx, validInput())

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.UpdateDetails(ctx, event.ID, UpdateDetailsInput{Name: "GopherCon Medellin"})
		if err != nil {
			t.Fatalf("UpdateDetails: %v", err)
		}
		if updated.Name != "GopherCon Medellin" {
			t.Errorf("name = %q", updated.Name)
		}
		if updated.Location != "Bogota" {
			t.Errorf("location changed unexpectedly: %q", updated.Location)
		}
	})

	t.Run("new end before existing start is rejected", func(t *testing.T) {
		_, err := svc.UpdateDetails(ctx, event.ID, UpdateDetailsInput{EndsAt: testNow})
		var invalid *validate.InvalidDataError
		if !errors.As(err, &invalid) {
			t.Errorf("err = %v, want InvalidDataError", err)
		}
	})
}

func TestAddAgendaItem(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventFixture(t)
	event, _ := svc.CreateEvent(ctx, validInput())

	updated, err := svc.AddAgendaItem(ctx, event.ID, "Opening keynote")
	if err != nil {
		t.Fatalf("AddAgendaItem: %v", err)
	}
	updated, err = svc.AddAgendaItem(ctx, event.ID, "Generics in practice")
	if err != nil {
		t.Fatalf("AddAgendaItem: %v", err)
	}
	if len(updated.Agenda) != 2 || updated.Agenda[0] != "Opening keynote" {
		t.Errorf("agenda = %v", updated.Agenda)
	}
}
