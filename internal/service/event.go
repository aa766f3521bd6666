package service

import (
	"context"
	"log"
	"time"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/validate"
)

// EventService manages event creation, mutable details and lifecycle
// transitions.  Input validation is delegated to the validate collaborator
// before any entity is constructed.
type EventService struct {
	events     *repository.EventRepo
	organizers *repository.OrganizerRepo
	locks      *LockMap
	gen        ids.Generator
	mirror     Mirror
	clk        clock.Clock
}

// NewEventService wires the event management service.
func NewEventService(
	events *repository.EventRepo,
	organizers *repository.OrganizerRepo,
	locks *LockMap,
	gen ids.Generator,
	mirror Mirror,
	clk clock.Clock,
) *EventService {
	return &EventService{
		events:     events,
		organizers: organizers,
		locks:      locks,
		gen:        gen,
		mirror:     mirror,
		clk:        clk,
	}
}

// CreateEventInput carries the fields for a new event.
type CreateEventInput struct {
	OrganizerID string
	Type        model.EventType
	Name        string
	Description string
	Location    string
	Capacity    int
	StartsAt    time.Time
	EndsAt      time.Time
}

// CreateEvent validates the input, creates the event in DRAFT with empty
// rosters, and records the event id on the organizer.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (model.Event, error) {
	if err := validate.Name(in.Name); err != nil {
		return model.Event{}, err
	}
	if err := validate.Description(in.Description); err != nil {
		return model.Event{}, err
	}
	if err := validate.Location(in.Location); err != nil {
		return model.Event{}, err
	}
	if err := validate.Capacity(in.Capacity); err != nil {
		return model.Event{}, err
	}
	if err := validate.Dates(in.StartsAt, in.EndsAt); err != nil {
		return model.Event{}, err
	}
	organizer, err := s.organizers.FindByID(in.OrganizerID)
	if err != nil {
		return model.Event{}, err
	}

	now := s.clk.Now()
	event := model.Event{
		ID:          s.gen.New(ids.PrefixEvent),
		Type:        in.Type,
		Capacity:    in.Capacity,
		OrganizerID: organizer.ID,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		Status:      model.EventStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.events.Add(event); err != nil {
		return model.Event{}, err
	}
	organizer.AddCreatedEvent(event.ID)
	if err := s.organizers.Update(organizer); err != nil {
		return model.Event{}, err
	}

	s.persistEvent(ctx, event)
	if err := s.mirror.SaveOrganizer(ctx, organizer); err != nil {
		log.Printf("mirror: save organizer %s failed: %v", organizer.ID, err)
	}
	return event, nil
}

// Get returns an event by id.
func (s *EventService) Get(eventID string) (model.Event, error) {
	return s.events.FindByID(eventID)
}

// List returns all events.
func (s *EventService) List() []model.Event {
	return s.events.ListAll()
}

// UpdateDetailsInput carries the mutable event fields.  Empty strings and
// zero times leave the current value in place.
type UpdateDetailsInput struct {
	Name        string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

// UpdateDetails changes an event's mutable fields under its lock.
func (s *EventService) UpdateDetails(ctx context.Context, eventID string, in UpdateDetailsInput) (model.Event, error) {
	unlock := s.locks.Lock(eventID)
	event, err := s.updateDetailsLocked(eventID, in)
	unlock()
	if err != nil {
		return model.Event{}, err
	}

	s.persistEvent(ctx, event)
	return event, nil
}

func (s *EventService) updateDetailsLocked(eventID string, in UpdateDetailsInput) (model.Event, error) {
	event, err := s.events.FindByID(eventID)
	if err != nil {
		return model.Event{}, err
	}
	if in.Name != "" {
		if err := validate.Name(in.Name); err != nil {
			return model.Event{}, err
		}
		event.Name = in.Name
	}
	if in.Description != "" {
		if err := validate.Description(in.Description); err != nil {
			return model.Event{}, err
		}
		event.Description = in.Description
	}
	if in.Location != "" {
		if err := validate.Location(in.Location); err != nil {
			return model.Event{}, err
		}
		event.Location = in.Location
	}
	if !in.StartsAt.IsZero() || !in.EndsAt.IsZero() {
		starts, ends := event.StartsAt, event.EndsAt
		if !in.StartsAt.IsZero() {
			starts = in.StartsAt
		}
		if !in.EndsAt.IsZero() {
			ends = in.EndsAt
		}
		if err := validate.Dates(starts, ends); err != nil {
			return model.Event{}, err
		}
		event.StartsAt, event.EndsAt = starts, ends
	}
	event.UpdatedAt = s.clk.Now()
	if err := s.events.Update(event); err != nil {
		return model.Event{}, err
	}
	return event, nil
}

// ChangeStatus applies a lifecycle transition.  Returns false when the move
// is illegal from the current status.
func (s *EventService) ChangeStatus(ctx context.Context, eventID string, next model.EventStatus) (bool, error) {
	unlock := s.locks.Lock(eventID)
	event, err := s.events.FindByID(eventID)
	if err != nil {
		unlock()
		return false, err
	}
	if !event.TransitionTo(next) {
		unlock()
		return false, nil
	}
	event.UpdatedAt = s.clk.Now()
	if err := s.events.Update(event); err != nil {
		unlock()
		return false, err
	}
	unlock()

	s.persistEvent(ctx, event)
	return true, nil
}

// AddAgendaItem appends a free-text agenda entry to the event.
func (s *EventService) AddAgendaItem(ctx context.Context, eventID, item string) (model.Event, error) {
	if err := validate.Name(item); err != nil {
		return model.Event{}, err
	}
	unlock := s.locks.Lock(eventID)
	event, err := s.events.FindByID(eventID)
	if err != nil {
		unlock()
		return model.Event{}, err
	}
	event.AddAgendaItem(item)
	event.UpdatedAt = s.clk.Now()
	if err := s.events.Update(event); err != nil {
		unlock()
		return model.Event{}, err
	}
	unlock()

	s.persistEvent(ctx, event)
	return event, nil
}

func (s *EventService) persistEvent(ctx context.Context, e model.Event) {
	if err := s.mirror.SaveEvent(ctx, e); err != nil {
		log.Printf("mirror: save event %s failed: %v", e.ID, err)
	}
}
