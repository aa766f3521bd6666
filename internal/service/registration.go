package service

import (
	"context"
	"log"
	"time"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/queue"
	"github.com/dfquintero/eventia/internal/repository"
)

// RegistrationService is the capacity and roster engine.  Every mutation of
// an event's rosters runs under that event's mutex from the shared LockMap,
// so concurrent registrations cannot both pass the capacity check.  State
// conflicts (full event, duplicate registration, wrong status) come back as
// a false bool; only unknown ids come back as errors.
type RegistrationService struct {
	events       *repository.EventRepo
	participants *repository.ParticipantRepo
	locks        *LockMap
	mirror       Mirror
	publisher    Publisher
	clk          clock.Clock
}

// NewRegistrationService wires the roster engine.
func NewRegistrationService(
	events *repository.EventRepo,
	participants *repository.ParticipantRepo,
	locks *LockMap,
	mirror Mirror,
	publisher Publisher,
	clk clock.Clock,
) *RegistrationService {
	return &RegistrationService{
		events:       events,
		participants: participants,
		locks:        locks,
		mirror:       mirror,
		publisher:    publisher,
		clk:          clk,
	}
}

// Register adds a participant to an event's registered roster.  Returns
// false without error when the event rejects the registration (capacity,
// duplicate, status); returns an error when either id does not resolve.
func (s *RegistrationService) Register(ctx context.Context, eventID, participantID string) (bool, error) {
	if _, err := s.participants.FindByID(participantID); err != nil {
		return false, err
	}

	unlock := s.locks.Lock(eventID)
	event, err := s.events.FindByID(eventID)
	if err != nil {
		unlock()
		return false, err
	}
	if !event.Register(participantID) {
		unlock()
		return false, nil
	}
	event.UpdatedAt = s.clk.Now()
	if err := s.events.Update(event); err != nil {
		unlock()
		return false, err
	}

	// The participant's registration list has writers from every event, so
	// its read-modify-write needs the participant's own lock.  Lock order is
	// always event first, participant second.
	participant, err := s.updateParticipantLocked(participantID, func(p *model.Participant) {
		p.AddRegistration(eventID)
	})
	if err != nil {
		unlock()
		return false, err
	}
	unlock()

	s.persistEvent(ctx, event)
	s.persistParticipant(ctx, participant)
	if err := s.publisher.PublishRegistrationConfirmed(ctx, queue.RegistrationConfirmedEvent{
		EventID:         event.ID,
		EventName:       event.Name,
		ParticipantID:   participant.ID,
		ParticipantName: participant.FullName(),
		AvailableSlots:  event.AvailableSlots(),
		RegisteredAt:    s.clk.Now().Format(time.RFC3339),
	}); err != nil {
		log.Printf("queue: publish registration confirmed failed: %v", err)
	}
	return true, nil
}

// CheckIn moves a registered participant onto the attended roster.
func (s *RegistrationService) CheckIn(ctx context.Context, eventID, participantID string) (bool, error) {
	if _, err := s.participants.FindByID(participantID); err != nil {
		return false, err
	}

	unlock := s.locks.Lock(eventID)
	event, err := s.events.FindByID(eventID)
	if err != nil {
		unlock()
		return false, err
	}
	if !event.CheckIn(participantID) {
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

// CancelRegistration removes a participant from both rosters and from the
// participant's own registration list.
func (s *RegistrationService) CancelRegistration(ctx context.Context, eventID, participantID string) (bool, error) {
	if _, err := s.participants.FindByID(participantID); err != nil {
		return false, err
	}

	unlock := s.locks.Lock(eventID)
	event, err := s.events.FindByID(eventID)
	if err != nil {
		unlock()
		return false, err
	}
	if !event.CancelRegistration(participantID) {
		unlock()
		return false, nil
	}
	event.UpdatedAt = s.clk.Now()
	if err := s.events.Update(event); err != nil {
		unlock()
		return false, err
	}
	participant, err := s.updateParticipantLocked(participantID, func(p *model.Participant) {
		p.RemoveRegistration(eventID)
	})
	if err != nil {
		unlock()
		return false, err
	}
	unlock()

	s.persistEvent(ctx, event)
	s.persistParticipant(ctx, participant)
	return true, nil
}

// AttendanceRate returns the event's attendance percentage.
func (s *RegistrationService) AttendanceRate(eventID string) (float64, error) {
	event, err := s.events.FindByID(eventID)
	if err != nil {
		return 0, err
	}
	return event.AttendanceRate(), nil
}

// AvailableSlots returns the event's remaining capacity.
func (s *RegistrationService) AvailableSlots(eventID string) (int, error) {
	event, err := s.events.FindByID(eventID)
	if err != nil {
		return 0, err
	}
	return event.AvailableSlots(), nil
}

// updateParticipantLocked re-reads the participant under its own lock,
// applies the mutation and stores the result, so concurrent registrations of
// one participant into different events cannot lose a list entry.
func (s *RegistrationService) updateParticipantLocked(participantID string, mutate func(*model.Participant)) (model.Participant, error) {
	unlock := s.locks.Lock(participantID)
	defer unlock()
	participant, err := s.participants.FindByID(participantID)
	if err != nil {
		return model.Participant{}, err
	}
	mutate(&participant)
	if err := s.participants.Update(participant); err != nil {
		return model.Participant{}, err
	}
	return participant, nil
}

// persistEvent mirrors an event after commit; failures are logged only.
func (s *RegistrationService) persistEvent(ctx context.Context, e model.Event) {
	if err := s.mirror.SaveEvent(ctx, e); err != nil {
		log.Printf("mirror: save event %s failed: %v", e.ID, err)
	}
}

func (s *RegistrationService) persistParticipant(ctx context.Context, p model.Participant) {
	if err := s.mirror.SaveParticipant(ctx, p); err != nil {
		log.Printf("mirror: save participant %s failed: %v", p.ID, err)
	}
}
