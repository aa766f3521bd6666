package service

import (
	"context"
	"log"
	"strings"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/validate"
)

// ProfileService creates and reads organizer and participant profiles.
type ProfileService struct {
	organizers   *repository.OrganizerRepo
	participants *repository.ParticipantRepo
	gen          ids.Generator
	mirror       Mirror
	clk          clock.Clock
}

// NewProfileService wires the profile service.
func NewProfileService(
	organizers *repository.OrganizerRepo,
	participants *repository.ParticipantRepo,
	gen ids.Generator,
	mirror Mirror,
	clk clock.Clock,
) *ProfileService {
	return &ProfileService{
		organizers:   organizers,
		participants: participants,
		gen:          gen,
		mirror:       mirror,
		clk:          clk,
	}
}

// PersonInput carries the shared person fields.
type PersonInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (in PersonInput) toPerson(id string, clk clock.Clock) (model.Person, error) {
	if err := validate.Name(in.FirstName + " " + in.LastName); err != nil {
		return model.Person{}, err
	}
	if err := validate.Email(in.Email); err != nil {
		return model.Person{}, err
	}
	return model.Person{
		ID:           id,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		RegisteredAt: clk.Now(),
	}, nil
}

// CreateOrganizerInput carries the organizer-specific fields.
type CreateOrganizerInput struct {
	PersonInput
	Organization    string
	Department      string
	YearsExperience int
}

// CreateOrganizer validates and stores a new organizer profile.
func (s *ProfileService) CreateOrganizer(ctx context.Context, in CreateOrganizerInput) (model.Organizer, error) {
	person, err := in.toPerson(s.gen.New(ids.PrefixOrganizer), s.clk)
	if err != nil {
		return model.Organizer{}, err
	}
	if in.YearsExperience < 0 {
		return model.Organizer{}, &validate.InvalidDataError{Field: "years_experience", Reason: "must not be negative"}
	}
	organizer := model.Organizer{
		Person:          person,
		Organization:    strings.TrimSpace(in.Organization),
		Department:      strings.TrimSpace(in.Department),
		YearsExperience: in.YearsExperience,
	}
	if err := s.organizers.Add(organizer); err != nil {
		return model.Organizer{}, err
	}
	if err := s.mirror.SaveOrganizer(ctx, organizer); err != nil {
		log.Printf("mirror: save organizer %s failed: %v", organizer.ID, err)
	}
	return organizer, nil
}

// CreateParticipantInput carries the participant-specific fields.
type CreateParticipantInput struct {
	PersonInput
	Company   string
	JobTitle  string
	Interests []string
	VIP       bool
}

// CreateParticipant validates and stores a new participant profile.
func (s *ProfileService) CreateParticipant(ctx context.Context, in CreateParticipantInput) (model.Participant, error) {
	person, err := in.toPerson(s.gen.New(ids.PrefixParticipant), s.clk)
	if err != nil {
		return model.Participant{}, err
	}
	participant := model.Participant{
		Person:    person,
		Company:   strings.TrimSpace(in.Company),
		JobTitle:  strings.TrimSpace(in.JobTitle),
		Interests: in.Interests,
		VIP:       in.VIP,
	}
	if err := s.participants.Add(participant); err != nil {
		return model.Participant{}, err
	}
	if err := s.mirror.SaveParticipant(ctx, participant); err != nil {
		log.Printf("mirror: save participant %s failed: %v", participant.ID, err)
	}
	return participant, nil
}

// GetOrganizer returns an organizer profile by id.
func (s *ProfileService) GetOrganizer(id string) (model.Organizer, error) {
	return s.organizers.FindByID(id)
}

// GetParticipant returns a participant profile by id.
func (s *ProfileService) GetParticipant(id string) (model.Participant, error) {
	return s.participants.FindByID(id)
}

// ListOrganizers returns all organizer profiles.
func (s *ProfileService) ListOrganizers() []model.Organizer {
	return s.organizers.ListAll()
}

// ListParticipants returns all participant profiles.
func (s *ProfileService) ListParticipants() []model.Participant {
	return s.participants.ListAll()
}
