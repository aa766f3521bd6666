package model

import "time"

// Person holds the attributes shared by every human actor on the platform,
// whether they organize events or attend them.  Identity (ID) is immutable
// once created; contact fields may change.  People never hold references to
// Event objects, only event identifiers, so ownership stays with the
// repositories.
//
// Fields:
//  ID           – prefixed identifier ("ORG-..." or "PRT-...").
//  FirstName    – given name.
//  LastName     – family name.
//  Email        – contact email, unique per collection.
//  Phone        – contact phone number.
//  RegisteredAt – when the person was added to the platform.
type Person struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}

// FullName returns the person's display name.
func (p Person) FullName() string { return p.FirstName + " " + p.LastName }

// Actor is the polymorphic view over the two person variants.  It replaces
// an abstract-base-class arrangement with a small capability set.
type Actor interface {
	PersonID() string
	Role() string
	Description() string
}

// Organizer is a person who creates and runs events.
type Organizer struct {
	Person
	Organization    string   `json:"organization"`
	Department      string   `json:"department"`
	YearsExperience int      `json:"years_experience"`
	CreatedEventIDs []string `json:"created_event_ids"`
}

func (o *Organizer) PersonID() string { return o.ID }
func (o *Organizer) Role() string     { return "ORGANIZER" }

// Description summarizes the organizer for listings.
func (o *Organizer) Description() string {
	return o.FullName() + " (" + o.Organization + ", " + string(o.Tier()) + ")"
}

// Tier derives the experience tier: Junior below 2 years, Semi-Senior from 2
// through 4, Senior from 5 up.
func (o *Organizer) Tier() OrganizerTier {
	switch {
	case o.YearsExperience >= 5:
		return TierSenior
	case o.YearsExperience >= 2:
		return TierSemiSenior
	default:
		return TierJunior
	}
}

// AddCreatedEvent records an event id against the organizer.  Duplicates are
// ignored; the return value reports whether the id was appended.
func (o *Organizer) AddCreatedEvent(eventID string) bool {
	for _, id := range o.CreatedEventIDs {
		if id == eventID {
			return false
		}
	}
	o.CreatedEventIDs = append(o.CreatedEventIDs, eventID)
	return true
}

// Participant is a person who registers for and attends events.
type Participant struct {
	Person
	Company            string   `json:"company"`
	JobTitle           string   `json:"job_title"`
	Interests          []string `json:"interests"`
	VIP                bool     `json:"vip"`
	RegisteredEventIDs []string `json:"registered_event_ids"`
}

func (p *Participant) PersonID() string { return p.ID }
func (p *Participant) Role() string     { return "PARTICIPANT" }

// Description summarizes the participant for listings.
func (p *Participant) Description() string {
	desc := p.FullName()
	if p.Company != "" {
		desc += " (" + p.Company + ")"
	}
	if p.VIP {
		desc += " [VIP]"
	}
	return desc
}

// AddRegistration records an event id on the participant's side.  The
// registration list never holds duplicates.
func (p *Participant) AddRegistration(eventID string) bool {
	for _, id := range p.RegisteredEventIDs {
		if id == eventID {
			return false
		}
	}
	p.RegisteredEventIDs = append(p.RegisteredEventIDs, eventID)
	return true
}

// RemoveRegistration drops an event id from the participant's registration
// list, reporting whether a removal occurred.
func (p *Participant) RemoveRegistration(eventID string) bool {
	for i, id := range p.RegisteredEventIDs {
		if id == eventID {
			p.RegisteredEventIDs = append(p.RegisteredEventIDs[:i], p.RegisteredEventIDs[i+1:]...)
			return true
		}
	}
	return false
}
