package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/validate"
)

func newProfileFixture(t *testing.T) *ProfileService {
	t.Helper()
	return NewProfileService(
		repository.NewOrganizerRepo(),
		repository.NewParticipantRepo(),
		ids.NewSequence(),
		NopMirror{},
		clock.NewFixed(testNow),
	)
}

func TestCreateOrganizer(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and prefixes", func(t *testing.T) {
		svc := newProfileFixture(t)
		org, err := svc.CreateOrganizer(ctx, CreateOrganizerInput{
			PersonInput: PersonInput{
				FirstName: " Luis ",
				LastName:  "Mora",
				Email:     " Luis@Example.COM ",
			},
			Organization:    "Eventia",
			YearsExperience: 3,
		})
		if err != nil {
			t.Fatalf("CreateOrganizer: %v", err)
		}
		if !strings.HasPrefix(org.ID, "ORG-") {
			t.Errorf("id = %q, want ORG- prefix", org.ID)
		}
		if org.Email != "luis@example.com" {
			t.Errorf("email = %q, want lowercased and trimmed", org.Email)
		}
		if org.FirstName != "Luis" {
			t.Errorf("first name = %q, want trimmed", org.FirstName)
		}
	})

	t.Run("rejects negative experience", func(t *testing.T) {
		svc := newProfileFixture(t)
		_, err := svc.CreateOrganizer(ctx, CreateOrganizerInput{
			PersonInput:     PersonInput{FirstName: "Luis", LastName: "Mora", Email: "luis@example.com"},
			YearsExperience: -1,
		})
		var invalid *validate.InvalidDataError
		if !errors.As(err, &invalid) {
			t.Errorf("err = %v, want InvalidDataError", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc := newProfileFixture(t)
		in := CreateOrganizerInput{
			PersonInput: PersonInput{FirstName: "Luis", LastName: "Mora", Email: "luis@example.com"},
		}
		if _, err := svc.CreateOrganizer(ctx, in); err != nil {
			t.Fatalf("first create: %v", err)
		}
		if _, err := svc.CreateOrganizer(ctx, in); !errors.Is(err, repository.ErrEmailExists) {
			t.Errorf("err = %v, want ErrEmailExists", err)
		}
	})
}

func TestCreateParticipant(t *testing.T) {
	ctx := context.Background()
	svc := newProfileFixture(t)

	p, err := svc.CreateParticipant(ctx, CreateParticipantInput{
		PersonInput: PersonInput{FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"},
		Company:     "ACME",
		Interests:   []string{"go", "distributed systems"},
		VIP:         true,
	})
	if err != nil {
		t.Fatalf("CreateParticipant: %v", err)
	}
	if !strings.HasPrefix(p.ID, "PRT-") {
		t.Errorf("id = %q, want PRT- prefix", p.ID)
	}
	if !p.VIP {
		t.Error("vip flag lost")
	}

	got, err := svc.GetParticipant(p.ID)
	if err != nil || got.Email != "ana@example.com" {
		t.Errorf("GetParticipant = (%+v, %v)", got, err)
	}

	_, err = svc.CreateParticipant(ctx, CreateParticipantInput{
		PersonInput: PersonInput{FirstName: "Ana", LastName: "Diaz", Email: "not-an-email"},
	})
	var invalid *validate.InvalidDataError
	if !errors.As(err, &invalid) {
		t.Errorf("err = %v, want InvalidDataError", err)
	}
}
