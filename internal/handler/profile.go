package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/eventia/internal/service"
)

// ProfileHandler exposes organizer and participant profile endpoints.
type ProfileHandler struct {
	Profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

type personReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type createOrganizerReq struct {
	personReq
	Organization    string `json:"organization"`
	Department      string `json:"department"`
	YearsExperience int    `json:"years_experience"`
}

type createParticipantReq struct {
	personReq
	Company   string   `json:"company"`
	JobTitle  string   `json:"job_title"`
	Interests []string `json:"interests"`
	VIP       bool     `json:"vip"`
}

// CreateOrganizer handles POST /v1/organizers.
func (h *ProfileHandler) CreateOrganizer(c echo.Context) error {
	var req createOrganizerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	organizer, err := h.Profiles.CreateOrganizer(c.Request().Context(), service.CreateOrganizerInput{
		PersonInput: service.PersonInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		Organization:    req.Organization,
		Department:      req.Department,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, organizer)
}

// CreateParticipant handles POST /v1/participants.
func (h *ProfileHandler) CreateParticipant(c echo.Context) error {
	var req createParticipantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	participant, err := h.Profiles.CreateParticipant(c.Request().Context(), service.CreateParticipantInput{
		PersonInput: service.PersonInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		Company:   req.Company,
		JobTitle:  req.JobTitle,
		Interests: req.Interests,
		VIP:       req.VIP,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, participant)
}

// GetOrganizer handles GET /v1/organizers/:id; the response includes the
// derived experience tier.
func (h *ProfileHandler) GetOrganizer(c echo.Context) error {
	organizer, err := h.Profiles.GetOrganizer(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"organizer": organizer,
		"tier":      organizer.Tier(),
	})
}

// GetParticipant handles GET /v1/participants/:id.
func (h *ProfileHandler) GetParticipant(c echo.Context) error {
	participant, err := h.Profiles.GetParticipant(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, participant)
}

// ListOrganizers handles GET /v1/organizers.
func (h *ProfileHandler) ListOrganizers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Profiles.ListOrganizers())
}

// ListParticipants handles GET /v1/participants.
func (h *ProfileHandler) ListParticipants(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Profiles.ListParticipants())
}
