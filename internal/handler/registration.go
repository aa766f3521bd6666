package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/eventia/internal/service"
)

// RegistrationHandler exposes the roster engine over HTTP.  State conflicts
// (full event, duplicate registration, wrong status) surface as 409; unknown
// ids as 404.
type RegistrationHandler struct {
	Registrations *service.RegistrationService
	Events        *service.EventService
}

func NewRegistrationHandler(registrations *service.RegistrationService, events *service.EventService) *RegistrationHandler {
	return &RegistrationHandler{Registrations: registrations, Events: events}
}

type participantReq struct {
	ParticipantID string `json:"participant_id"`
}

// Register handles POST /v1/events/:id/registrations.
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req participantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ok, err := h.Registrations.Register(c.Request().Context(), c.Param("id"), req.ParticipantID)
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "registration rejected: event full, closed, or already registered")
	}
	return c.NoContent(http.StatusCreated)
}

// CheckIn handles POST /v1/events/:id/check-ins.
func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	var req participantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ok, err := h.Registrations.CheckIn(c.Request().Context(), c.Param("id"), req.ParticipantID)
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "check-in rejected: not registered, already checked in, or event not open")
	}
	return c.NoContent(http.StatusCreated)
}

// CancelRegistration handles DELETE /v1/events/:id/registrations/:participantId.
func (h *RegistrationHandler) CancelRegistration(c echo.Context) error {
	ok, err := h.Registrations.CancelRegistration(c.Request().Context(), c.Param("id"), c.Param("participantId"))
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "participant is not registered")
	}
	return c.NoContent(http.StatusNoContent)
}

// Roster handles GET /v1/events/:id/roster, returning both rosters and the
// derived occupancy numbers.
func (h *RegistrationHandler) Roster(c echo.Context) error {
	event, err := h.Events.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"registered":      event.Registered,
		"attended":        event.Attended,
		"available_slots": event.AvailableSlots(),
		"attendance_rate": event.AttendanceRate(),
	})
}
