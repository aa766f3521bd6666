package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/service"
)

// EventHandler exposes event management endpoints.
type EventHandler struct {
	Events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{Events: events}
}

type createEventReq struct {
	OrganizerID string    `json:"organizer_id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type updateEventReq struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type statusReq struct {
	Status string `json:"status"`
}

type agendaReq struct {
	Item string `json:"item"`
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	event, err := h.Events.CreateEvent(c.Request().Context(), service.CreateEventInput{
		OrganizerID: req.OrganizerID,
		Type:        model.EventType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Capacity:    req.Capacity,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.Events.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// List handles GET /v1/events.
func (h *EventHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Events.List())
}

// Update handles PATCH /v1/events/:id for the mutable fields.
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	event, err := h.Events.UpdateDetails(c.Request().Context(), c.Param("id"), service.UpdateDetailsInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// ChangeStatus handles POST /v1/events/:id/status with the target status.
func (h *EventHandler) ChangeStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ok, err := h.Events.ChangeStatus(c.Request().Context(), c.Param("id"), model.EventStatus(req.Status))
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "illegal status transition")
	}
	return c.NoContent(http.StatusNoContent)
}

// AddAgendaItem handles POST /v1/events/:id/agenda.
func (h *EventHandler) AddAgendaItem(c echo.Context) error {
	var req agendaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	event, err := h.Events.AddAgendaItem(c.Request().Context(), c.Param("id"), req.Item)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, event)
}
