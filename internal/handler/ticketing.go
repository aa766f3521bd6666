package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/service"
)

// TicketingHandler exposes ticket purchase and the payment state machine.
type TicketingHandler struct {
	Ticketing *service.TicketingService
	Tickets   *repository.TicketRepo
	Payments  *repository.PaymentRepo
}

func NewTicketingHandler(ticketing *service.TicketingService, tickets *repository.TicketRepo, payments *repository.PaymentRepo) *TicketingHandler {
	return &TicketingHandler{Ticketing: ticketing, Tickets: tickets, Payments: payments}
}

type purchaseReq struct {
	ParticipantID string `json:"participant_id"`
	TicketType    string `json:"ticket_type"`
	PaymentMethod string `json:"payment_method"`
}

type purchaseResp struct {
	Ticket  model.Ticket  `json:"ticket"`
	Payment model.Payment `json:"payment"`
}

// Purchase handles POST /v1/events/:id/tickets: derives price and
// commissions, creates the ticket/payment pair.
func (h *TicketingHandler) Purchase(c echo.Context) error {
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ticket, payment, err := h.Ticketing.Purchase(
		c.Request().Context(),
		c.Param("id"),
		req.ParticipantID,
		model.TicketType(req.TicketType),
		model.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, purchaseResp{Ticket: ticket, Payment: payment})
}

// GetTicket handles GET /v1/tickets/:id.
func (h *TicketingHandler) GetTicket(c echo.Context) error {
	ticket, err := h.Tickets.FindByID(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// UseTicket handles POST /v1/tickets/:id/use, scanning the ticket at the
// door.  A second scan is a conflict.
func (h *TicketingHandler) UseTicket(c echo.Context) error {
	ok, err := h.Ticketing.UseTicket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "ticket already used")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPayment handles GET /v1/payments/:id.
func (h *TicketingHandler) GetPayment(c echo.Context) error {
	payment, err := h.Payments.FindByID(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Process handles POST /v1/payments/:id/process: runs the simulated outcome
// on a pending payment.
func (h *TicketingHandler) Process(c echo.Context) error {
	payment, ok, err := h.Ticketing.Process(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "payment already processed")
	}
	return c.JSON(http.StatusOK, payment)
}

// Refund handles POST /v1/payments/:id/refund.
func (h *TicketingHandler) Refund(c echo.Context) error {
	ok, err := h.Ticketing.Refund(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "only approved payments can be refunded")
	}
	return c.NoContent(http.StatusNoContent)
}

// Cancel handles POST /v1/payments/:id/cancel.
func (h *TicketingHandler) Cancel(c echo.Context) error {
	ok, err := h.Ticketing.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return conflict(c, "only pending payments can be cancelled")
	}
	return c.NoContent(http.StatusNoContent)
}
