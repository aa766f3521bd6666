// Package router registers every HTTP route of the API and the middleware
// each group runs.  Unauthenticated operations live under /v1/auth plus a
// small public browse surface; everything else requires a valid access token.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dfquintero/eventia/internal/config"
	"github.com/dfquintero/eventia/internal/handler"
	"github.com/dfquintero/eventia/internal/middleware"
)

// Handlers bundles every handler the router wires.
type Handlers struct {
	Auth         *handler.AuthHandler
	Profiles     *handler.ProfileHandler
	Events       *handler.EventHandler
	Registration *handler.RegistrationHandler
	Ticketing    *handler.TicketingHandler
	Reports      *handler.ReportHandler
}

// Register sets up all routes.  The redis client may be nil, in which case
// rate limiting and response caching are disabled.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	cache := middleware.CacheGET(config.LoadCacheConfig(), rdb)

	// Session endpoints: no token required, but rate limited to slow down
	// credential stuffing.
	auth := e.Group("/v1/auth", limit)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Public browse surface for guests.
	e.GET("/v1/events", h.Events.List, limit)
	e.GET("/v1/events/:id", h.Events.Get, limit)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), limit)
	v1.GET("/me", h.Auth.Me)

	// Profiles.
	v1.POST("/organizers", h.Profiles.CreateOrganizer, middleware.RequireRole("ADMIN", "ORGANIZER"))
	v1.GET("/organizers", h.Profiles.ListOrganizers)
	v1.GET("/organizers/:id", h.Profiles.GetOrganizer)
	v1.POST("/participants", h.Profiles.CreateParticipant)
	v1.GET("/participants", h.Profiles.ListParticipants)
	v1.GET("/participants/:id", h.Profiles.GetParticipant)

	// Event management is for organizers (and admins).
	manage := middleware.RequireRole("ADMIN", "ORGANIZER")
	v1.POST("/events", h.Events.Create, manage)
	v1.PATCH("/events/:id", h.Events.Update, manage)
	v1.POST("/events/:id/status", h.Events.ChangeStatus, manage)
	v1.POST("/events/:id/agenda", h.Events.AddAgendaItem, manage)

	// Roster engine.
	v1.POST("/events/:id/registrations", h.Registration.Register)
	v1.DELETE("/events/:id/registrations/:participantId", h.Registration.CancelRegistration)
	v1.POST("/events/:id/check-ins", h.Registration.CheckIn, manage)
	v1.GET("/events/:id/roster", h.Registration.Roster)

	// Ticketing and payments.
	v1.POST("/events/:id/tickets", h.Ticketing.Purchase)
	v1.GET("/tickets/:id", h.Ticketing.GetTicket)
	v1.POST("/tickets/:id/use", h.Ticketing.UseTicket, manage)
	v1.GET("/payments/:id", h.Ticketing.GetPayment)
	v1.POST("/payments/:id/process", h.Ticketing.Process)
	v1.POST("/payments/:id/refund", h.Ticketing.Refund, manage)
	v1.POST("/payments/:id/cancel", h.Ticketing.Cancel)

	// Reports are read heavy, so GET responses are cached.
	reports := v1.Group("/reports", manage, cache)
	reports.GET("/events/:id", h.Reports.EventReport)
	reports.GET("/events/:id/financial", h.Reports.FinancialReport)
	reports.GET("/dashboard", h.Reports.Dashboard)
}
