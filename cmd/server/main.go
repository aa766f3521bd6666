package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/config"
	"github.com/dfquintero/eventia/internal/handler"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/queue"
	"github.com/dfquintero/eventia/internal/report"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/router"
	"github.com/dfquintero/eventia/internal/service"
	"github.com/dfquintero/eventia/internal/store/jsonstore"
	"github.com/dfquintero/eventia/internal/store/mysqlstore"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// In-memory repositories are the source of truth; the JSON store reloads
	// them at startup and mirrors every committed write.
	events := repository.NewEventRepo()
	organizers := repository.NewOrganizerRepo()
	participants := repository.NewParticipantRepo()
	tickets := repository.NewTicketRepo()
	payments := repository.NewPaymentRepo()
	users := repository.NewUserRepo()
	tokens := repository.NewTokenRepo()

	store, err := jsonstore.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("open json store: %v", err)
	}
	events.ReplaceAll(store.Events())
	organizers.ReplaceAll(store.Organizers())
	participants.ReplaceAll(store.Participants())
	tickets.ReplaceAll(store.Tickets())
	payments.ReplaceAll(store.Payments())
	users.ReplaceAll(store.Users())

	mirror := service.Mirror(store)
	if cfg.MirrorToMySQL() {
		sqlStore, err := mysqlstore.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open mysql mirror: %v", err)
		}
		defer sqlStore.Close()
		mirror = service.MultiMirror{store, sqlStore}
	}

	var publisher service.Publisher = service.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = queue.NewAMQPPublisher(cfg.AMQPURL)
		go queue.StartNotificationConsumer(cfg.AMQPURL)
	}

	clk := clock.NewSystem()
	gen := ids.NewUUID()
	locks := service.NewLockMap()
	policy := service.NewRandomPolicy(cfg.PaymentSuccessRate, rand.NewSource(time.Now().UnixNano()))

	registrations := service.NewRegistrationService(events, participants, locks, mirror, publisher, clk)
	ticketing := service.NewTicketingService(events, participants, tickets, payments, locks, gen, policy, mirror, publisher, clk)
	eventSvc := service.NewEventService(events, organizers, locks, gen, mirror, clk)
	profiles := service.NewProfileService(organizers, participants, gen, mirror, clk)
	reporter := report.NewReporter(events, tickets, payments)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unreachable, rate limiting and caching disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens, gen, mirror, clk),
		Profiles:     handler.NewProfileHandler(profiles),
		Events:       handler.NewEventHandler(eventSvc),
		Registration: handler.NewRegistrationHandler(registrations, eventSvc),
		Ticketing:    handler.NewTicketingHandler(ticketing, tickets, payments),
		Reports:      handler.NewReportHandler(reporter),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
