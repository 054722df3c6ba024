package main

import (
	"log"

	"github.com/kkkukkk/kin-booking-sub001/config"
	"github.com/kkkukkk/kin-booking-sub001/internal/cache"
	"github.com/kkkukkk/kin-booking-sub001/internal/handler"
	"github.com/kkkukkk/kin-booking-sub001/internal/middleware"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/kkkukkk/kin-booking-sub001/pkg/database"
	"github.com/kkkukkk/kin-booking-sub001/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Lifecycle event publisher; optional, the engine runs without it.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, lifecycle events disabled")
	}

	// Pre-flight availability cache; optional as well.
	var availability *cache.AvailabilityCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		availability = cache.NewAvailabilityCache(rdb, cfg.AvailabilityCacheTTL)
	} else {
		log.Println("REDIS_ADDR not set, availability cache disabled")
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	sessionRepo := repository.NewEntrySessionRepository(db)

	// Services
	eventSvc := service.NewEventService(eventRepo)
	inventorySvc := service.NewInventoryService(eventRepo, ticketRepo, availability)
	reservationSvc := service.NewReservationService(reservationRepo, eventRepo)
	approvalSvc := service.NewApprovalService(reservationRepo, eventRepo, ticketRepo, availability, publisher)
	ticketSvc := service.NewTicketService(ticketRepo, eventRepo, availability, publisher)
	transferSvc := service.NewTransferService(ticketRepo, transferRepo, publisher)
	entrySvc := service.NewEntryService(sessionRepo, ticketRepo, publisher, cfg.EntrySessionTTL)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketing-engine"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewEventHandler(eventSvc, inventorySvc).RegisterRoutes(e)
	handler.NewReservationHandler(reservationSvc, approvalSvc).RegisterRoutes(e)
	handler.NewTicketHandler(ticketSvc, transferSvc).RegisterRoutes(e)
	handler.NewEntryHandler(entrySvc).RegisterRoutes(e)

	log.Printf("Ticketing Engine starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
