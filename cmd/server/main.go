package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/castellmar/rooms-service/config"
	"github.com/castellmar/rooms-service/internal/handler"
	"github.com/castellmar/rooms-service/internal/middleware"
	"github.com/castellmar/rooms-service/internal/repository"
	"github.com/castellmar/rooms-service/internal/service"
	"github.com/castellmar/rooms-service/pkg/database"
	"github.com/castellmar/rooms-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	policy := cfg.HotelPolicy()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, events disabled: %v", err)
	} else {
		defer publisher.Close()
	}
	// A nil interface keeps the services from calling a nil *Publisher.
	var events service.EventPublisher
	if publisher != nil {
		events = publisher
	}

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Services
	occupancySvc := service.NewOccupancyService(roomRepo, reservationRepo, maintenanceRepo, policy)
	bookingSvc := service.NewBookingService(roomRepo, reservationRepo, policy, events)
	cleaningSvc := service.NewCleaningService(occupancySvc, roomRepo, events)
	calendarSvc := service.NewCalendarService(roomRepo, reservationRepo, maintenanceRepo, calendarRepo, policy)
	snapshotSvc := service.NewSnapshotService(roomRepo, reservationRepo, maintenanceRepo, snapshotRepo, policy, events)

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
		return c.JSON(200, map[string]string{"status": "ok", "service": "rooms-service"})
	})

	handler.NewReservationHandler(bookingSvc).RegisterRoutes(e)
	handler.NewRoomHandler(occupancySvc, cleaningSvc, calendarSvc, roomRepo, maintenanceRepo).RegisterRoutes(e)
	handler.NewGuestHandler(guestRepo).RegisterRoutes(e)
	handler.NewSnapshotHandler(snapshotSvc).RegisterRoutes(e)

	go func() {
		log.Printf("Rooms Service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Rooms Service stopped")
}
