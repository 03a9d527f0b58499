// Command regenerate rebuilds the per-day status calendar cache for a month
// (default: the current month). Safe to run repeatedly; the cache is a
// disposable projection. Exit code 0 on success, 1 on failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/castellmar/rooms-service/config"
	"github.com/castellmar/rooms-service/internal/repository"
	"github.com/castellmar/rooms-service/internal/service"
	"github.com/castellmar/rooms-service/pkg/database"
)

func main() {
	monthArg := flag.String("month", "", "month to regenerate, YYYY-MM (default: current month)")
	flag.Parse()

	target := time.Now()
	if *monthArg != "" {
		var err error
		target, err = time.Parse("2006-01", *monthArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "regenerate: invalid month %q: %v\n", *monthArg, err)
			os.Exit(1)
		}
	}

	cfg := config.Load()
	db := database.NewPostgresDB(cfg.DSN())

	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)

	svc := service.NewCalendarService(roomRepo, reservationRepo, maintenanceRepo, calendarRepo, cfg.HotelPolicy())

	cells, err := svc.RegenerateMonth(context.Background(), target.Year(), target.Month())
	if err != nil {
		fmt.Fprintf(os.Stderr, "regenerate: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("regenerated %d calendar cells for %s\n", cells, target.Format("2006-01"))
}
