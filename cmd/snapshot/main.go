// Command snapshot records the immutable end-of-day status for every room on
// a given date. Exit code 0 on success, 1 on failure.
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
	dateArg := flag.String("date", "", "date to snapshot, YYYY-MM-DD (required)")
	flag.Parse()

	if *dateArg == "" {
		fmt.Fprintln(os.Stderr, "snapshot: -date is required (YYYY-MM-DD)")
		os.Exit(1)
	}
	date, err := time.Parse("2006-01-02", *dateArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: invalid date %q: %v\n", *dateArg, err)
		os.Exit(1)
	}

	cfg := config.Load()
	db := database.NewPostgresDB(cfg.DSN())

	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	svc := service.NewSnapshotService(roomRepo, reservationRepo, maintenanceRepo, snapshotRepo, cfg.HotelPolicy(), nil)

	summary, err := svc.RecordDate(context.Background(), date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("snapshot for %s: %d created, %d already present, %d failed\n",
		date.Format("2006-01-02"), summary.Created, summary.Skipped, summary.Failed)
}
