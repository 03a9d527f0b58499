package database

import (
	"log"

	"github.com/castellmar/rooms-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

// Migrate creates the schema plus a constraint the ORM cannot express: an
// exclusion constraint that rejects overlapping non-cancelled stays on
// insert, backing the application-level booking guard at the storage layer.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Guest{},
		&models.Room{},
		&models.RoomRateOverride{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.RoomMaintenanceBlock{},
		&models.RoomDailyStatus{},
		&models.RoomMonthlyStatus{},
	); err != nil {
		return err
	}

	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
		ALTER TABLE reservation_rooms
		ADD CONSTRAINT excl_reservation_rooms_no_overlap
		EXCLUDE USING gist (
			room_id WITH =,
			tsrange(check_in_at, COALESCE(check_out_at, 'infinity')) WITH &&
		) WHERE (NOT cancelled)
	`)

	return nil
}
