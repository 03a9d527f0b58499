package repository

import (
	"context"
	"time"

	"github.com/castellmar/rooms-service/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindRoomsByRoomID(ctx context.Context, tx *gorm.DB, roomID uint) ([]models.ReservationRoom, error)
	FindRoomsOverlappingDate(ctx context.Context, roomID uint, date time.Time) ([]models.ReservationRoom, error)
	Cancel(ctx context.Context, tx *gorm.DB, reservationID uint, at time.Time) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	return tx.WithContext(ctx).Create(res).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Companions").
		Preload("Rooms").
		First(&res, id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FindRoomsByRoomID loads every non-cancelled booking row for a room. Callers
// inside the booking guard pass their transaction so the read sees a
// consistent view under the room's row lock.
func (r *reservationRepository) FindRoomsByRoomID(ctx context.Context, tx *gorm.DB, roomID uint) ([]models.ReservationRoom, error) {
	if tx == nil {
		tx = r.db
	}
	var rooms []models.ReservationRoom
	err := tx.WithContext(ctx).
		Where("room_id = ? AND cancelled = false", roomID).
		Order("check_in_at ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindRoomsOverlappingDate returns non-cancelled bookings whose stay touches
// the given calendar date, with reservation and guest context preloaded for
// the snapshot recorder.
func (r *reservationRepository) FindRoomsOverlappingDate(ctx context.Context, roomID uint, date time.Time) ([]models.ReservationRoom, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var rooms []models.ReservationRoom
	err := r.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Guest").
		Preload("Reservation.Companions").
		Where("room_id = ? AND cancelled = false", roomID).
		Where("check_in_at < ? AND (check_out_at IS NULL OR check_out_at > ?)", dayEnd, dayStart).
		Order("check_in_at ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// Cancel marks the reservation and all its booking rows cancelled.
func (r *reservationRepository) Cancel(ctx context.Context, tx *gorm.DB, reservationID uint, at time.Time) error {
	if err := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", reservationID).
		Update("cancelled_at", at).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).
		Model(&models.ReservationRoom{}).
		Where("reservation_id = ?", reservationID).
		Update("cancelled", true).Error
}
