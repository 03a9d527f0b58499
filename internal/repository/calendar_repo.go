package repository

import (
	"context"
	"time"

	"github.com/castellmar/rooms-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CalendarRepository interface {
	// Upsert replaces any prior cached status for (room, date). Each cell is
	// independently atomic; the cache is a disposable projection.
	Upsert(ctx context.Context, row *models.RoomMonthlyStatus) error
	FindByRoomAndMonth(ctx context.Context, roomID uint, year int, month time.Month) ([]models.RoomMonthlyStatus, error)
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Upsert(ctx context.Context, row *models.RoomMonthlyStatus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(row).Error
}

func (r *calendarRepository) FindByRoomAndMonth(ctx context.Context, roomID uint, year int, month time.Month) ([]models.RoomMonthlyStatus, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var rows []models.RoomMonthlyStatus
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date >= ? AND date < ?", roomID,
			monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02")).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
