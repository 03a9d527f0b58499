package repository

import (
	"context"
	"time"

	"github.com/castellmar/rooms-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepository interface {
	// CreateIfAbsent inserts the snapshot unless a row already exists for
	// (room, date). Returns whether a row was actually created. This is the
	// only write path available to the automated recorder.
	CreateIfAbsent(ctx context.Context, snap *models.RoomDailyStatus) (bool, error)
	FindByRoomAndDate(ctx context.Context, roomID uint, date time.Time) (*models.RoomDailyStatus, error)
	FindByDate(ctx context.Context, date time.Time) ([]models.RoomDailyStatus, error)
	// Correct overwrites an existing snapshot. Reserved for the explicit
	// manual-correction workflow; the daily job never calls it.
	Correct(ctx context.Context, snap *models.RoomDailyStatus) error
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) CreateIfAbsent(ctx context.Context, snap *models.RoomDailyStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(snap)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *snapshotRepository) FindByRoomAndDate(ctx context.Context, roomID uint, date time.Time) (*models.RoomDailyStatus, error) {
	var snap models.RoomDailyStatus
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, date.Format("2006-01-02")).
		First(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *snapshotRepository) FindByDate(ctx context.Context, date time.Time) ([]models.RoomDailyStatus, error) {
	var snaps []models.RoomDailyStatus
	err := r.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		Order("room_id ASC").
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

func (r *snapshotRepository) Correct(ctx context.Context, snap *models.RoomDailyStatus) error {
	return r.db.WithContext(ctx).Save(snap).Error
}
