package repository

import (
	"context"

	"github.com/castellmar/rooms-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	FindInBatches(ctx context.Context, batchSize int, fn func(rooms []models.Room) error) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error
	GetDB() *gorm.DB
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given
// transaction. Concurrent booking attempts for the same room serialize here.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("RateOverrides").
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindInBatches streams all rooms in bounded chunks so batch jobs keep memory
// constant regardless of hotel size.
func (r *roomRepository) FindInBatches(ctx context.Context, batchSize int, fn func(rooms []models.Room) error) error {
	var batch []models.Room
	return r.db.WithContext(ctx).FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		return fn(batch)
	}).Error
}

func (r *roomRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}
