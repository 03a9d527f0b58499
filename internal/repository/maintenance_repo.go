package repository

import (
	"context"

	"github.com/castellmar/rooms-service/internal/models"
	"gorm.io/gorm"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, block *models.RoomMaintenanceBlock) error
	Delete(ctx context.Context, id uint) error
	FindByRoomID(ctx context.Context, roomID uint) ([]models.RoomMaintenanceBlock, error)
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, block *models.RoomMaintenanceBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *maintenanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RoomMaintenanceBlock{}, id).Error
}

func (r *maintenanceRepository) FindByRoomID(ctx context.Context, roomID uint) ([]models.RoomMaintenanceBlock, error) {
	var blocks []models.RoomMaintenanceBlock
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("start_at ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}
