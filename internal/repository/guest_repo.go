package repository

import (
	"context"

	"github.com/castellmar/rooms-service/internal/models"
	"gorm.io/gorm"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	FindAll(ctx context.Context) ([]models.Guest, error)
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *guestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).First(&guest, id).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepository) FindAll(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}
