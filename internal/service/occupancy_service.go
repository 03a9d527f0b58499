package service

import (
	"context"
	"errors"
	"time"

	"github.com/castellmar/rooms-service/internal/hoteltime"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/castellmar/rooms-service/internal/repository"
	"gorm.io/gorm"
)

// OccupancyService answers "what state is this room in right now (or at T)".
// It loads the room's state and delegates the decision to the pure engine.
type OccupancyService interface {
	DisplayStatus(ctx context.Context, roomID uint, at time.Time) (models.RoomStatus, error)
	StatusInput(ctx context.Context, roomID uint, at time.Time) (*occupancy.StatusInput, error)
}

type occupancyService struct {
	roomRepo        repository.RoomRepository
	reservationRepo repository.ReservationRepository
	maintenanceRepo repository.MaintenanceRepository
	policy          hoteltime.Policy
}

func NewOccupancyService(
	roomRepo repository.RoomRepository,
	reservationRepo repository.ReservationRepository,
	maintenanceRepo repository.MaintenanceRepository,
	policy hoteltime.Policy,
) OccupancyService {
	return &occupancyService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		maintenanceRepo: maintenanceRepo,
		policy:          policy,
	}
}

func (s *occupancyService) DisplayStatus(ctx context.Context, roomID uint, at time.Time) (models.RoomStatus, error) {
	in, err := s.StatusInput(ctx, roomID, at)
	if err != nil {
		return "", err
	}
	return occupancy.ComputeDisplayStatus(*in), nil
}

func (s *occupancyService) StatusInput(ctx context.Context, roomID uint, at time.Time) (*occupancy.StatusInput, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	stays, err := s.reservationRepo.FindRoomsByRoomID(ctx, nil, roomID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.maintenanceRepo.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &occupancy.StatusInput{
		ManualStatus:      room.Status,
		ReservationRooms:  stays,
		MaintenanceBlocks: blocks,
		Policy:            s.policy,
		At:                at,
	}, nil
}
