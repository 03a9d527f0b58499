package service

import (
	"context"
	"log"
	"time"

	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/castellmar/rooms-service/internal/repository"
)

// CleaningService gates the "mark room clean" transition on the room's
// computed status, not its stored one: a stale manual flag must not let a
// cleaner release an occupied room.
type CleaningService interface {
	MarkRoomClean(ctx context.Context, roomID uint) error
}

type cleaningService struct {
	occupancy OccupancyService
	roomRepo  repository.RoomRepository
	publisher EventPublisher
}

func NewCleaningService(occ OccupancyService, roomRepo repository.RoomRepository, publisher EventPublisher) CleaningService {
	return &cleaningService{occupancy: occ, roomRepo: roomRepo, publisher: publisher}
}

func (s *cleaningService) MarkRoomClean(ctx context.Context, roomID uint) error {
	in, err := s.occupancy.StatusInput(ctx, roomID, time.Now())
	if err != nil {
		return err
	}

	switch status := occupancy.ComputeDisplayStatus(*in); status {
	case models.StatusDirty, models.StatusCleaning, models.StatusPendingCleaning:
		// cleanable states, transition below
	case models.StatusOccupied:
		return &CleaningDeniedError{Reason: CleaningDeniedOccupied}
	case models.StatusPendingCheckout:
		return &CleaningDeniedError{Reason: CleaningDeniedPendingCheckout}
	case models.StatusReserved:
		return &CleaningDeniedError{Reason: CleaningDeniedReservedToday}
	default:
		return &CleaningDeniedError{Reason: CleaningDeniedNotRequired}
	}

	if err := s.roomRepo.UpdateStatus(ctx, nil, roomID, models.StatusFree); err != nil {
		return err
	}

	if s.publisher != nil {
		payload := struct {
			RoomID    uint      `json:"room_id"`
			CleanedAt time.Time `json:"cleaned_at"`
		}{roomID, time.Now()}
		if perr := s.publisher.Publish("room.cleaned", payload); perr != nil {
			log.Printf("[Cleaning] publish room.cleaned failed: %v", perr)
		}
	}
	return nil
}
