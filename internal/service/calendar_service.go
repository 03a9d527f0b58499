package service

import (
	"context"
	"log"
	"time"

	"github.com/castellmar/rooms-service/internal/hoteltime"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/castellmar/rooms-service/internal/repository"
)

type CalendarService interface {
	// RegenerateMonth recomputes the per-day status cache for every room and
	// day of the month. Idempotent: the cache is a disposable projection and
	// each (room, date) upsert stands alone, so a failed run is safe to retry.
	RegenerateMonth(ctx context.Context, year int, month time.Month) (int, error)
	MonthForRoom(ctx context.Context, roomID uint, year int, month time.Month) ([]models.RoomMonthlyStatus, error)
}

type calendarService struct {
	roomRepo        repository.RoomRepository
	reservationRepo repository.ReservationRepository
	maintenanceRepo repository.MaintenanceRepository
	calendarRepo    repository.CalendarRepository
	policy          hoteltime.Policy
}

func NewCalendarService(
	roomRepo repository.RoomRepository,
	reservationRepo repository.ReservationRepository,
	maintenanceRepo repository.MaintenanceRepository,
	calendarRepo repository.CalendarRepository,
	policy hoteltime.Policy,
) CalendarService {
	return &calendarService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		maintenanceRepo: maintenanceRepo,
		calendarRepo:    calendarRepo,
		policy:          policy,
	}
}

func (s *calendarService) RegenerateMonth(ctx context.Context, year int, month time.Month) (int, error) {
	if month < time.January || month > time.December || year < 2000 || year > 2200 {
		return 0, ErrInvalidMonth
	}

	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	cells := 0
	for i := range rooms {
		room := &rooms[i]

		stays, err := s.reservationRepo.FindRoomsByRoomID(ctx, nil, room.ID)
		if err != nil {
			return cells, err
		}
		blocks, err := s.maintenanceRepo.FindByRoomID(ctx, room.ID)
		if err != nil {
			return cells, err
		}

		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			status := occupancy.ComputeDisplayStatus(occupancy.StatusInput{
				ManualStatus:      room.Status,
				ReservationRooms:  stays,
				MaintenanceBlocks: blocks,
				Policy:            s.policy,
				At:                hoteltime.EndOfDay(date),
			})

			if err := s.calendarRepo.Upsert(ctx, &models.RoomMonthlyStatus{
				RoomID: room.ID,
				Date:   date,
				Status: status,
			}); err != nil {
				return cells, err
			}
			cells++
		}
	}

	log.Printf("[Calendar] regenerated %d cells for %04d-%02d (%d rooms)", cells, year, month, len(rooms))
	return cells, nil
}

func (s *calendarService) MonthForRoom(ctx context.Context, roomID uint, year int, month time.Month) ([]models.RoomMonthlyStatus, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	return s.calendarRepo.FindByRoomAndMonth(ctx, roomID, year, month)
}
