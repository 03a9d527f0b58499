package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/castellmar/rooms-service/internal/hoteltime"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/castellmar/rooms-service/internal/repository"
)

const snapshotBatchSize = 100

// SnapshotSummary reports what one recorder run did.
type SnapshotSummary struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// CorrectSnapshotInput carries a manual correction to an existing snapshot.
// This path is deliberately separate from the daily job: it is the only
// sanctioned way to touch history after the fact.
type CorrectSnapshotInput struct {
	RoomID      uint
	Date        time.Time
	Status      *models.RoomStatus
	GuestName   *string
	TotalAmount *float64
}

type SnapshotService interface {
	RecordDate(ctx context.Context, date time.Time) (*SnapshotSummary, error)
	SnapshotsForDate(ctx context.Context, date time.Time) ([]models.RoomDailyStatus, error)
	CorrectSnapshot(ctx context.Context, input CorrectSnapshotInput) (*models.RoomDailyStatus, error)
}

type snapshotService struct {
	roomRepo        repository.RoomRepository
	reservationRepo repository.ReservationRepository
	maintenanceRepo repository.MaintenanceRepository
	snapshotRepo    repository.SnapshotRepository
	policy          hoteltime.Policy
	publisher       EventPublisher
}

func NewSnapshotService(
	roomRepo repository.RoomRepository,
	reservationRepo repository.ReservationRepository,
	maintenanceRepo repository.MaintenanceRepository,
	snapshotRepo repository.SnapshotRepository,
	policy hoteltime.Policy,
	publisher EventPublisher,
) SnapshotService {
	return &snapshotService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		maintenanceRepo: maintenanceRepo,
		snapshotRepo:    snapshotRepo,
		policy:          policy,
		publisher:       publisher,
	}
}

// RecordDate writes one immutable snapshot per room for the given date,
// evaluated at end of day. Rooms already snapshotted for that date are left
// untouched, which preserves manually corrected history. Per-room failures
// are logged and skipped: this is best-effort archival, not a transaction.
func (s *snapshotService) RecordDate(ctx context.Context, date time.Time) (*SnapshotSummary, error) {
	today := time.Now()
	if date.Year() > today.Year() ||
		(date.Year() == today.Year() && date.YearDay() > today.YearDay()) {
		return nil, ErrFutureDate
	}

	eod := hoteltime.EndOfDay(date)
	summary := &SnapshotSummary{}

	err := s.roomRepo.FindInBatches(ctx, snapshotBatchSize, func(rooms []models.Room) error {
		for i := range rooms {
			if err := s.recordRoom(ctx, &rooms[i], date, eod, summary); err != nil {
				log.Printf("[Recorder] room %s: %v", rooms[i].RoomNumber, err)
				summary.Failed++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		payload := struct {
			Date    string           `json:"date"`
			Summary *SnapshotSummary `json:"summary"`
		}{date.Format("2006-01-02"), summary}
		if perr := s.publisher.Publish("snapshot.completed", payload); perr != nil {
			log.Printf("[Recorder] publish snapshot.completed failed: %v", perr)
		}
	}
	return summary, nil
}

func (s *snapshotService) recordRoom(ctx context.Context, room *models.Room, date, eod time.Time, summary *SnapshotSummary) error {
	// Day-bounded: only stays touching this date can influence its end-of-day
	// status, and the query preloads the guest context the snapshot records.
	stays, err := s.reservationRepo.FindRoomsOverlappingDate(ctx, room.ID, date)
	if err != nil {
		return err
	}
	blocks, err := s.maintenanceRepo.FindByRoomID(ctx, room.ID)
	if err != nil {
		return err
	}

	status := occupancy.ComputeDisplayStatus(occupancy.StatusInput{
		ManualStatus:      room.Status,
		ReservationRooms:  stays,
		MaintenanceBlocks: blocks,
		Policy:            s.policy,
		At:                eod,
	})

	snap := &models.RoomDailyStatus{
		RoomID:         room.ID,
		Date:           time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Status:         status,
		CleaningStatus: cleaningStatusCode(room.ManualStatus()),
	}

	// Prefer the stay covering end of day; fall back to the pending-checkout
	// stay so a room that emptied during the day still records its guest.
	stay := occupancy.ActiveStay(stays, s.policy, eod)
	if stay == nil {
		stay = occupancy.PendingCheckoutReservation(stays, s.policy, eod)
	}
	if stay != nil {
		if err := s.attachReservation(ctx, snap, stay); err != nil {
			return err
		}
	}

	created, err := s.snapshotRepo.CreateIfAbsent(ctx, snap)
	if err != nil {
		return err
	}
	if created {
		summary.Created++
	} else {
		summary.Skipped++
	}
	return nil
}

func (s *snapshotService) attachReservation(ctx context.Context, snap *models.RoomDailyStatus, stay *models.ReservationRoom) error {
	res := stay.Reservation
	if res == nil {
		loaded, err := s.reservationRepo.FindByID(ctx, stay.ReservationID)
		if err != nil {
			return err
		}
		res = loaded
	}

	snap.ReservationID = &res.ID
	snap.CheckOutDate = stay.CheckOutAt
	snap.TotalAmount = res.TotalAmount

	var guests []models.GuestSnapshot
	if res.Guest != nil {
		snap.GuestName = res.Guest.Name
		guests = append(guests, models.GuestSnapshot{
			ID:             res.Guest.ID,
			Name:           res.Guest.Name,
			Identification: res.Guest.Identification,
			Phone:          res.Guest.Phone,
			Email:          res.Guest.Email,
			IsMain:         true,
		})
	}
	for _, g := range res.Companions {
		guests = append(guests, models.GuestSnapshot{
			ID:             g.ID,
			Name:           g.Name,
			Identification: g.Identification,
			Phone:          g.Phone,
			Email:          g.Email,
		})
	}
	if len(guests) > 0 {
		data, err := json.Marshal(guests)
		if err != nil {
			return err
		}
		snap.GuestsData = data
	}
	return nil
}

// SnapshotsForDate returns the recorded history for one date across all rooms.
func (s *snapshotService) SnapshotsForDate(ctx context.Context, date time.Time) ([]models.RoomDailyStatus, error) {
	return s.snapshotRepo.FindByDate(ctx, date)
}

// CorrectSnapshot is the audited manual-correction path. It updates only the
// fields provided and requires the snapshot to already exist.
func (s *snapshotService) CorrectSnapshot(ctx context.Context, input CorrectSnapshotInput) (*models.RoomDailyStatus, error) {
	snap, err := s.snapshotRepo.FindByRoomAndDate(ctx, input.RoomID, input.Date)
	if err != nil {
		return nil, ErrSnapshotNotFound
	}

	if input.Status != nil {
		snap.Status = models.NormalizeRoomStatus(string(*input.Status))
	}
	if input.GuestName != nil {
		snap.GuestName = *input.GuestName
	}
	if input.TotalAmount != nil {
		snap.TotalAmount = *input.TotalAmount
	}

	if err := s.snapshotRepo.Correct(ctx, snap); err != nil {
		return nil, err
	}
	log.Printf("[Recorder] snapshot corrected for room %d on %s", input.RoomID, input.Date.Format("2006-01-02"))
	return snap, nil
}

// cleaningStatusCode captures the housekeeping dimension of the manual
// status for the historical record.
func cleaningStatusCode(manual models.RoomStatus) string {
	if manual.IsCleaningNeeded() {
		return string(manual)
	}
	return "clean"
}
