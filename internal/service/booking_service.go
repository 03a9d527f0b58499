package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/castellmar/rooms-service/internal/hoteltime"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/castellmar/rooms-service/internal/repository"
	"gorm.io/gorm"
)

// EventPublisher is the outbound side of the message broker. Satisfied by
// pkg/rabbitmq.Publisher; nil publishers are tolerated so tests and the batch
// binaries can run without a broker.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type RoomBookingInput struct {
	RoomID     uint
	CheckInAt  time.Time
	CheckOutAt time.Time
}

type CreateReservationInput struct {
	GuestID       uint
	CompanionIDs  []uint
	Rooms         []RoomBookingInput
	TotalAmount   float64
	Deposit       float64
	PaymentMethod string
	Notes         string
}

type BookingService interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id uint) (*models.Reservation, error)
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
}

type bookingService struct {
	roomRepo        repository.RoomRepository
	reservationRepo repository.ReservationRepository
	policy          hoteltime.Policy
	publisher       EventPublisher
}

func NewBookingService(
	roomRepo repository.RoomRepository,
	reservationRepo repository.ReservationRepository,
	policy hoteltime.Policy,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		policy:          policy,
		publisher:       publisher,
	}
}

// CreateReservation books one or more rooms atomically. The check-then-insert
// runs inside a single transaction holding a row lock on each target room, so
// two concurrent requests for the same room serialize and the loser sees the
// winner's rows. A rejected booking rolls back completely.
func (s *bookingService) CreateReservation(ctx context.Context, input CreateReservationInput) (*models.Reservation, error) {
	if len(input.Rooms) == 0 {
		return nil, ErrMissingDates
	}

	now := time.Now()
	for _, rb := range input.Rooms {
		if rb.CheckInAt.IsZero() || rb.CheckOutAt.IsZero() {
			return nil, ErrMissingDates
		}
		if !rb.CheckOutAt.After(rb.CheckInAt) {
			return nil, ErrCheckOutBeforeCheckIn
		}
		if rb.CheckInAt.Before(now) {
			return nil, ErrCheckInInPast
		}
	}

	// Lock rooms in a stable order so multi-room reservations cannot deadlock
	// against each other.
	bookings := make([]RoomBookingInput, len(input.Rooms))
	copy(bookings, input.Rooms)
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].RoomID < bookings[j].RoomID })

	var result *models.Reservation
	guests := 1 + len(input.CompanionIDs)

	err := s.roomRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var computedTotal float64
		for _, rb := range bookings {
			room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, rb.RoomID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return err
			}

			existing, err := s.reservationRepo.FindRoomsByRoomID(ctx, tx, rb.RoomID)
			if err != nil {
				return err
			}

			if c := occupancy.CheckConflict(existing, rb.CheckInAt, rb.CheckOutAt, s.policy); c != nil {
				return &RoomUnavailableError{RoomID: rb.RoomID, Conflict: c}
			}

			computedTotal += stayPrice(room, rb.CheckInAt, rb.CheckOutAt, guests)
		}

		total := input.TotalAmount
		if total == 0 {
			total = computedTotal
		}

		res := &models.Reservation{
			GuestID:       input.GuestID,
			TotalAmount:   total,
			Deposit:       input.Deposit,
			PaymentMethod: input.PaymentMethod,
			Notes:         input.Notes,
		}
		for _, id := range input.CompanionIDs {
			res.Companions = append(res.Companions, models.Guest{ID: id})
		}
		for _, rb := range bookings {
			out := rb.CheckOutAt
			res.Rooms = append(res.Rooms, models.ReservationRoom{
				RoomID:     rb.RoomID,
				CheckInAt:  rb.CheckInAt,
				CheckOutAt: &out,
			})
		}

		if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if perr := s.publisher.Publish("booking.created", result); perr != nil {
			log.Printf("[Booking] publish booking.created failed: %v", perr)
		}
	}
	return result, nil
}

// CancelReservation marks the reservation cancelled and flags any room whose
// stay was in progress as dirty so housekeeping picks it up.
func (s *bookingService) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if res.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	err = s.roomRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reservationRepo.Cancel(ctx, tx, id, now); err != nil {
			return err
		}
		for i := range res.Rooms {
			rr := &res.Rooms[i]
			if rr.CheckInAt.After(now) {
				continue
			}
			if now.Before(s.policy.StayEndsAt(rr.CheckOutAt, now)) {
				if err := s.roomRepo.UpdateStatus(ctx, tx, rr.RoomID, models.StatusDirty); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.CancelledAt = &now
	for i := range res.Rooms {
		res.Rooms[i].Cancelled = true
	}

	if s.publisher != nil {
		if perr := s.publisher.Publish("booking.cancelled", res); perr != nil {
			log.Printf("[Booking] publish booking.cancelled failed: %v", perr)
		}
	}
	return res, nil
}

// stayPrice sums the nightly rate over each night of the stay. Nights are
// counted by calendar date, not 24-hour spans.
func stayPrice(room *models.Room, checkIn, checkOut time.Time, guests int) float64 {
	total := 0.0
	night := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	lastNight := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, checkOut.Location())
	for night.Before(lastNight) {
		total += room.NightlyRate(night, guests)
		night = night.AddDate(0, 0, 1)
	}
	return total
}

func (s *bookingService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}
