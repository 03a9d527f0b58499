package service

import (
	"context"
	"testing"
	"time"

	"github.com/castellmar/rooms-service/internal/hoteltime"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/stretchr/testify/assert"
)

func bookingInput(rooms ...RoomBookingInput) CreateReservationInput {
	return CreateReservationInput{GuestID: 1, Rooms: rooms}
}

// Validation happens before any storage access, so these run without a DB.
func TestCreateReservation_RejectsEmptyRooms(t *testing.T) {
	svc := NewBookingService(nil, nil, hoteltime.Default(), nil)

	_, err := svc.CreateReservation(context.Background(), bookingInput())

	assert.ErrorIs(t, err, ErrMissingDates)
}

func TestCreateReservation_RejectsMissingDates(t *testing.T) {
	svc := NewBookingService(nil, nil, hoteltime.Default(), nil)

	_, err := svc.CreateReservation(context.Background(), bookingInput(RoomBookingInput{
		RoomID:    1,
		CheckInAt: time.Now().Add(24 * time.Hour),
	}))

	assert.ErrorIs(t, err, ErrMissingDates)
}

func TestCreateReservation_RejectsCheckOutBeforeCheckIn(t *testing.T) {
	svc := NewBookingService(nil, nil, hoteltime.Default(), nil)
	in := time.Now().Add(48 * time.Hour)

	_, err := svc.CreateReservation(context.Background(), bookingInput(RoomBookingInput{
		RoomID:     1,
		CheckInAt:  in,
		CheckOutAt: in.Add(-time.Hour),
	}))

	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)
}

func TestCreateReservation_RejectsCheckInInPast(t *testing.T) {
	svc := NewBookingService(nil, nil, hoteltime.Default(), nil)

	_, err := svc.CreateReservation(context.Background(), bookingInput(RoomBookingInput{
		RoomID:     1,
		CheckInAt:  time.Now().Add(-time.Hour),
		CheckOutAt: time.Now().Add(24 * time.Hour),
	}))

	assert.ErrorIs(t, err, ErrCheckInInPast)
}

func TestStayPrice_SumsNights(t *testing.T) {
	room := &models.Room{OccupancyPrices: []byte(`{"1": 80, "2": 120}`)}
	in := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	out := time.Date(2026, 6, 4, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 360.0, stayPrice(room, in, out, 2))
	assert.Equal(t, 240.0, stayPrice(room, in, out, 1))
}

func TestStayPrice_OverrideAppliesPerNight(t *testing.T) {
	room := &models.Room{
		OccupancyPrices: []byte(`{"2": 100}`),
		RateOverrides: []models.RoomRateOverride{
			{StartDate: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), Price: 150},
		},
	}
	in := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	out := time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 250.0, stayPrice(room, in, out, 2))
}

func TestRoomUnavailableError_NamesConflict(t *testing.T) {
	start := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	err := &RoomUnavailableError{
		RoomID: 3,
		Conflict: &occupancy.Conflict{
			Reason:        occupancy.ConflictOverlap,
			ReservationID: 9,
			Start:         start,
			End:           end,
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "room 3 unavailable")
	assert.Contains(t, msg, "reservation 9")
	assert.Contains(t, msg, "2025-06-01T15:00:00Z")
}
