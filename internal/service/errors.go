package service

import (
	"errors"
	"fmt"

	"github.com/castellmar/rooms-service/internal/occupancy"
)

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrMissingDates          = errors.New("check-in and check-out are both required")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be after check-in")
	ErrCheckInInPast         = errors.New("check-in must not be in the past")
	ErrAlreadyCancelled      = errors.New("reservation is already cancelled")
	ErrFutureDate            = errors.New("snapshot date must not be in the future")
	ErrInvalidMonth          = errors.New("invalid month")
	ErrSnapshotNotFound      = errors.New("snapshot not found")
)

// RoomUnavailableError is returned by the booking guard when a requested
// interval conflicts with an existing stay. It always names the conflicting
// interval; overlaps are reported, never silently resolved.
type RoomUnavailableError struct {
	RoomID   uint
	Conflict *occupancy.Conflict
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %d unavailable: %s conflict with reservation %d over %s",
		e.RoomID, e.Conflict.Reason, e.Conflict.ReservationID, e.Conflict.Interval())
}

// CleaningDeniedReason explains why a mark-clean transition was refused.
type CleaningDeniedReason string

const (
	CleaningDeniedOccupied        CleaningDeniedReason = "occupied"
	CleaningDeniedPendingCheckout CleaningDeniedReason = "pending_checkout"
	CleaningDeniedReservedToday   CleaningDeniedReason = "reservation_starts_today"
	CleaningDeniedNotRequired     CleaningDeniedReason = "not_required"
)

type CleaningDeniedError struct {
	Reason CleaningDeniedReason
}

func (e *CleaningDeniedError) Error() string {
	return fmt.Sprintf("room cannot be marked clean: %s", e.Reason)
}
