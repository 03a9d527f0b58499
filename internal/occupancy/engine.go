// Package occupancy computes a room's display status from its manual status,
// reservation history and maintenance blocks. Every function here is pure:
// callers load state, the engine only decides.
package occupancy

import (
	"fmt"
	"time"

	"github.com/castellmar/rooms-service/internal/hoteltime"
	"github.com/castellmar/rooms-service/internal/models"
)

// StatusInput carries everything the display-status computation depends on.
// Two calls with equal inputs yield equal outputs.
type StatusInput struct {
	ManualStatus      models.RoomStatus
	ReservationRooms  []models.ReservationRoom
	MaintenanceBlocks []models.RoomMaintenanceBlock
	Policy            hoteltime.Policy
	At                time.Time
}

// ComputeDisplayStatus applies the precedence order: maintenance, occupied,
// pending checkout, reserved (same day), then the room's manual status.
// A manual "free" never wins over a live stay covering the instant.
func ComputeDisplayStatus(in StatusInput) models.RoomStatus {
	for i := range in.MaintenanceBlocks {
		if in.MaintenanceBlocks[i].Covers(in.At) {
			return models.StatusMaintenance
		}
	}

	if stay := ActiveStay(in.ReservationRooms, in.Policy, in.At); stay != nil {
		return models.StatusOccupied
	}

	if rr := PendingCheckoutReservation(in.ReservationRooms, in.Policy, in.At); rr != nil {
		end := in.Policy.StayEndsAt(rr.CheckOutAt, in.At)
		if in.At.After(end) && !in.At.After(end.Add(in.Policy.CheckOutGrace)) {
			return models.StatusPendingCheckout
		}
	}

	if hasSameDayUpcomingStay(in.ReservationRooms, in.At) {
		return models.StatusReserved
	}

	manual := models.NormalizeRoomStatus(string(in.ManualStatus))
	switch manual {
	case models.StatusDirty, models.StatusCleaning, models.StatusPendingCleaning:
		return manual
	}
	return models.StatusFree
}

// ActiveStay returns the non-cancelled reservation room whose interval
// contains the instant, or nil. Open-ended stays run through the end of the
// operational day.
func ActiveStay(rooms []models.ReservationRoom, p hoteltime.Policy, at time.Time) *models.ReservationRoom {
	for i := range rooms {
		rr := &rooms[i]
		if rr.Cancelled {
			continue
		}
		if at.Before(rr.CheckInAt) {
			continue
		}
		if at.Before(p.StayEndsAt(rr.CheckOutAt, at)) {
			return rr
		}
	}
	return nil
}

// PendingCheckoutReservation finds the most recent stay whose checkout is at
// or before the instant and that has no successor stay already started. Used
// both for the pending-checkout display state and by the daily recorder to
// recover guest context when no stay is currently active.
func PendingCheckoutReservation(rooms []models.ReservationRoom, p hoteltime.Policy, at time.Time) *models.ReservationRoom {
	var latest *models.ReservationRoom
	var latestEnd time.Time
	for i := range rooms {
		rr := &rooms[i]
		if rr.Cancelled || at.Before(rr.CheckInAt) {
			continue
		}
		end := p.StayEndsAt(rr.CheckOutAt, at)
		if end.After(at) {
			continue
		}
		if latest == nil || end.After(latestEnd) {
			latest = rr
			latestEnd = end
		}
	}
	if latest == nil {
		return nil
	}
	// A successor stay that already started supersedes the pending checkout.
	for i := range rooms {
		rr := &rooms[i]
		if rr.Cancelled || rr.ID == latest.ID {
			continue
		}
		if !rr.CheckInAt.After(at) && rr.CheckInAt.After(latestEnd) {
			return nil
		}
	}
	return latest
}

func hasSameDayUpcomingStay(rooms []models.ReservationRoom, at time.Time) bool {
	for i := range rooms {
		rr := &rooms[i]
		if rr.Cancelled {
			continue
		}
		if rr.CheckInAt.After(at) && hoteltime.SameDay(rr.CheckInAt, at) {
			return true
		}
	}
	return false
}

// ConflictReason classifies why a requested interval cannot be booked.
type ConflictReason string

const (
	ConflictOverlap ConflictReason = "overlap"
	ConflictSameDay ConflictReason = "same_day"
	ConflictBuffer  ConflictReason = "cleaning_buffer"
)

// Conflict describes the existing stay that blocks a requested booking.
type Conflict struct {
	Reason        ConflictReason
	ReservationID uint
	Start         time.Time
	End           time.Time
}

func (c *Conflict) Interval() string {
	return fmt.Sprintf("[%s, %s)", c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339))
}

// CheckConflict scans existing non-cancelled stays for one that makes the
// requested [checkIn, checkOut) interval unbookable under the buffer-aware
// rule. The cleaning buffer is enforced on both sides of the new stay: the
// room must be cleanable after the previous guest and before the next one.
func CheckConflict(existing []models.ReservationRoom, checkIn, checkOut time.Time, p hoteltime.Policy) *Conflict {
	for i := range existing {
		rr := &existing[i]
		if rr.Cancelled {
			continue
		}
		start := rr.CheckInAt
		end := p.StayEndsAt(rr.CheckOutAt, checkIn)

		conflict := func(reason ConflictReason) *Conflict {
			return &Conflict{Reason: reason, ReservationID: rr.ReservationID, Start: start, End: end}
		}

		// Plain interval overlap.
		if checkIn.Before(end) && checkOut.After(start) {
			return conflict(ConflictOverlap)
		}
		// New stay after the existing one: buffer must have elapsed.
		if !checkIn.Before(end) {
			if p.CheckInIntersectsWithStay(checkIn, rr.CheckOutAt) {
				return conflict(ConflictSameDay)
			}
			if !p.IsRoomAvailableForReservation(checkIn, rr.CheckOutAt) {
				return conflict(ConflictBuffer)
			}
			continue
		}
		// New stay before the existing one: the existing guest needs the
		// buffer after the new checkout.
		if !start.After(checkOut.Add(p.CleaningBuffer)) {
			return conflict(ConflictBuffer)
		}
	}
	return nil
}
