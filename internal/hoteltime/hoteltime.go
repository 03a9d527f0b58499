// Package hoteltime holds the hotel's time policy: standard check-in and
// check-out times, the cleaning buffer between stays, and the checkout grace
// period. All functions are pure; the policy is passed in explicitly so the
// engine can be tested with arbitrary policies.
package hoteltime

import "time"

type Policy struct {
	CheckInTime      string // HH:MM
	CheckOutTime     string // HH:MM
	EarlyCheckInTime string // HH:MM
	LateCheckOutTime string // HH:MM
	CleaningBuffer   time.Duration
	CheckOutGrace    time.Duration
}

// Default returns the documented policy defaults, used when configuration
// leaves a value unset.
func Default() Policy {
	return Policy{
		CheckInTime:      "15:00",
		CheckOutTime:     "12:00",
		EarlyCheckInTime: "12:00",
		LateCheckOutTime: "14:00",
		CleaningBuffer:   2 * time.Hour,
		CheckOutGrace:    time.Hour,
	}
}

// atClock combines the date portion of t with an HH:MM wall-clock string in
// t's location. Malformed clock strings were rejected at config load.
func atClock(t time.Time, clock string) time.Time {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		parsed, _ = time.Parse("15:04", "00:00")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), parsed.Hour(), parsed.Minute(), 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DefaultCheckIn combines a date with the configured check-in time.
func (p Policy) DefaultCheckIn(date time.Time) time.Time {
	return atClock(date, p.CheckInTime)
}

// DefaultCheckOut combines a date with the configured check-out time.
func (p Policy) DefaultCheckOut(date time.Time) time.Time {
	return atClock(date, p.CheckOutTime)
}

// StayEndsAt returns when a stay stops occupying the room: its checkout if
// recorded, otherwise the end of the reference date's operational day.
func (p Policy) StayEndsAt(checkout *time.Time, ref time.Time) time.Time {
	if checkout != nil {
		return *checkout
	}
	return EndOfDay(ref)
}

// RoomAvailableAt returns the earliest instant the room can take a new guest
// after a stay: stay end plus the cleaning buffer.
func (p Policy) RoomAvailableAt(checkout *time.Time, ref time.Time) time.Time {
	return p.StayEndsAt(checkout, ref).Add(p.CleaningBuffer)
}

// IsRoomAvailableForReservation is the buffer-aware availability predicate
// used by the booking guard: the requested check-in must be strictly after
// the room becomes available again.
func (p Policy) IsRoomAvailableForReservation(requestedCheckIn time.Time, stayCheckout *time.Time) bool {
	return requestedCheckIn.After(p.RoomAvailableAt(stayCheckout, requestedCheckIn))
}

// CheckInIntersectsWithStay reports a same-day conflict: the requested
// check-in falls on the same calendar day as the stay's end and does not come
// after it. Distinct from buffer-based unavailability so callers can report
// the two cases differently.
func (p Policy) CheckInIntersectsWithStay(requestedCheckIn time.Time, stayCheckout *time.Time) bool {
	end := p.StayEndsAt(stayCheckout, requestedCheckIn)
	return SameDay(requestedCheckIn, end) && !requestedCheckIn.After(end)
}

// IsLateCheckout reports whether an actual checkout time is past the late
// checkout threshold for that day. Billing adjustments hang off this.
func (p Policy) IsLateCheckout(actual time.Time) bool {
	return actual.After(atClock(actual, p.LateCheckOutTime))
}

// IsEarlyCheckIn reports whether an actual check-in time is before the early
// check-in threshold for that day.
func (p Policy) IsEarlyCheckIn(actual time.Time) bool {
	return actual.Before(atClock(actual, p.EarlyCheckInTime))
}
