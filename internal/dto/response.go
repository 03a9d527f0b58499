package dto

import (
	"time"

	"github.com/castellmar/rooms-service/internal/models"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// CleanRoomResponse is the fixed contract of the mark-clean endpoint. Reason
// is present only on failure and comes from the cleaning gate's reason codes.
type CleanRoomResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type RoomStatusResponse struct {
	RoomID uint              `json:"room_id"`
	At     time.Time         `json:"at"`
	Status models.RoomStatus `json:"status"`
	Label  string            `json:"label"`
	Color  string            `json:"color"`
	Icon   string            `json:"icon"`
}

type ReservationRoomResponse struct {
	ID         uint       `json:"id"`
	RoomID     uint       `json:"room_id"`
	CheckInAt  time.Time  `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
	Cancelled  bool       `json:"cancelled"`
}

type ReservationResponse struct {
	ID            uint                      `json:"id"`
	GuestID       uint                      `json:"guest_id"`
	TotalAmount   float64                   `json:"total_amount"`
	Deposit       float64                   `json:"deposit"`
	PaymentMethod string                    `json:"payment_method,omitempty"`
	Notes         string                    `json:"notes,omitempty"`
	CancelledAt   *time.Time                `json:"cancelled_at,omitempty"`
	Rooms         []ReservationRoomResponse `json:"rooms"`
	CreatedAt     time.Time                 `json:"created_at"`
}

type ConflictResponse struct {
	Message       string `json:"message"`
	RoomID        uint   `json:"room_id"`
	Reason        string `json:"reason"`
	ReservationID uint   `json:"conflicting_reservation_id"`
	Interval      string `json:"conflicting_interval"`
}

type CalendarDayResponse struct {
	Date   string            `json:"date"`
	Status models.RoomStatus `json:"status"`
	Label  string            `json:"label"`
	Color  string            `json:"color"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:            r.ID,
		GuestID:       r.GuestID,
		TotalAmount:   r.TotalAmount,
		Deposit:       r.Deposit,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		CancelledAt:   r.CancelledAt,
		CreatedAt:     r.CreatedAt,
	}
	for _, rr := range r.Rooms {
		resp.Rooms = append(resp.Rooms, ReservationRoomResponse{
			ID:         rr.ID,
			RoomID:     rr.RoomID,
			CheckInAt:  rr.CheckInAt,
			CheckOutAt: rr.CheckOutAt,
			Cancelled:  rr.Cancelled,
		})
	}
	return resp
}
