package dto

import "time"

type RoomBookingRequest struct {
	RoomID     uint      `json:"room_id"`
	CheckInAt  time.Time `json:"check_in_at"`
	CheckOutAt time.Time `json:"check_out_at"`
}

type CreateReservationRequest struct {
	GuestID       uint                 `json:"guest_id"`
	CompanionIDs  []uint               `json:"companion_ids,omitempty"`
	Rooms         []RoomBookingRequest `json:"rooms"`
	TotalAmount   float64              `json:"total_amount"`
	Deposit       float64              `json:"deposit"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	Notes         string               `json:"notes,omitempty"`
}

type CreateRoomRequest struct {
	RoomNumber      string          `json:"room_number"`
	BedsCount       int             `json:"beds_count"`
	MaxCapacity     int             `json:"max_capacity"`
	OccupancyPrices map[int]float64 `json:"occupancy_prices,omitempty"`
}

type CreateMaintenanceBlockRequest struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reason  string    `json:"reason,omitempty"`
}
