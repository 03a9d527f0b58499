package models

import "time"

type Guest struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"type:varchar(200);not null" json:"name"`
	Identification string `gorm:"type:varchar(50)" json:"identification"`
	Phone          string `gorm:"type:varchar(50)" json:"phone"`
	Email          string `gorm:"type:varchar(200)" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Reservation struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	GuestID       uint       `gorm:"index;not null" json:"guest_id"`
	TotalAmount   float64    `json:"total_amount"`
	Deposit       float64    `json:"deposit"`
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Guest      *Guest            `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Companions []Guest           `gorm:"many2many:reservation_companions" json:"companions,omitempty"`
	Rooms      []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms,omitempty"`
}

func (r *Reservation) IsCancelled() bool {
	return r.CancelledAt != nil
}

// ReservationRoom books one room within a reservation. CheckOutAt is nullable
// in the schema because legacy open-ended stays exist; new bookings are
// validated to carry both timestamps before they reach storage.
type ReservationRoom struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ReservationID uint       `gorm:"index;not null" json:"reservation_id"`
	RoomID        uint       `gorm:"index;not null" json:"room_id"`
	CheckInAt     time.Time  `gorm:"not null" json:"check_in_at"`
	CheckOutAt    *time.Time `json:"check_out_at,omitempty"`
	Cancelled     bool       `gorm:"not null;default:false" json:"cancelled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Room        *Room        `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
