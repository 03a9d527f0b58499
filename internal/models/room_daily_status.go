package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoomDailyStatus is the immutable end-of-day snapshot of a room. One row per
// (room, date); the automated recorder only ever inserts, never updates.
type RoomDailyStatus struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RoomID         uint           `gorm:"uniqueIndex:idx_room_daily,priority:1;not null" json:"room_id"`
	Date           time.Time      `gorm:"uniqueIndex:idx_room_daily,priority:2;type:date;not null" json:"date"`
	Status         RoomStatus     `gorm:"type:varchar(30);not null" json:"status"`
	CleaningStatus string         `gorm:"type:varchar(30)" json:"cleaning_status"`
	ReservationID  *uint          `gorm:"index" json:"reservation_id,omitempty"`
	GuestName      string         `gorm:"type:varchar(200)" json:"guest_name"`
	GuestsData     datatypes.JSON `gorm:"type:jsonb" json:"guests_data,omitempty"`
	CheckOutDate   *time.Time     `json:"check_out_date,omitempty"`
	TotalAmount    float64        `json:"total_amount"`

	CreatedAt time.Time `json:"created_at"`
}

// GuestSnapshot is the denormalized per-guest entry stored in GuestsData.
// It is a copy, not a reference: later edits to the guest record must not
// rewrite history.
type GuestSnapshot struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Identification string `json:"identification,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	IsMain         bool   `json:"is_main"`
}

// RoomMonthlyStatus is a row of the calendar cache: a disposable projection of
// the display status for one room and day, safe to regenerate at any time.
type RoomMonthlyStatus struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	RoomID uint       `gorm:"uniqueIndex:idx_room_monthly,priority:1;not null" json:"room_id"`
	Date   time.Time  `gorm:"uniqueIndex:idx_room_monthly,priority:2;type:date;not null" json:"date"`
	Status RoomStatus `gorm:"type:varchar(30);not null" json:"status"`

	UpdatedAt time.Time `json:"updated_at"`
}
