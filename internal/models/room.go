package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RoomNumber  string     `gorm:"uniqueIndex;type:varchar(20);not null" json:"room_number"`
	BedsCount   int        `gorm:"not null;default:1" json:"beds_count"`
	MaxCapacity int        `gorm:"not null;default:2" json:"max_capacity"`
	Status      RoomStatus `gorm:"type:varchar(30);not null;default:'free'" json:"status"`

	// OccupancyPrices maps guest count to nightly price, e.g. {"1": 80, "2": 120}.
	OccupancyPrices datatypes.JSON `gorm:"type:jsonb" json:"occupancy_prices,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RateOverrides []RoomRateOverride `gorm:"foreignKey:RoomID" json:"rate_overrides,omitempty"`
}

// ManualStatus returns the persisted staff-set status, normalized. The column
// may hold legacy values written before the canonical set existed.
func (r *Room) ManualStatus() RoomStatus {
	return NormalizeRoomStatus(string(r.Status))
}

// NightlyRate resolves the price of one night for the given guest count. A
// date override wins over the occupancy price table; when the exact guest
// count has no entry, the largest configured occupancy at or below it is
// used. Rooms with no pricing configured rate as zero.
func (r *Room) NightlyRate(date time.Time, guests int) float64 {
	for i := range r.RateOverrides {
		o := &r.RateOverrides[i]
		if !date.Before(o.StartDate) && !date.After(o.EndDate) {
			return o.Price
		}
	}
	if len(r.OccupancyPrices) == 0 {
		return 0
	}
	var prices map[int]float64
	if err := json.Unmarshal(r.OccupancyPrices, &prices); err != nil {
		return 0
	}
	if p, ok := prices[guests]; ok {
		return p
	}
	best := 0
	for g := range prices {
		if g <= guests && g > best {
			best = g
		}
	}
	return prices[best]
}

// RoomRateOverride replaces the occupancy price table for a date range.
type RoomRateOverride struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"index;not null" json:"room_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Price     float64   `gorm:"not null" json:"price"`
}

type RoomMaintenanceBlock struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	RoomID  uint      `gorm:"index;not null" json:"room_id"`
	StartAt time.Time `gorm:"not null" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`
	Reason  string    `gorm:"type:text" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

// Covers reports whether the block's window contains the instant.
func (b *RoomMaintenanceBlock) Covers(at time.Time) bool {
	return !at.Before(b.StartAt) && at.Before(b.EndAt)
}
