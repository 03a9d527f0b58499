package models

import (
	"log"
	"strings"
)

type RoomStatus string

const (
	StatusFree            RoomStatus = "free"
	StatusReserved        RoomStatus = "reserved"
	StatusOccupied        RoomStatus = "occupied"
	StatusMaintenance     RoomStatus = "maintenance"
	StatusCleaning        RoomStatus = "cleaning"
	StatusDirty           RoomStatus = "dirty"
	StatusPendingCheckout RoomStatus = "pending_checkout"
	StatusPendingCleaning RoomStatus = "pending_cleaning"
)

// legacyStatusAliases maps values written by older versions of the system
// (including the Spanish-language predecessor) to canonical statuses.
var legacyStatusAliases = map[string]RoomStatus{
	"available":          StatusFree,
	"libre":              StatusFree,
	"disponible":         StatusFree,
	"booked":             StatusReserved,
	"reservada":          StatusReserved,
	"ocupada":            StatusOccupied,
	"mantenimiento":      StatusMaintenance,
	"limpieza":           StatusCleaning,
	"cleaning_progress":  StatusCleaning,
	"sucia":              StatusDirty,
	"pendiente_salida":   StatusPendingCheckout,
	"pendiente_limpieza": StatusPendingCleaning,
}

var canonicalStatuses = map[RoomStatus]bool{
	StatusFree:            true,
	StatusReserved:        true,
	StatusOccupied:        true,
	StatusMaintenance:     true,
	StatusCleaning:        true,
	StatusDirty:           true,
	StatusPendingCheckout: true,
	StatusPendingCleaning: true,
}

// NormalizeRoomStatus resolves an arbitrary stored value to a canonical
// status. It never fails: anything that does not resolve through the alias
// table or the canonical set falls back to StatusFree, so read paths (the
// calendar, the dashboard) stay available even when the column holds garbage.
// The fallback is logged so bad data is visible without breaking reads.
func NormalizeRoomStatus(raw string) RoomStatus {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return StatusFree
	}
	if s, ok := legacyStatusAliases[v]; ok {
		return s
	}
	if canonicalStatuses[RoomStatus(v)] {
		return RoomStatus(v)
	}
	log.Printf("[RoomStatus] unrecognized status %q, falling back to free", raw)
	return StatusFree
}

// IsCleaningNeeded reports whether the status is one of the states a cleaner
// can act on.
func (s RoomStatus) IsCleaningNeeded() bool {
	switch s {
	case StatusDirty, StatusCleaning, StatusPendingCleaning:
		return true
	}
	return false
}
