package dto

import "github.com/castellmar/rooms-service/internal/models"

// StatusPresentation is the UI mapping for a status. It lives here, not in
// models: the engine and persistence never depend on labels or colors.
type StatusPresentation struct {
	Label string
	Color string
	Icon  string
}

var statusPresentations = map[models.RoomStatus]StatusPresentation{
	models.StatusFree:            {Label: "Free", Color: "green", Icon: "door-open"},
	models.StatusReserved:        {Label: "Reserved", Color: "blue", Icon: "calendar"},
	models.StatusOccupied:        {Label: "Occupied", Color: "red", Icon: "user"},
	models.StatusMaintenance:     {Label: "Maintenance", Color: "orange", Icon: "wrench"},
	models.StatusCleaning:        {Label: "Cleaning", Color: "yellow", Icon: "broom"},
	models.StatusDirty:           {Label: "Dirty", Color: "brown", Icon: "trash"},
	models.StatusPendingCheckout: {Label: "Pending checkout", Color: "purple", Icon: "clock"},
	models.StatusPendingCleaning: {Label: "Pending cleaning", Color: "amber", Icon: "hourglass"},
}

func PresentationFor(s models.RoomStatus) StatusPresentation {
	if p, ok := statusPresentations[s]; ok {
		return p
	}
	return statusPresentations[models.StatusFree]
}
