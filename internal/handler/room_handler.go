package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/castellmar/rooms-service/internal/dto"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/repository"
	"github.com/castellmar/rooms-service/internal/service"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	occupancy   service.OccupancyService
	cleaning    service.CleaningService
	calendar    service.CalendarService
	roomRepo    repository.RoomRepository
	maintenance repository.MaintenanceRepository
}

func NewRoomHandler(
	occ service.OccupancyService,
	cleaning service.CleaningService,
	calendar service.CalendarService,
	roomRepo repository.RoomRepository,
	maintenance repository.MaintenanceRepository,
) *RoomHandler {
	return &RoomHandler{
		occupancy:   occ,
		cleaning:    cleaning,
		calendar:    calendar,
		roomRepo:    roomRepo,
		maintenance: maintenance,
	}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/rooms")
	g.GET("", h.ListRooms)
	g.POST("", h.CreateRoom)
	g.GET("/:id/status", h.GetStatus)
	g.GET("/:id/calendar", h.GetCalendar)
	g.POST("/:id/clean", h.MarkClean)
	g.POST("/:id/maintenance", h.CreateMaintenanceBlock)
	g.DELETE("/:id/maintenance/:blockID", h.DeleteMaintenanceBlock)
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.roomRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_number is required")
	}

	room := &models.Room{
		RoomNumber:  req.RoomNumber,
		BedsCount:   req.BedsCount,
		MaxCapacity: req.MaxCapacity,
		Status:      models.StatusFree,
	}
	if len(req.OccupancyPrices) > 0 {
		data, err := json.Marshal(req.OccupancyPrices)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid occupancy prices")
		}
		room.OccupancyPrices = data
	}

	if err := h.roomRepo.Create(c.Request().Context(), room); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, room)
}

// GetStatus returns the live display status at the given instant (query param
// "at", RFC 3339; defaults to now).
func (h *RoomHandler) GetStatus(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	at := time.Now()
	if raw := c.QueryParam("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid 'at' timestamp, expected RFC 3339")
		}
	}

	status, err := h.occupancy.DisplayStatus(c.Request().Context(), uint(roomID), at)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	p := dto.PresentationFor(status)
	return c.JSON(http.StatusOK, dto.RoomStatusResponse{
		RoomID: uint(roomID),
		At:     at,
		Status: status,
		Label:  p.Label,
		Color:  p.Color,
		Icon:   p.Icon,
	})
}

// GetCalendar reads the regenerated month cache; it does not run the live
// engine per day.
func (h *RoomHandler) GetCalendar(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	month := time.Now()
	if raw := c.QueryParam("month"); raw != "" {
		month, err = time.Parse("2006-01", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month, expected YYYY-MM")
		}
	}

	rows, err := h.calendar.MonthForRoom(c.Request().Context(), uint(roomID), month.Year(), month.Month())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CalendarDayResponse, 0, len(rows))
	for _, row := range rows {
		p := dto.PresentationFor(row.Status)
		resp = append(resp, dto.CalendarDayResponse{
			Date:   row.Date.Format("2006-01-02"),
			Status: row.Status,
			Label:  p.Label,
			Color:  p.Color,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) MarkClean(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	err = h.cleaning.MarkRoomClean(c.Request().Context(), uint(roomID))
	if err != nil {
		var denied *service.CleaningDeniedError
		switch {
		case errors.As(err, &denied):
			return c.JSON(http.StatusConflict, dto.CleanRoomResponse{
				Success: false,
				Message: denied.Error(),
				Reason:  string(denied.Reason),
			})
		case errors.Is(err, service.ErrRoomNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.CleanRoomResponse{
		Success: true,
		Message: "room marked clean",
	})
}

func (h *RoomHandler) CreateMaintenanceBlock(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	var req dto.CreateMaintenanceBlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return echo.NewHTTPError(http.StatusBadRequest, "maintenance window requires start_at before end_at")
	}

	block := &models.RoomMaintenanceBlock{
		RoomID:  uint(roomID),
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
	}
	if err := h.maintenance.Create(c.Request().Context(), block); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, block)
}

func (h *RoomHandler) DeleteMaintenanceBlock(c echo.Context) error {
	blockID, err := strconv.ParseUint(c.Param("blockID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid block id")
	}
	if err := h.maintenance.Delete(c.Request().Context(), uint(blockID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
