package handler

import (
	"net/http"
	"time"

	"github.com/castellmar/rooms-service/internal/service"
	"github.com/labstack/echo/v4"
)

// SnapshotHandler exposes the recorded daily history for the front desk.
// Corrections stay off the HTTP surface.
type SnapshotHandler struct {
	svc service.SnapshotService
}

func NewSnapshotHandler(svc service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

func (h *SnapshotHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/snapshots", h.ListByDate)
}

func (h *SnapshotHandler) ListByDate(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)")
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	snaps, err := h.svc.SnapshotsForDate(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, snaps)
}
