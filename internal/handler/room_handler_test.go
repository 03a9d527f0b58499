package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/castellmar/rooms-service/internal/dto"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/castellmar/rooms-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock CleaningService ---

type mockCleaningService struct {
	err error
}

func (m *mockCleaningService) MarkRoomClean(ctx context.Context, roomID uint) error {
	return m.err
}

// --- Mock OccupancyService ---

type mockOccupancyService struct {
	status models.RoomStatus
	err    error
}

func (m *mockOccupancyService) DisplayStatus(ctx context.Context, roomID uint, at time.Time) (models.RoomStatus, error) {
	return m.status, m.err
}

func (m *mockOccupancyService) StatusInput(ctx context.Context, roomID uint, at time.Time) (*occupancy.StatusInput, error) {
	return nil, m.err
}

// --- Mock CalendarService ---

type mockCalendarService struct {
	rows []models.RoomMonthlyStatus
}

func (m *mockCalendarService) RegenerateMonth(ctx context.Context, year int, month time.Month) (int, error) {
	return 0, nil
}

func (m *mockCalendarService) MonthForRoom(ctx context.Context, roomID uint, year int, month time.Month) ([]models.RoomMonthlyStatus, error) {
	return m.rows, nil
}

// --- Tests ---

func TestMarkClean_Handler_Success(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/7/clean", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewRoomHandler(nil, &mockCleaningService{}, nil, nil, nil)
	err := h.MarkClean(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CleanRoomResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Reason)
}

func TestMarkClean_Handler_DeniedOccupied(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/7/clean", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	svc := &mockCleaningService{err: &service.CleaningDeniedError{Reason: service.CleaningDeniedOccupied}}
	h := NewRoomHandler(nil, svc, nil, nil, nil)
	err := h.MarkClean(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.CleanRoomResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "occupied", resp.Reason)
}

func TestMarkClean_Handler_InvalidID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/abc/clean", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewRoomHandler(nil, &mockCleaningService{}, nil, nil, nil)
	err := h.MarkClean(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetStatus_Handler_Success(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/7/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewRoomHandler(&mockOccupancyService{status: models.StatusOccupied}, nil, nil, nil, nil)
	err := h.GetStatus(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RoomStatusResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusOccupied, resp.Status)
	assert.Equal(t, "Occupied", resp.Label)
}

func TestGetStatus_Handler_NotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/99/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	h := NewRoomHandler(&mockOccupancyService{err: service.ErrRoomNotFound}, nil, nil, nil, nil)
	err := h.GetStatus(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetStatus_Handler_BadTimestamp(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/7/status?at=yesterday", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewRoomHandler(&mockOccupancyService{}, nil, nil, nil, nil)
	err := h.GetStatus(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetCalendar_Handler_ReadsCache(t *testing.T) {
	rows := []models.RoomMonthlyStatus{
		{RoomID: 7, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusFree},
		{RoomID: 7, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Status: models.StatusOccupied},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/7/calendar?month=2025-06", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewRoomHandler(nil, nil, &mockCalendarService{rows: rows}, nil, nil)
	err := h.GetCalendar(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.CalendarDayResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "2025-06-01", resp[0].Date)
	assert.Equal(t, models.StatusOccupied, resp[1].Status)
}
