package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/castellmar/rooms-service/internal/dto"
	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/occupancy"
	"github.com/castellmar/rooms-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn func(ctx context.Context, input service.CreateReservationInput) (*models.Reservation, error)
	cancelFn func(ctx context.Context, id uint) (*models.Reservation, error)
	getFn    func(ctx context.Context, id uint) (*models.Reservation, error)
}

func (m *mockBookingService) CreateReservation(ctx context.Context, input service.CreateReservationInput) (*models.Reservation, error) {
	return m.createFn(ctx, input)
}
func (m *mockBookingService) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.cancelFn(ctx, id)
}
func (m *mockBookingService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.getFn(ctx, id)
}

const createBody = `{
	"guest_id": 1,
	"rooms": [{"room_id": 7, "check_in_at": "2026-06-01T15:00:00Z", "check_out_at": "2026-06-03T12:00:00Z"}],
	"total_amount": 240
}`

func newCreateContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateReservation_Handler_Success(t *testing.T) {
	out := time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateReservationInput) (*models.Reservation, error) {
			return &models.Reservation{
				ID:          1,
				GuestID:     input.GuestID,
				TotalAmount: input.TotalAmount,
				Rooms: []models.ReservationRoom{
					{ID: 1, RoomID: 7, CheckInAt: time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC), CheckOutAt: &out},
				},
			}, nil
		},
	}

	e := echo.New()
	c, rec := newCreateContext(e, createBody)

	h := NewReservationHandler(svc)
	err := h.CreateReservation(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.ReservationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Len(t, resp.Rooms, 1)
	assert.Equal(t, uint(7), resp.Rooms[0].RoomID)
}

func TestCreateReservation_Handler_Conflict(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateReservationInput) (*models.Reservation, error) {
			return nil, &service.RoomUnavailableError{
				RoomID: 7,
				Conflict: &occupancy.Conflict{
					Reason:        occupancy.ConflictOverlap,
					ReservationID: 3,
					Start:         time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC),
					End:           time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC),
				},
			}
		},
	}

	e := echo.New()
	c, rec := newCreateContext(e, createBody)

	h := NewReservationHandler(svc)
	err := h.CreateReservation(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.ConflictResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.RoomID)
	assert.Equal(t, "overlap", resp.Reason)
	assert.Equal(t, uint(3), resp.ReservationID)
	assert.Contains(t, resp.Interval, "2026-06-01T15:00:00Z")
}

func TestCreateReservation_Handler_ValidationError(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateReservationInput) (*models.Reservation, error) {
			return nil, service.ErrCheckInInPast
		},
	}

	e := echo.New()
	c, _ := newCreateContext(e, createBody)

	h := NewReservationHandler(svc)
	err := h.CreateReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateReservation_Handler_MissingGuest(t *testing.T) {
	e := echo.New()
	c, _ := newCreateContext(e, `{"rooms":[{"room_id":7}]}`)

	h := NewReservationHandler(nil)
	err := h.CreateReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateReservation_Handler_NoRooms(t *testing.T) {
	e := echo.New()
	c, _ := newCreateContext(e, `{"guest_id":1,"rooms":[]}`)

	h := NewReservationHandler(nil)
	err := h.CreateReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCancelReservation_Handler_Success(t *testing.T) {
	now := time.Now()
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return &models.Reservation{ID: id, GuestID: 1, CancelledAt: &now}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewReservationHandler(svc)
	err := h.CancelReservation(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ReservationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.CancelledAt)
}

func TestCancelReservation_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return nil, service.ErrReservationNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewReservationHandler(svc)
	err := h.CancelReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCancelReservation_Handler_AlreadyCancelled(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return nil, service.ErrAlreadyCancelled
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewReservationHandler(svc)
	err := h.CancelReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}
