package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/castellmar/rooms-service/internal/dto"
	"github.com/castellmar/rooms-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc service.BookingService
}

func NewReservationHandler(svc service.BookingService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/reservations")
	g.POST("", h.CreateReservation)
	g.GET("/:id", h.GetReservation)
	g.DELETE("/:id", h.CancelReservation)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.GuestID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "guest_id is required")
	}
	if len(req.Rooms) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one room is required")
	}

	input := service.CreateReservationInput{
		GuestID:       req.GuestID,
		CompanionIDs:  req.CompanionIDs,
		TotalAmount:   req.TotalAmount,
		Deposit:       req.Deposit,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, rb := range req.Rooms {
		input.Rooms = append(input.Rooms, service.RoomBookingInput{
			RoomID:     rb.RoomID,
			CheckInAt:  rb.CheckInAt,
			CheckOutAt: rb.CheckOutAt,
		})
	}

	res, err := h.svc.CreateReservation(c.Request().Context(), input)
	if err != nil {
		var unavailable *service.RoomUnavailableError
		switch {
		case errors.As(err, &unavailable):
			return c.JSON(http.StatusConflict, dto.ConflictResponse{
				Message:       unavailable.Error(),
				RoomID:        unavailable.RoomID,
				Reason:        string(unavailable.Conflict.Reason),
				ReservationID: unavailable.Conflict.ReservationID,
				Interval:      unavailable.Conflict.Interval(),
			})
		case errors.Is(err, service.ErrRoomNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMissingDates),
			errors.Is(err, service.ErrCheckOutBeforeCheckIn),
			errors.Is(err, service.ErrCheckInInPast):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(res))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	res, err := h.svc.GetReservation(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	res, err := h.svc.CancelReservation(c.Request().Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyCancelled):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}
