package handler

import (
	"net/http"
	"strconv"

	"github.com/castellmar/rooms-service/internal/models"
	"github.com/castellmar/rooms-service/internal/repository"
	"github.com/labstack/echo/v4"
)

type GuestHandler struct {
	guestRepo repository.GuestRepository
}

func NewGuestHandler(guestRepo repository.GuestRepository) *GuestHandler {
	return &GuestHandler{guestRepo: guestRepo}
}

func (h *GuestHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/guests")
	g.POST("", h.CreateGuest)
	g.GET("", h.ListGuests)
	g.GET("/:id", h.GetGuest)
}

func (h *GuestHandler) CreateGuest(c echo.Context) error {
	var guest models.Guest
	if err := c.Bind(&guest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if guest.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	guest.ID = 0

	if err := h.guestRepo.Create(c.Request().Context(), &guest); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, guest)
}

func (h *GuestHandler) ListGuests(c echo.Context) error {
	guests, err := h.guestRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, guests)
}

func (h *GuestHandler) GetGuest(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid guest id")
	}
	guest, err := h.guestRepo.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "guest not found")
	}
	return c.JSON(http.StatusOK, guest)
}
