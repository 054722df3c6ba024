package handler

import (
	"net/http"
	"strconv"

	"github.com/kkkukkk/kin-booking-sub001/internal/dto"
	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc       service.EventService
	inventory service.InventoryService
}

func NewEventHandler(svc service.EventService, inventory service.InventoryService) *EventHandler {
	return &EventHandler{svc: svc, inventory: inventory}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("", h.CreateEvent)
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.GET("/:id/availability", h.GetAvailability)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.SeatCapacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "seat_capacity must be positive")
	}

	event := &models.Event{
		Name:         req.Name,
		SeatCapacity: req.SeatCapacity,
		TicketPrice:  req.TicketPrice,
		Status:       models.EventPending,
	}
	if req.TicketColor != "" {
		event.TicketColor = req.TicketColor
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// GetAvailability serves the pre-flight seat count. Display only: the
// approval transaction always recounts before committing.
func (h *EventHandler) GetAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	available, err := h.inventory.AvailableSeats(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		EventID:        uint(id),
		SeatsAvailable: available,
	})
}
