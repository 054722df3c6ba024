package handler

import (
	"net/http"
	"strconv"

	"github.com/kkkukkk/kin-booking-sub001/internal/dto"
	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc      service.ReservationService
	approval service.ApprovalService
}

func NewReservationHandler(svc service.ReservationService, approval service.ApprovalService) *ReservationHandler {
	return &ReservationHandler{svc: svc, approval: approval}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	reservations := e.Group("/api/v1/reservations")
	reservations.POST("", h.CreateReservation)
	reservations.GET("/:id", h.GetReservation)
	reservations.POST("/:id/approve", h.ApproveReservation)
	reservations.POST("/:id/void", h.VoidReservation)

	e.GET("/api/v1/events/:id/reservations", h.ListByEvent)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	reservation := &models.Reservation{
		EventID:          req.EventID,
		UserID:           req.UserID,
		Quantity:         req.Quantity,
		TicketHolderName: req.TicketHolderName,
	}
	if err := h.svc.CreateReservation(c.Request().Context(), reservation); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	reservation, err := h.svc.GetReservation(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) ApproveReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	result, err := h.approval.Approve(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}

	tickets := make([]dto.TicketResponse, len(result.Tickets))
	for i, t := range result.Tickets {
		tickets[i] = dto.ToTicketResponse(t)
	}
	return c.JSON(http.StatusOK, dto.ApprovalResponse{
		Reservation: dto.ToReservationResponse(result.Reservation),
		Tickets:     tickets,
	})
}

func (h *ReservationHandler) VoidReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	reservation, err := h.svc.VoidReservation(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) ListByEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var status *models.ReservationStatus
	if s := c.QueryParam("status"); s != "" {
		rs := models.ReservationStatus(s)
		status = &rs
	}

	reservations, err := h.svc.ListByEvent(c.Request().Context(), uint(eventID), status)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = dto.ToReservationResponse(&reservations[i])
	}
	return c.JSON(http.StatusOK, resp)
}
