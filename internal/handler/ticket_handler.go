package handler

import (
	"net/http"
	"strconv"

	"github.com/kkkukkk/kin-booking-sub001/internal/dto"
	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	svc      service.TicketService
	transfer service.TransferService
}

func NewTicketHandler(svc service.TicketService, transfer service.TransferService) *TicketHandler {
	return &TicketHandler{svc: svc, transfer: transfer}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo) {
	tickets := e.Group("/api/v1/tickets")
	tickets.GET("", h.ListTickets)
	tickets.GET("/:id", h.GetTicket)
	tickets.POST("/:id/transition", h.Transition)
	tickets.POST("/cancel-requests", h.BulkCancelRequest)
	tickets.POST("/:id/transfer", h.Transfer)
	tickets.GET("/:id/history", h.History)

	e.POST("/api/v1/transfers", h.TransferMany)
}

func (h *TicketHandler) GetTicket(c echo.Context) error {
	ticket, err := h.svc.GetTicket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

// ListTickets serves the owner / event / reservation lookups through one
// route; exactly one filter must be present.
func (h *TicketHandler) ListTickets(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		tickets []models.Ticket
		err     error
	)
	switch {
	case c.QueryParam("owner_id") != "":
		tickets, err = h.svc.ListByOwner(ctx, c.QueryParam("owner_id"))
	case c.QueryParam("event_id") != "":
		eventID, perr := strconv.ParseUint(c.QueryParam("event_id"), 10, 64)
		if perr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid event_id")
		}
		tickets, err = h.svc.ListByEvent(ctx, uint(eventID))
	case c.QueryParam("reservation_id") != "":
		reservationID, perr := strconv.ParseUint(c.QueryParam("reservation_id"), 10, 64)
		if perr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation_id")
		}
		tickets, err = h.svc.ListByReservation(ctx, uint(reservationID))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "owner_id, event_id or reservation_id is required")
	}
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = dto.ToTicketResponse(&tickets[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TicketHandler) Transition(c echo.Context) error {
	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status := models.TicketStatus(req.Status)
	known := false
	for _, s := range models.AllTicketStatuses {
		if s == status {
			known = true
			break
		}
	}
	if !known {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown ticket status")
	}
	// Retiring into transferred must leave a journal entry and a reissued
	// successor, so it is only reachable through the transfer endpoints.
	if status == models.TicketTransferred {
		return echo.NewHTTPError(http.StatusBadRequest, "transfers go through the transfer endpoint")
	}

	ticket, err := h.svc.Transition(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

func (h *TicketHandler) BulkCancelRequest(c echo.Context) error {
	var req dto.BulkCancelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	tickets, err := h.svc.BulkCancelRequest(c.Request().Context(), req.EventID, req.UserID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = dto.ToTicketResponse(&tickets[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TicketHandler) Transfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ToUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "to_user_id is required")
	}

	ticket, err := h.transfer.Transfer(c.Request().Context(), c.Param("id"), req.ToUserID, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTicketResponse(ticket))
}

func (h *TicketHandler) TransferMany(c echo.Context) error {
	var req dto.TransferManyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ToUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "to_user_id is required")
	}
	if len(req.TicketIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket_ids is required")
	}

	outcomes := h.transfer.TransferMany(c.Request().Context(), req.TicketIDs, req.ToUserID, req.Reason)
	return c.JSON(http.StatusOK, outcomes)
}

func (h *TicketHandler) History(c echo.Context) error {
	records, err := h.transfer.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.TransferRecordResponse, len(records))
	for i := range records {
		resp[i] = dto.ToTransferRecordResponse(&records[i])
	}
	return c.JSON(http.StatusOK, resp)
}
