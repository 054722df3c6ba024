package handler

import (
	"net/http"

	"github.com/kkkukkk/kin-booking-sub001/internal/dto"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/labstack/echo/v4"
)

type EntryHandler struct {
	svc service.EntryService
}

func NewEntryHandler(svc service.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

func (h *EntryHandler) RegisterRoutes(e *echo.Echo) {
	entry := e.Group("/api/v1/entry/sessions")
	entry.POST("", h.CreateSession)
	entry.POST("/:id/consume", h.ConsumeSession)
}

// CreateSession issues a fresh opaque token for the caller to embed in a
// QR code. Rendering the code is the caller's problem.
func (h *EntryHandler) CreateSession(c echo.Context) error {
	var req dto.CreateEntrySessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	session, err := h.svc.CreateSession(c.Request().Context(), req.EventID, req.UserID, req.ReservationID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEntrySessionResponse(session))
}

func (h *EntryHandler) ConsumeSession(c echo.Context) error {
	session, err := h.svc.ConsumeSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEntrySessionResponse(session))
}
