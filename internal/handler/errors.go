package handler

import (
	"errors"
	"net/http"

	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps engine sentinel errors to HTTP codes. Business errors
// carry their specific message so the caller UI can distinguish "try
// fewer tickets" from "system error".
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrNoActiveTickets),
		errors.Is(err, service.ErrSessionConsumed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSessionExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
