package service

import "errors"

// Business-rule errors. All of these are deterministic given current data
// state: they are returned to the caller verbatim and never retried.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrSessionNotFound     = errors.New("entry session not found")

	ErrInvalidState      = errors.New("operation not valid for current status")
	ErrInvalidTransition = errors.New("ticket status transition not allowed")
	ErrCapacityExceeded  = errors.New("insufficient seats for event")

	ErrNoActiveTickets = errors.New("no active tickets for this reservation")

	ErrSessionConsumed = errors.New("entry session already consumed")
	ErrSessionExpired  = errors.New("entry session expired")
)

// isBusinessError separates the deterministic failures above from storage
// failures; only the latter are worth a bounded retry.
func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrEventNotFound, ErrReservationNotFound, ErrTicketNotFound, ErrSessionNotFound,
		ErrInvalidState, ErrInvalidTransition, ErrCapacityExceeded,
		ErrNoActiveTickets, ErrSessionConsumed, ErrSessionExpired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
