package dto

import "github.com/shopspring/decimal"

type CreateEventRequest struct {
	Name         string          `json:"name"`
	SeatCapacity int             `json:"seat_capacity"`
	TicketPrice  decimal.Decimal `json:"ticket_price"`
	TicketColor  string          `json:"ticket_color"`
}

type CreateReservationRequest struct {
	EventID          uint   `json:"event_id"`
	UserID           string `json:"user_id"`
	Quantity         int    `json:"quantity"`
	TicketHolderName string `json:"ticket_holder_name"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type BulkCancelRequest struct {
	EventID uint   `json:"event_id"`
	UserID  string `json:"user_id"`
}

type TransferRequest struct {
	ToUserID string `json:"to_user_id"`
	Reason   string `json:"reason"`
}

type TransferManyRequest struct {
	TicketIDs []string `json:"ticket_ids"`
	ToUserID  string   `json:"to_user_id"`
	Reason    string   `json:"reason"`
}

type CreateEntrySessionRequest struct {
	EventID       uint   `json:"event_id"`
	UserID        string `json:"user_id"`
	ReservationID uint   `json:"reservation_id"`
}
