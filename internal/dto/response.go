package dto

import (
	"time"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/shopspring/decimal"
)

type EventResponse struct {
	ID           uint               `json:"id"`
	Name         string             `json:"name"`
	SeatCapacity int                `json:"seat_capacity"`
	TicketPrice  decimal.Decimal    `json:"ticket_price"`
	TicketColor  string             `json:"ticket_color"`
	Status       models.EventStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

type AvailabilityResponse struct {
	EventID        uint `json:"event_id"`
	SeatsAvailable int  `json:"seats_available"`
}

type ReservationResponse struct {
	ID               uint                     `json:"id"`
	EventID          uint                     `json:"event_id"`
	UserID           string                   `json:"user_id"`
	Quantity         int                      `json:"quantity"`
	TicketHolderName string                   `json:"ticket_holder_name"`
	Status           models.ReservationStatus `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`
}

type TicketResponse struct {
	ID            string              `json:"id"`
	ReservationID uint                `json:"reservation_id"`
	EventID       uint                `json:"event_id"`
	OwnerID       string              `json:"owner_id"`
	Color         string              `json:"color"`
	IsRare        bool                `json:"is_rare"`
	Status        models.TicketStatus `json:"status"`
	TicketNumber  int                 `json:"ticket_number"`
	CreatedAt     time.Time           `json:"created_at"`
}

type ApprovalResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Tickets     []TicketResponse    `json:"tickets"`
}

type TransferRecordResponse struct {
	ID          uint      `json:"id"`
	TicketID    string    `json:"ticket_id"`
	NewTicketID string    `json:"new_ticket_id"`
	FromUserID  string    `json:"from_user_id"`
	ToUserID    string    `json:"to_user_id"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

type EntrySessionResponse struct {
	ID            string             `json:"id"`
	EventID       uint               `json:"event_id"`
	UserID        string             `json:"user_id"`
	ReservationID uint               `json:"reservation_id"`
	Result        models.EntryResult `json:"result"`
	CreatedAt     time.Time          `json:"created_at"`
	ConsumedAt    *time.Time         `json:"consumed_at,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		SeatCapacity: e.SeatCapacity,
		TicketPrice:  e.TicketPrice,
		TicketColor:  e.TicketColor,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:               r.ID,
		EventID:          r.EventID,
		UserID:           r.UserID,
		Quantity:         r.Quantity,
		TicketHolderName: r.TicketHolderName,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
	}
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{
		ID:            t.ID,
		ReservationID: t.ReservationID,
		EventID:       t.EventID,
		OwnerID:       t.OwnerID,
		Color:         t.Color,
		IsRare:        t.IsRare,
		Status:        t.Status,
		TicketNumber:  t.TicketNumber,
		CreatedAt:     t.CreatedAt,
	}
}

func ToTransferRecordResponse(r *models.TransferRecord) TransferRecordResponse {
	return TransferRecordResponse{
		ID:          r.ID,
		TicketID:    r.TicketID,
		NewTicketID: r.NewTicketID,
		FromUserID:  r.FromUserID,
		ToUserID:    r.ToUserID,
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
}

func ToEntrySessionResponse(s *models.EntrySession) EntrySessionResponse {
	return EntrySessionResponse{
		ID:            s.ID,
		EventID:       s.EventID,
		UserID:        s.UserID,
		ReservationID: s.ReservationID,
		Result:        s.Result,
		CreatedAt:     s.CreatedAt,
		ConsumedAt:    s.ConsumedAt,
	}
}
