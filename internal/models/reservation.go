package models

import "time"

type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationApproved ReservationStatus = "approved"
	ReservationVoided   ReservationStatus = "voided"
)

// Reservation is a request for seats. It is terminal once approved or
// voided; only the approval orchestrator moves it out of pending.
type Reservation struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	EventID          uint              `gorm:"not null;index" json:"event_id"`
	UserID           string            `gorm:"not null" json:"user_id"`
	Quantity         int               `gorm:"not null" json:"quantity"`
	TicketHolderName string            `gorm:"not null" json:"ticket_holder_name"`
	Status           ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
