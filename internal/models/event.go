package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventSoldOut   EventStatus = "sold_out"
)

type Event struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	SeatCapacity int             `gorm:"not null" json:"seat_capacity"`
	TicketPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"ticket_price"`
	TicketColor  string          `gorm:"not null;default:'#1f6feb'" json:"ticket_color"`
	Status       EventStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
