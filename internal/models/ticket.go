package models

import "time"

type TicketStatus string

const (
	TicketActive          TicketStatus = "active"
	TicketCancelRequested TicketStatus = "cancel_requested"
	TicketCancelled       TicketStatus = "cancelled"
	TicketUsed            TicketStatus = "used"
	TicketTransferred     TicketStatus = "transferred"
)

// ticketTransitions is the closed transition table. Anything not listed
// here is rejected; there is no other path between statuses.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketActive:          {TicketCancelRequested, TicketUsed, TicketTransferred},
	TicketCancelRequested: {TicketCancelled, TicketActive},
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s TicketStatus) Terminal() bool {
	return len(ticketTransitions[s]) == 0
}

// HoldsSeat reports whether a ticket in this status counts against the
// event's seat capacity. Cancel-requested still holds the seat: it is
// provisionally kept until an operator finalizes the cancellation.
func (s TicketStatus) HoldsSeat() bool {
	return s == TicketActive || s == TicketCancelRequested
}

// CapacityHeldStatuses is the status set the inventory ledger counts.
var CapacityHeldStatuses = []TicketStatus{TicketActive, TicketCancelRequested}

// AllTicketStatuses enumerates every status, for validation and tests.
var AllTicketStatuses = []TicketStatus{
	TicketActive,
	TicketCancelRequested,
	TicketCancelled,
	TicketUsed,
	TicketTransferred,
}

// Ticket is one numbered seat entitlement. ReservationID is the ticket's
// provenance and never changes, even across transfers; OwnerID changes
// only through the retire-and-reissue transfer path, which creates a new
// row rather than mutating this one.
type Ticket struct {
	ID            string       `gorm:"type:uuid;primaryKey" json:"id"`
	ReservationID uint         `gorm:"not null;index" json:"reservation_id"`
	EventID       uint         `gorm:"not null;index:idx_tickets_event_status" json:"event_id"`
	OwnerID       string       `gorm:"not null;index" json:"owner_id"`
	Color         string       `gorm:"not null" json:"color"`
	IsRare        bool         `gorm:"not null;default:false" json:"is_rare"`
	Status        TicketStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_tickets_event_status" json:"status"`
	TicketNumber  int          `gorm:"not null" json:"ticket_number"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
