package models

import "time"

// TransferRecord is one append-only journal entry. TicketID is the
// retired ticket, NewTicketID the reissued one; rows are never updated
// or deleted, so following TicketID/NewTicketID links rebuilds the full
// chain of custody for a seat.
type TransferRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TicketID    string    `gorm:"type:uuid;not null;index" json:"ticket_id"`
	NewTicketID string    `gorm:"type:uuid;not null;index" json:"new_ticket_id"`
	FromUserID  string    `gorm:"not null" json:"from_user_id"`
	ToUserID    string    `gorm:"not null" json:"to_user_id"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}
