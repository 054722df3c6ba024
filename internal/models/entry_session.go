package models

import "time"

type EntryResult string

const (
	EntryPending  EntryResult = "pending"
	EntryAdmitted EntryResult = "admitted"
	EntryRejected EntryResult = "rejected"
)

// EntrySession is a single-use check-in token. The ID is the opaque
// value the caller embeds in a QR code. ConsumedAt is set exactly once;
// admitted and rejected are terminal.
type EntrySession struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uint        `gorm:"not null;index" json:"event_id"`
	UserID        string      `gorm:"not null" json:"user_id"`
	ReservationID uint        `gorm:"not null;index" json:"reservation_id"`
	Result        EntryResult `gorm:"type:varchar(20);not null;default:'pending'" json:"result"`
	CreatedAt     time.Time   `json:"created_at"`
	ConsumedAt    *time.Time  `json:"consumed_at,omitempty"`
}

// ExpiredAt reports whether the session's TTL has elapsed at the given
// instant. Expiry is a data-level check at consumption time, not a
// background reaper.
func (s *EntrySession) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}
