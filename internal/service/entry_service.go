package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/monitoring"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"github.com/kkkukkk/kin-booking-sub001/pkg/rabbitmq"
	"gorm.io/gorm"
)

// EntryService issues and consumes single-use check-in sessions. A session
// validates against live ticket state at consumption time, not creation
// time, so issuing several sessions for the same reservation is tolerated;
// each scan still answers from current data.
type EntryService interface {
	CreateSession(ctx context.Context, eventID uint, userID string, reservationID uint) (*models.EntrySession, error)
	ConsumeSession(ctx context.Context, sessionID string) (*models.EntrySession, error)
}

type entryService struct {
	sessionRepo repository.EntrySessionRepository
	ticketRepo  repository.TicketRepository
	publisher   *rabbitmq.Publisher
	ttl         time.Duration

	// clock, swappable in tests
	now func() time.Time
}

func NewEntryService(
	sessionRepo repository.EntrySessionRepository,
	ticketRepo repository.TicketRepository,
	publisher *rabbitmq.Publisher,
	ttl time.Duration,
) EntryService {
	return &entryService{
		sessionRepo: sessionRepo,
		ticketRepo:  ticketRepo,
		publisher:   publisher,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *entryService) CreateSession(ctx context.Context, eventID uint, userID string, reservationID uint) (*models.EntrySession, error) {
	active, err := s.ticketRepo.CountActiveForReservation(ctx, s.ticketRepo.GetDB(), eventID, userID, reservationID)
	if err != nil {
		return nil, fmt.Errorf("count active tickets: %w", err)
	}
	if active == 0 {
		return nil, ErrNoActiveTickets
	}

	session := &models.EntrySession{
		ID:            uuid.NewString(),
		EventID:       eventID,
		UserID:        userID,
		ReservationID: reservationID,
		Result:        models.EntryPending,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create entry session: %w", err)
	}
	return session, nil
}

// ConsumeSession resolves one scan. Exactly one call per session gets past
// the consumed_at check; the session row is locked for the duration so a
// double scan serializes. Expiry and a missing active ticket both consume
// the session as rejected; the token is spent either way.
func (s *entryService) ConsumeSession(ctx context.Context, sessionID string) (*models.EntrySession, error) {
	var session *models.EntrySession
	expired := false

	err := s.sessionRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("load entry session: %w", err)
		}
		if found.ConsumedAt != nil {
			return ErrSessionConsumed
		}

		now := s.now()
		result := models.EntryRejected

		if found.ExpiredAt(now, s.ttl) {
			expired = true
		} else {
			active, err := s.ticketRepo.CountActiveForReservation(ctx, tx, found.EventID, found.UserID, found.ReservationID)
			if err != nil {
				return fmt.Errorf("count active tickets: %w", err)
			}
			if active > 0 {
				result = models.EntryAdmitted
			}
		}

		if err := s.sessionRepo.MarkConsumed(ctx, tx, found.ID, result, now); err != nil {
			return fmt.Errorf("consume entry session: %w", err)
		}

		found.Result = result
		found.ConsumedAt = &now
		session = found
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSessionConsumed) {
			monitoring.TrackEntryScan("already_consumed")
		}
		return nil, err
	}

	if expired {
		monitoring.TrackEntryScan("expired")
	} else {
		monitoring.TrackEntryScan(string(session.Result))
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyEntryScanned, session)
	}
	if expired {
		return session, ErrSessionExpired
	}
	return session, nil
}
