package repository

import (
	"context"
	"time"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntrySessionRepository interface {
	Create(ctx context.Context, session *models.EntrySession) error
	FindByID(ctx context.Context, id string) (*models.EntrySession, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.EntrySession, error)
	MarkConsumed(ctx context.Context, tx *gorm.DB, id string, result models.EntryResult, consumedAt time.Time) error
	GetDB() *gorm.DB
}

type entrySessionRepository struct {
	db *gorm.DB
}

func NewEntrySessionRepository(db *gorm.DB) EntrySessionRepository {
	return &entrySessionRepository{db: db}
}

func (r *entrySessionRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *entrySessionRepository) Create(ctx context.Context, session *models.EntrySession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *entrySessionRepository) FindByID(ctx context.Context, id string) (*models.EntrySession, error) {
	var session models.EntrySession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByIDForUpdate locks the session row so two scans of the same QR code
// serialize; the loser of the race sees consumed_at already set.
func (r *entrySessionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.EntrySession, error) {
	var session models.EntrySession
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *entrySessionRepository) MarkConsumed(ctx context.Context, tx *gorm.DB, id string, result models.EntryResult, consumedAt time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.EntrySession{}).
		Where("id = ?", id).
		Updates(map[string]any{"result": result, "consumed_at": consumedAt}).Error
}
