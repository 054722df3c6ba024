package repository

import (
	"context"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"gorm.io/gorm"
)

// TransferRepository is append-only: journal rows are created inside the
// transfer transaction and never updated or deleted afterwards.
type TransferRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *models.TransferRecord) error
	FindByTicket(ctx context.Context, ticketID string) ([]models.TransferRecord, error)
}

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, tx *gorm.DB, record *models.TransferRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}

// FindByTicket returns journal entries touching the ticket as either the
// retired or the reissued side, oldest first.
func (r *transferRepository) FindByTicket(ctx context.Context, ticketID string) ([]models.TransferRecord, error) {
	var records []models.TransferRecord
	err := r.db.WithContext(ctx).
		Where("ticket_id = ? OR new_ticket_id = ?", ticketID, ticketID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
