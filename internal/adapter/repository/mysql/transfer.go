package mysql

import (
	"context"

	"gorm.io/gorm"

	transferDomain "scholarship-portal-backend/internal/domain/transfer"
)

type TransferRepository struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, a *transferDomain.Attempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *TransferRepository) GetByBatchID(ctx context.Context, batchID string) ([]transferDomain.Attempt, error) {
	var out []transferDomain.Attempt
	res := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
