package mysql

import (
	"context"

	"gorm.io/gorm"

	txnDomain "scholarship-portal-backend/internal/domain/transaction"
)

// TransactionRepository is append-only on purpose: no Save, no Delete.
type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Append(ctx context.Context, e *txnDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *TransactionRepository) ListByApplicationID(ctx context.Context, applicationID string) ([]txnDomain.Entry, error) {
	var out []txnDomain.Entry
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
