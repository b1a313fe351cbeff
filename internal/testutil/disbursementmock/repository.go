package disbursementmock

import (
	"context"

	domain "scholarship-portal-backend/internal/domain/disbursement"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, d *domain.Disbursement) error
	GetByDisbursementIDFn          func(ctx context.Context, disbursementID string) (*domain.Disbursement, error)
	GetByDisbursementIDForUpdateFn func(ctx context.Context, disbursementID string) (*domain.Disbursement, error)
	GetByApplicationIDFn           func(ctx context.Context, applicationID string) ([]domain.Disbursement, error)
	SaveFn                         func(ctx context.Context, d *domain.Disbursement) error
	SaveComponentFn                func(ctx context.Context, c *domain.PaymentComponent) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Disbursement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDisbursementID(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	if m.GetByDisbursementIDFn != nil {
		return m.GetByDisbursementIDFn(ctx, disbursementID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByDisbursementIDForUpdate(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	if m.GetByDisbursementIDForUpdateFn != nil {
		return m.GetByDisbursementIDForUpdateFn(ctx, disbursementID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) ([]domain.Disbursement, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, d *domain.Disbursement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) SaveComponent(ctx context.Context, c *domain.PaymentComponent) error {
	if m.SaveComponentFn != nil {
		return m.SaveComponentFn(ctx, c)
	}
	return nil
}
