package transfermock

import (
	"context"

	domain "scholarship-portal-backend/internal/domain/transfer"
)

// Repo is a function-backed mock that satisfies domain.Repository. Like
// transactionmock, the zero value collects created attempts.
type Repo struct {
	CreateFn       func(ctx context.Context, a *domain.Attempt) error
	GetByBatchIDFn func(ctx context.Context, batchID string) ([]domain.Attempt, error)

	Created []domain.Attempt
}

func (m *Repo) Create(ctx context.Context, a *domain.Attempt) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	m.Created = append(m.Created, *a)
	return nil
}

func (m *Repo) GetByBatchID(ctx context.Context, batchID string) ([]domain.Attempt, error) {
	if m.GetByBatchIDFn != nil {
		return m.GetByBatchIDFn(ctx, batchID)
	}
	return m.Created, nil
}
