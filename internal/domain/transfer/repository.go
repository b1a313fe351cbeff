package transfer

import "context"

type Repository interface {
	Create(ctx context.Context, a *Attempt) error
	GetByBatchID(ctx context.Context, batchID string) ([]Attempt, error)
}
