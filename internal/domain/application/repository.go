package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row inside the surrounding tx.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	// Save bumps the revision counter and fails with ErrStaleEntity when the
	// row changed underneath the caller.
	Save(ctx context.Context, a *Application) error
}
