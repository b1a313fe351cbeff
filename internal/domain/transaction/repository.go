package transaction

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// ListByApplicationID returns entries in append order for timeline rebuilds.
	ListByApplicationID(ctx context.Context, applicationID string) ([]Entry, error)
}
