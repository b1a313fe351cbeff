package transactionmock

import (
	"context"

	domain "scholarship-portal-backend/internal/domain/transaction"
)

// Repo is a function-backed mock that satisfies domain.Repository. The
// zero value records appended entries so tests can assert on the ledger
// without wiring anything.
type Repo struct {
	AppendFn              func(ctx context.Context, e *domain.Entry) error
	ListByApplicationIDFn func(ctx context.Context, applicationID string) ([]domain.Entry, error)

	// Appended collects entries when AppendFn is nil.
	Appended []domain.Entry
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.Appended = append(m.Appended, *e)
	return nil
}

func (m *Repo) ListByApplicationID(ctx context.Context, applicationID string) ([]domain.Entry, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationID)
	}
	return m.Appended, nil
}
