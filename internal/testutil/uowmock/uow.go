package uowmock

import (
	"context"
	"errors"

	"scholarship-portal-backend/internal/domain/application"
	"scholarship-portal-backend/internal/domain/uow"
	"scholarship-portal-backend/internal/testutil/applicationmock"
	"scholarship-portal-backend/internal/testutil/disbursementmock"
	"scholarship-portal-backend/internal/testutil/transactionmock"
	"scholarship-portal-backend/internal/testutil/transfermock"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinApplicationTx(fn func(context.Context, string, func(uow.Repos, *application.Application) error) error) *UoW {
	m.WithinApplicationTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, applicationID, fn)
	}
	return errUnimplemented
}

// Store is an in-memory backing for tests that want real pass-through
// transactional behaviour instead of stubbed closures.
type Store struct {
	Applications  map[string]*application.Application
	Disbursements *disbursementmock.Repo
	Transactions  *transactionmock.Repo
	Transfers     *transfermock.Repo
}

// NewStore seeds the backing maps and returns a UoW whose transactions run
// against them. Commit/rollback semantics are not simulated; the store is
// for exercising usecase logic, not isolation.
func NewStore(apps ...*application.Application) (*Store, *UoW) {
	s := &Store{
		Applications:  make(map[string]*application.Application, len(apps)),
		Disbursements: &disbursementmock.Repo{},
		Transactions:  &transactionmock.Repo{},
		Transfers:     &transfermock.Repo{},
	}
	for _, a := range apps {
		s.Applications[a.ApplicationID] = a
	}

	appRepo := &applicationmock.Repo{
		CreateFn: func(_ context.Context, a *application.Application) error {
			s.Applications[a.ApplicationID] = a
			return nil
		},
		GetByApplicationIDFn: func(_ context.Context, id string) (*application.Application, error) {
			a, ok := s.Applications[id]
			if !ok {
				return nil, application.ErrNotFound
			}
			return a, nil
		},
		SaveFn: func(_ context.Context, a *application.Application) error {
			s.Applications[a.ApplicationID] = a
			return nil
		},
	}
	appRepo.GetByApplicationIDForUpdateFn = appRepo.GetByApplicationIDFn

	repos := uow.Repos{
		Applications:  appRepo,
		Disbursements: s.Disbursements,
		Transactions:  s.Transactions,
		Transfers:     s.Transfers,
	}

	m := &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinApplicationTxFn: func(ctx context.Context, applicationID string, fn func(uow.Repos, *application.Application) error) error {
			a, ok := s.Applications[applicationID]
			if !ok {
				return application.ErrNotFound
			}
			return fn(repos, a)
		},
	}
	return s, m
}
