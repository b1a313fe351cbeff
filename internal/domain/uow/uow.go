package uow

import (
	"context"

	"scholarship-portal-backend/internal/domain/application"
	"scholarship-portal-backend/internal/domain/disbursement"
	"scholarship-portal-backend/internal/domain/transaction"
	"scholarship-portal-backend/internal/domain/transfer"
)

type Repos struct {
	Applications  application.Repository
	Disbursements disbursement.Repository
	Transactions  transaction.Repository
	Transfers     transfer.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
