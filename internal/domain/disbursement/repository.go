package disbursement

import "context"

type Repository interface {
	Create(ctx context.Context, d *Disbursement) error
	GetByDisbursementID(ctx context.Context, disbursementID string) (*Disbursement, error)
	GetByDisbursementIDForUpdate(ctx context.Context, disbursementID string) (*Disbursement, error)
	GetByApplicationID(ctx context.Context, applicationID string) ([]Disbursement, error)
	Save(ctx context.Context, d *Disbursement) error
	SaveComponent(ctx context.Context, c *PaymentComponent) error
}
