package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	disbDomain "scholarship-portal-backend/internal/domain/disbursement"
)

type DisbursementRepository struct{ db *gorm.DB }

func NewDisbursementRepository(db *gorm.DB) *DisbursementRepository {
	return &DisbursementRepository{db: db}
}

func (r *DisbursementRepository) Create(ctx context.Context, d *disbDomain.Disbursement) error {
	// gorm cascades the component rows with the parent insert
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DisbursementRepository) GetByDisbursementID(ctx context.Context, disbursementID string) (*disbDomain.Disbursement, error) {
	var out disbDomain.Disbursement
	res := r.db.WithContext(ctx).
		Preload("Components").
		Where("disbursement_id = ?", disbursementID).
		First(&out)
	return &out, res.Error
}

func (r *DisbursementRepository) GetByDisbursementIDForUpdate(ctx context.Context, disbursementID string) (*disbDomain.Disbursement, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out disbDomain.Disbursement
	res := q.Preload("Components").
		Where("disbursement_id = ?", disbursementID).
		First(&out)
	return &out, res.Error
}

func (r *DisbursementRepository) GetByApplicationID(ctx context.Context, applicationID string) ([]disbDomain.Disbursement, error) {
	var out []disbDomain.Disbursement
	res := r.db.WithContext(ctx).
		Preload("Components").
		Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DisbursementRepository) Save(ctx context.Context, d *disbDomain.Disbursement) error {
	prev := d.Revision
	d.Revision++
	res := r.db.WithContext(ctx).
		Model(&disbDomain.Disbursement{}).
		Where("id = ? AND revision = ?", d.ID, prev).
		Select("*").
		Omit("id", "created_at", "Components").
		Updates(d)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		d.Revision = prev
		return disbDomain.ErrStaleEntity
	}
	return nil
}

func (r *DisbursementRepository) SaveComponent(ctx context.Context, c *disbDomain.PaymentComponent) error {
	return r.db.WithContext(ctx).Save(c).Error
}
