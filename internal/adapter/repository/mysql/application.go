package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appDomain "scholarship-portal-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no FOR UPDATE; its writes serialize anyway
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out appDomain.Application
	res := q.Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

// Save persists all fields guarded by the revision counter; a concurrent
// writer that got there first surfaces as ErrStaleEntity.
func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	prev := a.Revision
	a.Revision++
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND revision = ?", a.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		a.Revision = prev
		return appDomain.ErrStaleEntity
	}
	return nil
}
