package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"scholarship-portal-backend/internal/domain/actor"
	appDomain "scholarship-portal-backend/internal/domain/application"
)

// UserRole backs the RoleProvider collaborator. Account issuance lives in a
// separate service; this table is a read-only projection of it.
type UserRole struct {
	ID      uint64     `gorm:"primaryKey;column:id"`
	ActorID string     `gorm:"size:32;uniqueIndex:ux_user_roles_actor"`
	Role    actor.Role `gorm:"size:30"`
}

func (UserRole) TableName() string { return "user_roles" }

type RoleDirectory struct{ db *gorm.DB }

func NewRoleDirectory(db *gorm.DB) *RoleDirectory { return &RoleDirectory{db: db} }

func (r *RoleDirectory) RoleOf(ctx context.Context, actorID string) (actor.Role, error) {
	var out UserRole
	res := r.db.WithContext(ctx).Where("actor_id = ?", actorID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", actor.ErrForbidden
		}
		return "", res.Error
	}
	return out.Role, nil
}

// ApplicationDocument is a projection of the upload service's records; the
// workflow only reads kind/status/expiry.
type ApplicationDocument struct {
	ID            uint64     `gorm:"primaryKey;column:id"`
	ApplicationID string     `gorm:"size:30;index:idx_application_documents_app"`
	Kind          string     `gorm:"size:40"`
	Status        string     `gorm:"size:20"` // uploaded | verified | rejected
	ExpiresAt     *time.Time `gorm:"column:expires_at"`
}

func (ApplicationDocument) TableName() string { return "application_documents" }

// requiredDocuments lists the document kinds each scholarship type needs
// before submission is accepted.
var requiredDocuments = map[appDomain.ScholarshipType][]string{
	appDomain.TypeMerit:            {"marksheet", "bonafide"},
	appDomain.TypeNeed:             {"marksheet", "bonafide", "income_certificate"},
	appDomain.TypeMinority:         {"marksheet", "bonafide", "minority_certificate"},
	appDomain.TypeSCST:             {"marksheet", "bonafide", "caste_certificate"},
	appDomain.TypeOBC:              {"marksheet", "bonafide", "caste_certificate"},
	appDomain.TypeEWS:              {"marksheet", "bonafide", "income_certificate"},
	appDomain.TypeGovernmentScheme: {"marksheet", "bonafide", "aadhaar"},
}

type DocumentDirectory struct{ db *gorm.DB }

func NewDocumentDirectory(db *gorm.DB) *DocumentDirectory { return &DocumentDirectory{db: db} }

func (d *DocumentDirectory) HasVerifiedDocuments(ctx context.Context, applicationID string, st appDomain.ScholarshipType) (bool, error) {
	required := requiredDocuments[st]
	if len(required) == 0 {
		required = []string{"marksheet", "bonafide"}
	}
	var docs []ApplicationDocument
	res := d.db.WithContext(ctx).
		Where("application_id = ? AND status = ?", applicationID, "verified").
		Find(&docs)
	if res.Error != nil {
		return false, res.Error
	}
	now := time.Now().UTC()
	have := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if doc.ExpiresAt != nil && doc.ExpiresAt.Before(now) {
			continue
		}
		have[doc.Kind] = true
	}
	for _, kind := range required {
		if !have[kind] {
			return false, nil
		}
	}
	return true, nil
}
