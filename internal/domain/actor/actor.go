package actor

import (
	"context"
	"errors"

	"scholarship-portal-backend/internal/domain/application"
)

var ErrForbidden = errors.New("actor lacks the required capability")

type Role string

const (
	RoleStudent         Role = "student"
	RoleInstituteAdmin  Role = "institute_admin"
	RoleDepartmentAdmin Role = "department_admin"
	RoleFinanceAdmin    Role = "finance_admin"
)

type Capability string

const (
	CanSubmit           Capability = "can_submit"
	CanReviewInstitute  Capability = "can_review_institute"
	CanReviewDepartment Capability = "can_review_department"
	CanCalculate        Capability = "can_calculate"
	CanDisburse         Capability = "can_disburse"
)

// capabilities replaces the scattered per-view role checks of the old portal
// with one table consulted before any state machine call.
var capabilities = map[Role][]Capability{
	RoleStudent:         {CanSubmit},
	RoleInstituteAdmin:  {CanReviewInstitute},
	RoleDepartmentAdmin: {CanReviewDepartment},
	RoleFinanceAdmin:    {CanCalculate, CanDisburse},
}

func (r Role) Can(c Capability) bool {
	for _, got := range capabilities[r] {
		if got == c {
			return true
		}
	}
	return false
}

// RoleProvider is the identity collaborator. Session issuance lives outside
// this service; we only ask what role an actor id maps to.
type RoleProvider interface {
	RoleOf(ctx context.Context, actorID string) (Role, error)
}

// DocumentStore answers whether an application has every required, verified,
// non-expired document for a scholarship type. Storage itself is external.
type DocumentStore interface {
	HasVerifiedDocuments(ctx context.Context, applicationID string, st application.ScholarshipType) (bool, error)
}

// NotificationSink receives fire-and-forget workflow events. Delivery
// guarantees are the sink's problem, not ours.
type NotificationSink interface {
	Notify(ctx context.Context, applicationID, event string)
}
