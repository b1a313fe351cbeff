package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"scholarship-portal-backend/internal/domain/actor"
	domain "scholarship-portal-backend/internal/domain/application"
	"scholarship-portal-backend/internal/domain/transaction"
	"scholarship-portal-backend/internal/domain/uow"
	"scholarship-portal-backend/pkg/id"
)

const minReasonLength = 20

type Usecase struct {
	repo     domain.Repository
	txns     transaction.Repository
	uow      uow.UnitOfWork
	roles    actor.RoleProvider
	docs     actor.DocumentStore
	notifier actor.NotificationSink
}

func NewUsecase(repo domain.Repository, txns transaction.Repository, tx uow.UnitOfWork, roles actor.RoleProvider, docs actor.DocumentStore, notifier actor.NotificationSink) *Usecase {
	return &Usecase{repo: repo, txns: txns, uow: tx, roles: roles, docs: docs, notifier: notifier}
}

func (u *Usecase) requireCapability(ctx context.Context, actorID string, c actor.Capability) error {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return err
	}
	if !role.Can(c) {
		return fmt.Errorf("%w: %s needs %s", actor.ErrForbidden, actorID, c)
	}
	return nil
}

// Create opens a draft application. No audit entry yet: nothing
// money-affecting happens until submission.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	if in.StudentID == "" || len(in.StudentID) != 32 {
		return nil, fmt.Errorf("%w: student id must be 32-char hex", domain.ErrValidation)
	}
	if !in.AmountRequested.IsPositive() {
		return nil, fmt.Errorf("%w: requested amount must be positive", domain.ErrValidation)
	}
	if in.EligibilityScore < 0 || in.EligibilityScore > 100 {
		return nil, fmt.Errorf("%w: eligibility score must be within [0, 100]", domain.ErrValidation)
	}

	a := &domain.Application{
		ApplicationID:    id.NewApplicationID(),
		StudentID:        in.StudentID,
		ScholarshipType:  in.ScholarshipType,
		Reason:           in.Reason,
		AmountRequested:  in.AmountRequested,
		EligibilityScore: in.EligibilityScore,
		Academic:         in.Academic,
		Family:           in.Family,
		Status:           domain.StatusDraft,
		Priority:         domain.PriorityMedium,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

// Submit moves a draft into the review pipeline. A retried submit on an
// already-submitted application returns the current record unchanged.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if err := u.requireCapability(ctx, in.ActorID, actor.CanSubmit); err != nil {
		return nil, err
	}

	var dto *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		if a.SubmittedAt != nil {
			// retry after timeout: no state change, no duplicate audit entry
			dto = toDTO(a)
			return nil
		}
		if domain.IsTerminal(a.Status) {
			return fmt.Errorf("%w: %s is %s", domain.ErrTerminalState, a.ApplicationID, a.Status)
		}
		if len(a.Reason) < minReasonLength {
			return fmt.Errorf("%w: justification must be at least %d characters", domain.ErrValidation, minReasonLength)
		}
		ok, err := u.docs.HasVerifiedDocuments(ctx, a.ApplicationID, a.ScholarshipType)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: required documents missing or unverified for %s", domain.ErrValidation, a.ScholarshipType)
		}

		if err := a.Transition(domain.StatusSubmitted); err != nil {
			return err
		}
		now := time.Now().UTC()
		a.SubmittedAt = &now
		a.Priority = domain.DerivePriority(a.EligibilityScore, a.Family.AnnualIncome)
		a.StatusUpdatedAt = now
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		if err := r.Transactions.Append(ctx, &transaction.Entry{
			TransactionID: id.NewTransactionID(),
			ApplicationID: a.ApplicationID,
			Actor:         in.ActorID,
			Action:        "submit",
			Type:          transaction.TypeCredit,
			Category:      transaction.CategoryStatusChange,
			Amount:        a.AmountRequested,
			AmountAfter:   a.AmountRequested,
			Remarks:       "application submitted",
		}); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, in.ApplicationID, "application.submitted")
	return dto, nil
}

// Review applies an institute or department decision. Calling it again with
// the decision already recorded is a no-op returning the stored outcome;
// conflicting calls on a decided or terminal application fail loudly.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ApplicationDTO, error) {
	needed := actor.CanReviewInstitute
	if in.Level == domain.LevelDepartment {
		needed = actor.CanReviewDepartment
	} else if in.Level != domain.LevelInstitute {
		return nil, fmt.Errorf("%w: unknown review level %q", domain.ErrValidation, in.Level)
	}
	if err := u.requireCapability(ctx, in.ActorID, needed); err != nil {
		return nil, err
	}
	if in.Decision != domain.DecisionApprove && in.Decision != domain.DecisionReject {
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, in.Decision)
	}
	if in.Decision == domain.DecisionReject && in.Remarks == "" {
		return nil, fmt.Errorf("%w: rejection requires remarks", domain.ErrValidation)
	}
	if in.Level == domain.LevelDepartment && in.Decision == domain.DecisionApprove {
		if in.ApprovedAmount == nil || in.ApprovedAmount.IsNegative() {
			return nil, fmt.Errorf("%w: department approval requires a non-negative approved amount", domain.ErrValidation)
		}
	}

	var (
		dto      *ApplicationDTO
		repeated bool
	)
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		if a.DecidedAt(in.Level) {
			if a.RecordedDecision(in.Level) == in.Decision {
				dto, repeated = toDTO(a), true
				return nil
			}
			if domain.IsTerminal(a.Status) {
				return fmt.Errorf("%w: %s already decided as %s", domain.ErrTerminalState, a.ApplicationID, a.Status)
			}
			return fmt.Errorf("%w: %s level already decided %s", domain.ErrInvalidTransition, in.Level, a.RecordedDecision(in.Level))
		}

		target := targetStatus(in.Level, in.Decision)
		if err := a.Transition(target); err != nil {
			return err
		}

		now := time.Now().UTC()
		before := decimal.Zero
		if a.AmountApproved != nil {
			before = *a.AmountApproved
		}
		switch in.Level {
		case domain.LevelInstitute:
			a.InstituteDecision = in.Decision
			a.InstituteRemarks = in.Remarks
			a.InstituteReviewedAt = &now
		case domain.LevelDepartment:
			a.DepartmentDecision = in.Decision
			a.DepartmentRemarks = in.Remarks
			a.DepartmentReviewedAt = &now
			if in.Decision == domain.DecisionApprove {
				a.AmountApproved = in.ApprovedAmount
			}
		}
		a.StatusUpdatedAt = now
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		after := decimal.Zero
		if a.AmountApproved != nil {
			after = *a.AmountApproved
		}
		if err := r.Transactions.Append(ctx, &transaction.Entry{
			TransactionID: id.NewTransactionID(),
			ApplicationID: a.ApplicationID,
			Actor:         in.ActorID,
			Action:        fmt.Sprintf("%s_%s", in.Level, in.Decision),
			Type:          transaction.TypeCredit,
			Category:      transaction.CategoryStatusChange,
			Amount:        after,
			AmountBefore:  before,
			AmountAfter:   after,
			Remarks:       in.Remarks,
		}); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !repeated {
		u.notifier.Notify(ctx, in.ApplicationID, fmt.Sprintf("application.%s_%s", in.Level, in.Decision))
	}
	return dto, nil
}

func targetStatus(level domain.ReviewLevel, d domain.Decision) domain.Status {
	if level == domain.LevelInstitute {
		if d == domain.DecisionApprove {
			return domain.StatusInstituteApproved
		}
		return domain.StatusInstituteRejected
	}
	if d == domain.DecisionApprove {
		return domain.StatusDepartmentApproved
	}
	return domain.StatusDepartmentRejected
}

// Timeline rebuilds the audit view from the append-only transaction log.
func (u *Usecase) Timeline(ctx context.Context, applicationID string) (*TimelineDTO, error) {
	a, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	entries, err := u.txns.ListByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return &TimelineDTO{
		ApplicationID:  a.ApplicationID,
		Status:         string(a.Status),
		ProcessingDays: a.ProcessingDays(),
		Entries:        entries,
	}, nil
}
