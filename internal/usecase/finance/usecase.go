// Package finance owns the disbursement ledger: creating disbursement
// records against calculated applications, recording component payments, and
// keeping the audit trail consistent. Batch operations run each entity in its
// own transaction so one bad item never corrupts its neighbours.
package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"scholarship-portal-backend/internal/domain/actor"
	appdomain "scholarship-portal-backend/internal/domain/application"
	disbdomain "scholarship-portal-backend/internal/domain/disbursement"
	"scholarship-portal-backend/internal/domain/transaction"
	"scholarship-portal-backend/internal/domain/uow"
	"scholarship-portal-backend/internal/usecase/calculation"
	"scholarship-portal-backend/pkg/id"
)

type Usecase struct {
	uow      uow.UnitOfWork
	roles    actor.RoleProvider
	notifier actor.NotificationSink
	// AllowPhased permits more than one disbursement per application
	// (e.g. tuition this term, maintenance next term). Off by default so a
	// retried create cannot silently duplicate a payment.
	allowPhased bool
}

type Option func(*Usecase)

func WithPhasedDisbursements() Option {
	return func(u *Usecase) { u.allowPhased = true }
}

func NewUsecase(tx uow.UnitOfWork, roles actor.RoleProvider, notifier actor.NotificationSink, opts ...Option) *Usecase {
	u := &Usecase{uow: tx, roles: roles, notifier: notifier}
	for _, opt := range opts {
		opt(u)
	}
	return u
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

// Calculate runs the amount calculator over the application snapshot. When
// the application sits in department_approved the result is recorded and the
// status advances to finance_calculated in the same transaction; later
// statuses get a read-only recomputation.
func (u *Usecase) Calculate(ctx context.Context, in CalculateInput) (*CalculateDTO, error) {
	if err := u.requireCapability(ctx, in.ActorID, actor.CanCalculate); err != nil {
		return nil, err
	}

	var dto *CalculateDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appdomain.Application) error {
		base := a.AmountRequested
		if a.AmountApproved != nil {
			base = *a.AmountApproved
		}
		facts := calculation.StudentFacts{
			BaseAmount:    base,
			CGPA:          a.Academic.CGPA,
			CourseLevel:   a.Academic.CourseLevel,
			FamilyIncome:  a.Family.AnnualIncome,
			StateCategory: a.Family.Category,
			RuralUrban:    a.Family.RuralUrban,
		}
		result, err := calculation.Calculate(in.Strategy, facts, in.CustomFactors)
		if err != nil {
			return err
		}

		advanced := false
		if a.Status == appdomain.StatusDepartmentApproved {
			if err := a.Transition(appdomain.StatusFinanceCalculated); err != nil {
				return err
			}
			now := time.Now().UTC()
			a.FinanceCalculatedAt = &now
			a.StatusUpdatedAt = now
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}
			if err := r.Transactions.Append(ctx, &transaction.Entry{
				TransactionID: id.NewTransactionID(),
				ApplicationID: a.ApplicationID,
				Actor:         in.ActorID,
				Action:        "finance_calculate",
				Type:          transaction.TypeCredit,
				Category:      transaction.CategoryStatusChange,
				Amount:        result.Total,
				AmountBefore:  base,
				AmountAfter:   result.Total,
				Remarks:       fmt.Sprintf("calculated via %s strategy", in.Strategy),
			}); err != nil {
				return err
			}
			advanced = true
		} else if !statusReachedFinance(a.Status) {
			return fmt.Errorf("%w: %s is %s, not ready for finance calculation", appdomain.ErrInvalidTransition, a.ApplicationID, a.Status)
		}

		dto = &CalculateDTO{
			ApplicationID:   a.ApplicationID,
			Strategy:        string(result.Strategy),
			Total:           result.Total,
			Breakdown:       result.Breakdown,
			Recommendations: result.Recommendations,
			Advanced:        advanced,
			CalculatedAt:    time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dto.Advanced {
		u.notifier.Notify(ctx, in.ApplicationID, "application.finance_calculated")
	}
	return dto, nil
}

func statusReachedFinance(s appdomain.Status) bool {
	switch s {
	case appdomain.StatusFinanceCalculated, appdomain.StatusPaymentProcessing,
		appdomain.StatusPaymentFailed, appdomain.StatusDisbursed:
		return true
	}
	return false
}

// BulkCreate opens disbursement records for calculated applications. The
// batch reports per application; each application's write is its own
// transaction, so one failure never rolls back another's disbursement.
func (u *Usecase) BulkCreate(ctx context.Context, in BulkCreateInput) (*BatchDTO, error) {
	if err := u.requireCapability(ctx, in.ActorID, actor.CanDisburse); err != nil {
		return nil, err
	}

	results := make([]ItemResult, 0, len(in.ApplicationIDs))
	total := decimal.Zero
	for _, appID := range in.ApplicationIDs {
		res, amount := u.createOne(ctx, appID, in)
		results = append(results, res)
		total = total.Add(amount)
	}
	return &BatchDTO{
		Summary:     summarize(results),
		Results:     results,
		TotalAmount: total,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

func (u *Usecase) createOne(ctx context.Context, appID string, in BulkCreateInput) (ItemResult, decimal.Decimal) {
	var (
		disbID string
		amount = decimal.Zero
	)
	err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appdomain.Application) error {
		if a.Status != appdomain.StatusFinanceCalculated {
			return fmt.Errorf("%w: %s is %s, expected finance_calculated", appdomain.ErrInvalidTransition, appID, a.Status)
		}
		existing, err := r.Disbursements.GetByApplicationID(ctx, appID)
		if err != nil {
			return err
		}
		if len(existing) > 0 && !u.allowPhased {
			return disbdomain.ErrAlreadyDisbursed
		}

		sanctioned := a.AmountRequested
		if a.AmountApproved != nil {
			sanctioned = *a.AmountApproved
		}
		d := &disbdomain.Disbursement{
			DisbursementID:   id.NewDisbursementID(),
			ApplicationID:    appID,
			SanctionedAmount: sanctioned,
			DisbursedAmount:  sanctioned,
			DeductionAmount:  decimal.Zero,
			PaymentStatus:    disbdomain.PaymentPending,
			Method:           in.Method,
			Remarks:          in.Remarks,
		}
		if bank, ok := in.BankDetails[appID]; ok {
			d.BankAccountNumber = bank.AccountNumber
			d.BankIFSC = bank.IFSC
		}
		for _, c := range calculation.Breakdown(sanctioned) {
			d.Components = append(d.Components, disbdomain.PaymentComponent{
				ComponentType: disbdomain.ComponentType(c.Type),
				Amount:        c.Amount,
			})
		}
		if err := d.CheckAmounts(); err != nil {
			return fmt.Errorf("%w: %s", appdomain.ErrValidation, err)
		}
		if err := r.Disbursements.Create(ctx, d); err != nil {
			return err
		}

		if err := a.Transition(appdomain.StatusPaymentProcessing); err != nil {
			return err
		}
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		if err := r.Transactions.Append(ctx, &transaction.Entry{
			TransactionID:  id.NewTransactionID(),
			ApplicationID:  appID,
			DisbursementID: d.DisbursementID,
			Actor:          in.ActorID,
			Action:         "create_disbursement",
			Type:           transaction.TypeDebit,
			Category:       transaction.CategoryDisbursement,
			Amount:         sanctioned,
			AmountAfter:    sanctioned,
			Reference:      d.DisbursementID,
			Remarks:        in.Remarks,
		}); err != nil {
			return err
		}

		disbID, amount = d.DisbursementID, sanctioned
		return nil
	})
	switch {
	case err == nil:
		return ItemResult{ID: appID, Status: ItemSuccess, DisbursementID: disbID, Message: "disbursement created"}, amount
	case errors.Is(err, disbdomain.ErrAlreadyDisbursed):
		return ItemResult{ID: appID, Status: ItemSkipped, Message: "already has a disbursement record"}, decimal.Zero
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, appdomain.ErrNotFound):
		return ItemResult{ID: appID, Status: ItemError, Message: "application not found"}, decimal.Zero
	default:
		return ItemResult{ID: appID, Status: ItemError, Message: err.Error()}, decimal.Zero
	}
}

// UpdatePaymentStatus marks components paid across one or many disbursements.
// Every referenced component is validated before anything mutates, paying an
// already-paid component is a no-op, and exactly one audit entry is appended
// per disbursement actually touched.
func (u *Usecase) UpdatePaymentStatus(ctx context.Context, in PaymentStatusInput) (*BatchDTO, error) {
	if err := u.requireCapability(ctx, in.ActorID, actor.CanDisburse); err != nil {
		return nil, err
	}
	if len(in.ComponentUpdates) == 0 {
		return nil, fmt.Errorf("%w: at least one component update is required", appdomain.ErrValidation)
	}

	results := make([]ItemResult, 0, len(in.DisbursementIDs))
	total := decimal.Zero
	for _, disbID := range in.DisbursementIDs {
		res, paid := u.updateOne(ctx, disbID, in)
		results = append(results, res)
		total = total.Add(paid)
	}
	return &BatchDTO{
		Summary:     summarize(results),
		Results:     results,
		TotalAmount: total,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

func (u *Usecase) updateOne(ctx context.Context, disbID string, in PaymentStatusInput) (ItemResult, decimal.Decimal) {
	paid := decimal.Zero
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Disbursements.GetByDisbursementIDForUpdate(ctx, disbID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return disbdomain.ErrNotFound
			}
			return err
		}

		// validate every update before mutating anything
		targets := make([]*disbdomain.PaymentComponent, 0, len(in.ComponentUpdates))
		for i := range in.ComponentUpdates {
			upd := in.ComponentUpdates[i]
			c := findComponent(d, upd.ComponentType)
			if c == nil {
				return fmt.Errorf("%w: %s has no %s component", disbdomain.ErrUnknownComponent, disbID, upd.ComponentType)
			}
			if upd.Amount != nil && upd.Amount.GreaterThan(c.Amount) {
				return fmt.Errorf("%w: %s on %s: %s > %s", disbdomain.ErrOverpayment, upd.ComponentType, disbID, upd.Amount, c.Amount)
			}
			targets = append(targets, c)
		}

		now := time.Now().UTC()
		changed := false
		for _, c := range targets {
			if c.IsPaid {
				continue // repeat of an earlier update
			}
			c.IsPaid = true
			c.PaidAt = &now
			paid = paid.Add(c.Amount)
			changed = true
			if err := r.Disbursements.SaveComponent(ctx, c); err != nil {
				return err
			}
		}
		if !changed {
			return errNoop
		}

		d.RecomputePaymentStatus()
		d.AppendRemark(in.Remarks)
		if err := d.CheckAmounts(); err != nil {
			return fmt.Errorf("%w: %s", appdomain.ErrValidation, err)
		}
		if err := r.Disbursements.Save(ctx, d); err != nil {
			return err
		}

		return r.Transactions.Append(ctx, &transaction.Entry{
			TransactionID:  id.NewTransactionID(),
			ApplicationID:  d.ApplicationID,
			DisbursementID: d.DisbursementID,
			Actor:          in.ActorID,
			Action:         "update_payment_status",
			Type:           transaction.TypeDebit,
			Category:       transaction.CategoryDisbursement,
			Amount:         paid,
			AmountAfter:    paid,
			Reference:      d.DisbursementID,
			Remarks:        in.Remarks,
		})
	})
	switch {
	case err == nil:
		return ItemResult{ID: disbID, Status: ItemSuccess, Message: "payment status updated"}, paid
	case errors.Is(err, errNoop):
		return ItemResult{ID: disbID, Status: ItemNoop, Message: "components already paid"}, decimal.Zero
	case errors.Is(err, disbdomain.ErrNotFound):
		return ItemResult{ID: disbID, Status: ItemError, Message: "disbursement not found"}, decimal.Zero
	default:
		return ItemResult{ID: disbID, Status: ItemError, Message: err.Error()}, decimal.Zero
	}
}

// errNoop aborts the tx (nothing was written) while signalling a clean repeat.
var errNoop = errors.New("no component changed")

func findComponent(d *disbdomain.Disbursement, t disbdomain.ComponentType) *disbdomain.PaymentComponent {
	for i := range d.Components {
		if d.Components[i].ComponentType == t {
			return &d.Components[i]
		}
	}
	return nil
}
