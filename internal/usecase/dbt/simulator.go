// Package dbt simulates Direct Benefit Transfer against disbursement
// records. This is a stochastic stand-in for a banking integration: outcomes
// are drawn from a configurable success probability and no real settlement
// ever occurs. Each invocation produces immutable TransferAttempt rows; a
// failed transfer is retried by a new, explicit call, never implicitly.
package dbt

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"scholarship-portal-backend/internal/domain/actor"
	appdomain "scholarship-portal-backend/internal/domain/application"
	disbdomain "scholarship-portal-backend/internal/domain/disbursement"
	"scholarship-portal-backend/internal/domain/transaction"
	"scholarship-portal-backend/internal/domain/transfer"
	"scholarship-portal-backend/internal/domain/uow"
	"scholarship-portal-backend/pkg/id"
)

const DefaultSuccessRate = 0.95

// failureReasons are the canned outcomes a failed simulated transfer reports.
var failureReasons = []string{
	"invalid bank account number",
	"bank server temporarily unavailable",
	"insufficient funds in source account",
	"account frozen by bank",
	"IFSC code mismatch",
}

type Simulator struct {
	uow      uow.UnitOfWork
	roles    actor.RoleProvider
	notifier actor.NotificationSink

	successRate float64
	mu          sync.Mutex
	rng         *rand.Rand
}

type Option func(*Simulator)

// WithSuccessRate overrides the default 0.95 success probability.
func WithSuccessRate(p float64) Option {
	return func(s *Simulator) { s.successRate = p }
}

// WithRand injects a seeded source for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

func NewSimulator(tx uow.UnitOfWork, roles actor.RoleProvider, notifier actor.NotificationSink, opts ...Option) *Simulator {
	s := &Simulator{
		uow:         tx,
		roles:       roles,
		notifier:    notifier,
		successRate: DefaultSuccessRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) draw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.successRate
}

func (s *Simulator) pickReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return failureReasons[s.rng.Intn(len(failureReasons))]
}

type Input struct {
	DisbursementIDs []string
	Remarks         string
	ActorID         string
}

type ItemOutcome struct {
	DisbursementID string          `json:"disbursement_id"`
	Success        bool            `json:"success"`
	ReferenceNo    string          `json:"reference_no,omitempty"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	BankAccount    string          `json:"bank_account,omitempty"`
	Message        string          `json:"message,omitempty"`
}

type BatchDTO struct {
	BatchID     string          `json:"transfer_batch_id"`
	Outcomes    []ItemOutcome   `json:"outcomes"`
	Successful  int             `json:"successful"`
	Failed      int             `json:"failed"`
	Errors      int             `json:"errors"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// SimulateTransfer validates bank details up front (no attempt row is written
// for an invalid disbursement), then draws an independent outcome per
// disbursement. All outcomes of one call share one batch id.
func (s *Simulator) SimulateTransfer(ctx context.Context, in Input) (*BatchDTO, error) {
	role, err := s.roles.RoleOf(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}
	if !role.Can(actor.CanDisburse) {
		return nil, fmt.Errorf("%w: %s needs %s", actor.ErrForbidden, in.ActorID, actor.CanDisburse)
	}
	if len(in.DisbursementIDs) == 0 {
		return nil, fmt.Errorf("%w: no disbursement ids given", appdomain.ErrValidation)
	}

	batchID := id.NewBatchID()
	dto := &BatchDTO{BatchID: batchID, TotalAmount: decimal.Zero}

	for _, disbID := range in.DisbursementIDs {
		out := s.transferOne(ctx, disbID, batchID, in)
		dto.Outcomes = append(dto.Outcomes, out)
		switch {
		case out.Success:
			dto.Successful++
			dto.TotalAmount = dto.TotalAmount.Add(out.Amount)
		case out.FailureReason != "":
			dto.Failed++
		default:
			dto.Errors++
		}
	}
	dto.ProcessedAt = time.Now().UTC()
	return dto, nil
}

func (s *Simulator) transferOne(ctx context.Context, disbID, batchID string, in Input) ItemOutcome {
	out := ItemOutcome{DisbursementID: disbID, Amount: decimal.Zero}
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Disbursements.GetByDisbursementIDForUpdate(ctx, disbID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return disbdomain.ErrNotFound
			}
			return err
		}
		if d.PaymentStatus == disbdomain.PaymentDisbursed {
			// retried batch: already settled, nothing to redo
			out.Success = true
			out.ReferenceNo = d.TransactionReference
			out.Amount = d.DisbursedAmount
			out.BankAccount = d.MaskedAccount()
			out.Message = "already disbursed"
			return nil
		}
		if d.PaymentStatus != disbdomain.PaymentCompleted && d.PaymentStatus != disbdomain.PaymentFailed {
			return fmt.Errorf("%w: %s payment status is %s, expected completed", appdomain.ErrInvalidTransition, disbID, d.PaymentStatus)
		}
		if err := d.ValidateBankDetails(); err != nil {
			return fmt.Errorf("%w: %s", err, disbID)
		}

		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, d.ApplicationID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		out.Amount = d.DisbursedAmount
		out.BankAccount = d.MaskedAccount()

		if s.draw() {
			ref := id.NewTransferReference()
			d.PaymentStatus = disbdomain.PaymentDisbursed
			d.TransactionReference = ref
			d.DisbursedBy = in.ActorID
			d.DisbursedAt = &now
			d.AppendRemark("DBT transfer - batch: " + batchID)
			if err := r.Disbursements.Save(ctx, d); err != nil {
				return err
			}

			if a.Status == appdomain.StatusPaymentFailed {
				// retry path: re-enter processing before settling
				if err := a.Transition(appdomain.StatusPaymentProcessing); err != nil {
					return err
				}
			}
			if err := a.Transition(appdomain.StatusDisbursed); err != nil {
				return err
			}
			a.DisbursedAt = &now
			a.StatusUpdatedAt = now
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}

			if err := r.Transfers.Create(ctx, &transfer.Attempt{
				BatchID:        batchID,
				DisbursementID: disbID,
				Amount:         d.DisbursedAmount,
				Success:        true,
				ReferenceNo:    ref,
			}); err != nil {
				return err
			}
			if err := r.Transactions.Append(ctx, &transaction.Entry{
				TransactionID:  id.NewTransactionID(),
				ApplicationID:  d.ApplicationID,
				DisbursementID: disbID,
				Actor:          in.ActorID,
				Action:         "dbt_transfer",
				Type:           transaction.TypeDebit,
				Category:       transaction.CategoryDBTTransfer,
				Amount:         d.DisbursedAmount,
				AmountAfter:    d.DisbursedAmount,
				Reference:      ref,
				Remarks:        in.Remarks,
			}); err != nil {
				return err
			}
			out.Success = true
			out.ReferenceNo = ref
			return nil
		}

		reason := s.pickReason()
		d.PaymentStatus = disbdomain.PaymentFailed
		d.AppendRemark("DBT transfer failed: " + reason)
		if err := r.Disbursements.Save(ctx, d); err != nil {
			return err
		}
		if a.Status == appdomain.StatusPaymentProcessing {
			if err := a.Transition(appdomain.StatusPaymentFailed); err != nil {
				return err
			}
			a.StatusUpdatedAt = now
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}
		}
		if err := r.Transfers.Create(ctx, &transfer.Attempt{
			BatchID:        batchID,
			DisbursementID: disbID,
			Amount:         d.DisbursedAmount,
			Success:        false,
			FailureReason:  reason,
		}); err != nil {
			return err
		}
		out.FailureReason = reason
		return nil
	})
	if err != nil {
		out.Message = err.Error()
		return out
	}
	if out.Success && out.Message == "" {
		s.notifier.Notify(ctx, disbID, "disbursement.transferred")
	}
	return out
}
