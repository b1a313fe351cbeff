package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"scholarship-portal-backend/internal/domain/actor"
	domain "scholarship-portal-backend/internal/domain/application"
	"scholarship-portal-backend/internal/domain/transaction"
	"scholarship-portal-backend/internal/testutil/actormock"
	"scholarship-portal-backend/internal/testutil/applicationmock"
	"scholarship-portal-backend/internal/testutil/uowmock"
)

const (
	studentActor   = "stu00000000000000000000000000001"
	instituteActor = "inst0000000000000000000000000001"
	deptActor      = "dept0000000000000000000000000001"
)

var testRoles = actormock.Roles{
	studentActor:   actor.RoleStudent,
	instituteActor: actor.RoleInstituteAdmin,
	deptActor:      actor.RoleDepartmentAdmin,
}

// newTestUsecase wires the usecase against the in-memory store so every
// collaborator can be inspected after the call.
func newTestUsecase(docs *actormock.Docs, apps ...*domain.Application) (*Usecase, *uowmock.Store, *actormock.Sink) {
	store, m := uowmock.NewStore(apps...)
	repo := &applicationmock.Repo{
		CreateFn: func(_ context.Context, a *domain.Application) error {
			store.Applications[a.ApplicationID] = a
			return nil
		},
		GetByApplicationIDFn: func(_ context.Context, id string) (*domain.Application, error) {
			a, ok := store.Applications[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return a, nil
		},
	}
	if docs == nil {
		docs = &actormock.Docs{}
	}
	sink := &actormock.Sink{}
	return NewUsecase(repo, store.Transactions, m, testRoles, docs, sink), store, sink
}

func draftApplication(appID string) *domain.Application {
	return &domain.Application{
		ApplicationID:    appID,
		StudentID:        strings.Repeat("a", 32),
		ScholarshipType:  domain.TypeMerit,
		Reason:           "tuition support needed for final year project work",
		AmountRequested:  decimal.NewFromInt(40000),
		EligibilityScore: 80,
		Status:           domain.StatusDraft,
		Family:           domain.FamilySnapshot{AnnualIncome: decimal.NewFromInt(300000)},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{
			name: "happy path",
			in: CreateInput{
				StudentID:        strings.Repeat("a", 32),
				ScholarshipType:  domain.TypeMerit,
				AmountRequested:  decimal.NewFromInt(40000),
				EligibilityScore: 75,
			},
		},
		{
			name:    "student id wrong length",
			in:      CreateInput{StudentID: "short", AmountRequested: decimal.NewFromInt(1)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "zero amount",
			in:      CreateInput{StudentID: strings.Repeat("a", 32)},
			wantErr: domain.ErrValidation,
		},
		{
			name: "score above 100",
			in: CreateInput{
				StudentID:        strings.Repeat("a", 32),
				AmountRequested:  decimal.NewFromInt(1),
				EligibilityScore: 101,
			},
			wantErr: domain.ErrValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store, _ := newTestUsecase(nil)
			got, err := uc.Create(ctx, tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if got.Status != string(domain.StatusDraft) {
				t.Fatalf("status: want draft, got %s", got.Status)
			}
			if !strings.HasPrefix(got.ApplicationID, "APP") {
				t.Fatalf("application id: want APP prefix, got %s", got.ApplicationID)
			}
			if _, ok := store.Applications[got.ApplicationID]; !ok {
				t.Fatalf("application not persisted")
			}
		})
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		a := draftApplication("APP-1")
		uc, store, sink := newTestUsecase(nil, a)

		got, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-1", ActorID: studentActor})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if got.Status != string(domain.StatusSubmitted) {
			t.Fatalf("status: want submitted, got %s", got.Status)
		}
		if got.SubmittedAt == nil {
			t.Fatalf("SubmittedAt not set")
		}
		// score 80 → high band
		if got.Priority != string(domain.PriorityHigh) {
			t.Fatalf("priority: want high, got %s", got.Priority)
		}
		if n := len(store.Transactions.Appended); n != 1 {
			t.Fatalf("transactions: want 1, got %d", n)
		}
		if e := store.Transactions.Appended[0]; e.Action != "submit" {
			t.Fatalf("transaction action: want submit, got %s", e.Action)
		}
		if len(sink.Events) != 1 || sink.Events[0] != "application.submitted APP-1" {
			t.Fatalf("notifications: got %v", sink.Events)
		}
	})

	t.Run("retry is a no-op", func(t *testing.T) {
		a := draftApplication("APP-1")
		now := time.Now().UTC()
		a.Status = domain.StatusSubmitted
		a.SubmittedAt = &now
		uc, store, _ := newTestUsecase(nil, a)

		got, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-1", ActorID: studentActor})
		if err != nil {
			t.Fatalf("Submit retry: %v", err)
		}
		if got.Status != string(domain.StatusSubmitted) {
			t.Fatalf("status changed on retry: %s", got.Status)
		}
		if n := len(store.Transactions.Appended); n != 0 {
			t.Fatalf("retry appended %d transactions", n)
		}
	})

	t.Run("reason too short", func(t *testing.T) {
		a := draftApplication("APP-1")
		a.Reason = "help"
		uc, _, _ := newTestUsecase(nil, a)
		if _, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-1", ActorID: studentActor}); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("documents missing", func(t *testing.T) {
		a := draftApplication("APP-1")
		docs := &actormock.Docs{Missing: map[string]bool{"APP-1": true}}
		uc, _, _ := newTestUsecase(docs, a)
		if _, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-1", ActorID: studentActor}); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("terminal application", func(t *testing.T) {
		a := draftApplication("APP-1")
		a.Status = domain.StatusInstituteRejected
		uc, _, _ := newTestUsecase(nil, a)
		if _, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-1", ActorID: studentActor}); !errors.Is(err, domain.ErrTerminalState) {
			t.Fatalf("want ErrTerminalState, got %v", err)
		}
	})

	t.Run("wrong role", func(t *testing.T) {
		a := draftApplication("APP-1")
		uc, _, _ := newTestUsecase(nil, a)
		if _, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-1", ActorID: instituteActor}); !errors.Is(err, actor.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown actor", func(t *testing.T) {
		a := draftApplication("APP-1")
		uc, _, _ := newTestUsecase(nil, a)
		if _, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-1", ActorID: "nobody"}); !errors.Is(err, actor.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, _, _ := newTestUsecase(nil)
		if _, err := uc.Submit(ctx, SubmitInput{ApplicationID: "APP-X", ActorID: studentActor}); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func submittedApplication(appID string) *domain.Application {
	a := draftApplication(appID)
	now := time.Now().UTC().Add(-48 * time.Hour)
	a.Status = domain.StatusSubmitted
	a.SubmittedAt = &now
	return a
}

func TestReview_Institute(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		a := submittedApplication("APP-1")
		uc, store, sink := newTestUsecase(nil, a)

		got, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: instituteActor,
			Level: domain.LevelInstitute, Decision: domain.DecisionApprove,
			Remarks: "eligible",
		})
		if err != nil {
			t.Fatalf("Review: %v", err)
		}
		if got.Status != string(domain.StatusInstituteApproved) {
			t.Fatalf("status: want institute_approved, got %s", got.Status)
		}
		if a.InstituteReviewedAt == nil || a.InstituteDecision != domain.DecisionApprove {
			t.Fatalf("decision not recorded: %+v", a)
		}
		if n := len(store.Transactions.Appended); n != 1 {
			t.Fatalf("transactions: want 1, got %d", n)
		}
		if e := store.Transactions.Appended[0]; e.Action != "institute_approve" {
			t.Fatalf("transaction action: got %s", e.Action)
		}
		if len(sink.Events) != 1 {
			t.Fatalf("notifications: got %v", sink.Events)
		}
	})

	t.Run("reject requires remarks", func(t *testing.T) {
		uc, _, _ := newTestUsecase(nil, submittedApplication("APP-1"))
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: instituteActor,
			Level: domain.LevelInstitute, Decision: domain.DecisionReject,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("reject is terminal", func(t *testing.T) {
		a := submittedApplication("APP-1")
		uc, _, _ := newTestUsecase(nil, a)
		if _, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: instituteActor,
			Level: domain.LevelInstitute, Decision: domain.DecisionReject,
			Remarks: "incomplete records",
		}); err != nil {
			t.Fatalf("Review: %v", err)
		}
		if a.Status != domain.StatusInstituteRejected {
			t.Fatalf("status: got %s", a.Status)
		}
		// nothing may follow a rejection
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: deptActor,
			Level: domain.LevelDepartment, Decision: domain.DecisionApprove,
			ApprovedAmount: amt("10000"),
		})
		if !errors.Is(err, domain.ErrTerminalState) {
			t.Fatalf("want ErrTerminalState, got %v", err)
		}
	})

	t.Run("repeat decision is a no-op", func(t *testing.T) {
		a := submittedApplication("APP-1")
		uc, store, sink := newTestUsecase(nil, a)
		in := ReviewInput{
			ApplicationID: "APP-1", ActorID: instituteActor,
			Level: domain.LevelInstitute, Decision: domain.DecisionApprove,
		}
		if _, err := uc.Review(ctx, in); err != nil {
			t.Fatalf("first review: %v", err)
		}
		got, err := uc.Review(ctx, in)
		if err != nil {
			t.Fatalf("repeat review: %v", err)
		}
		if got.Status != string(domain.StatusInstituteApproved) {
			t.Fatalf("status: got %s", got.Status)
		}
		if n := len(store.Transactions.Appended); n != 1 {
			t.Fatalf("repeat appended a transaction: %d total", n)
		}
		if n := len(sink.Events); n != 1 {
			t.Fatalf("repeat re-notified: %v", sink.Events)
		}
	})

	t.Run("conflicting decision fails", func(t *testing.T) {
		a := submittedApplication("APP-1")
		uc, _, _ := newTestUsecase(nil, a)
		if _, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: instituteActor,
			Level: domain.LevelInstitute, Decision: domain.DecisionApprove,
		}); err != nil {
			t.Fatalf("first review: %v", err)
		}
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: instituteActor,
			Level: domain.LevelInstitute, Decision: domain.DecisionReject,
			Remarks: "changed my mind",
		})
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("want ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("wrong level capability", func(t *testing.T) {
		uc, _, _ := newTestUsecase(nil, submittedApplication("APP-1"))
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: deptActor,
			Level: domain.LevelInstitute, Decision: domain.DecisionApprove,
		})
		if !errors.Is(err, actor.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
	})
}

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestReview_Department(t *testing.T) {
	ctx := context.Background()

	instituteApproved := func(appID string) *domain.Application {
		a := submittedApplication(appID)
		now := time.Now().UTC().Add(-24 * time.Hour)
		a.Status = domain.StatusInstituteApproved
		a.InstituteDecision = domain.DecisionApprove
		a.InstituteReviewedAt = &now
		return a
	}

	t.Run("approve records amount", func(t *testing.T) {
		a := instituteApproved("APP-1")
		uc, _, _ := newTestUsecase(nil, a)
		got, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: deptActor,
			Level: domain.LevelDepartment, Decision: domain.DecisionApprove,
			ApprovedAmount: amt("45000"), // may exceed the requested amount
		})
		if err != nil {
			t.Fatalf("Review: %v", err)
		}
		if got.Status != string(domain.StatusDepartmentApproved) {
			t.Fatalf("status: got %s", got.Status)
		}
		if got.AmountApproved == nil || !got.AmountApproved.Equal(decimal.NewFromInt(45000)) {
			t.Fatalf("approved amount: got %v", got.AmountApproved)
		}
	})

	t.Run("approve requires amount", func(t *testing.T) {
		uc, _, _ := newTestUsecase(nil, instituteApproved("APP-1"))
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: deptActor,
			Level: domain.LevelDepartment, Decision: domain.DecisionApprove,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("cannot skip institute review", func(t *testing.T) {
		uc, _, _ := newTestUsecase(nil, submittedApplication("APP-1"))
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: deptActor,
			Level: domain.LevelDepartment, Decision: domain.DecisionApprove,
			ApprovedAmount: amt("1000"),
		})
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("want ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		uc, _, _ := newTestUsecase(nil)
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: deptActor,
			Level: domain.ReviewLevel("campus"), Decision: domain.DecisionApprove,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		uc, _, _ := newTestUsecase(nil)
		_, err := uc.Review(ctx, ReviewInput{
			ApplicationID: "APP-1", ActorID: deptActor,
			Level: domain.LevelDepartment, Decision: domain.Decision("defer"),
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})
}

func TestTimeline(t *testing.T) {
	ctx := context.Background()

	a := submittedApplication("APP-1")
	reviewed := a.SubmittedAt.Add(72 * time.Hour)
	a.DepartmentReviewedAt = &reviewed
	uc, store, _ := newTestUsecase(nil, a)

	if err := store.Transactions.Append(ctx, &transaction.Entry{
		TransactionID: "TXN-1",
		ApplicationID: "APP-1",
		Action:        "submit",
	}); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	got, err := uc.Timeline(ctx, "APP-1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if got.ApplicationID != "APP-1" {
		t.Fatalf("application id: got %s", got.ApplicationID)
	}
	if got.ProcessingDays == nil || *got.ProcessingDays != 3 {
		t.Fatalf("processing days: got %v", got.ProcessingDays)
	}
	if len(got.Entries) != 1 || got.Entries[0].Action != "submit" {
		t.Fatalf("entries: got %+v", got.Entries)
	}
}
