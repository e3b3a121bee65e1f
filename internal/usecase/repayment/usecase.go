package repayment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/uow"
	"chama-backend/pkg/id"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	loans      loan.Repository
	repayments loan.RepaymentRepository
	uow        uow.UnitOfWork
}

func NewUsecase(loans loan.Repository, repayments loan.RepaymentRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, repayments: repayments, uow: tx}
}

// Record appends a pending repayment against a disbursed loan. Nothing moves
// on the loan ledger until the payment rail confirms it.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*RepaymentDTO, error) {
	if len(in.LoanID) != 32 || !in.Amount.IsPositive() || in.PaymentMethod == "" {
		return nil, ErrInvalidInput
	}

	var dto *RepaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Repayable() {
			return loan.ErrNotRepayable
		}
		rp := &loan.Repayment{
			RepaymentID:     id.NewID32(),
			LoanID:          l.ID,
			Amount:          in.Amount,
			PaymentMethod:   in.PaymentMethod,
			ReferenceNumber: in.ReferenceNumber,
			Status:          loan.RepaymentPending,
		}
		if rp.ReferenceNumber == "" {
			rp.ReferenceNumber = newReference()
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}
		dto = toDTO(rp, l.LoanID)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Confirm marks a repayment completed and reconciles the loan inside the same
// transaction: the outstanding balance is recomputed from the full set of
// completed repayments, never decremented in place.
func (u *Usecase) Confirm(ctx context.Context, repaymentID string) (*RepaymentDTO, error) {
	return u.finalize(ctx, repaymentID, loan.RepaymentCompleted)
}

// Fail marks a pending repayment as failed. The loan ledger is untouched.
func (u *Usecase) Fail(ctx context.Context, repaymentID string) (*RepaymentDTO, error) {
	return u.finalize(ctx, repaymentID, loan.RepaymentFailed)
}

func (u *Usecase) finalize(ctx context.Context, repaymentID string, next loan.RepaymentStatus) (*RepaymentDTO, error) {
	// Resolve the owning loan first; the lock is taken on the loan row.
	rp, err := u.repayments.GetByRepaymentID(ctx, repaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrRepaymentNotFound
		}
		return nil, err
	}
	owner, err := u.loans.GetByID(ctx, rp.LoanID)
	if err != nil {
		return nil, err
	}

	var dto *RepaymentDTO
	err = u.uow.WithinLoanTx(ctx, owner.LoanID, func(r uow.Repos, l *loan.Loan) error {
		// Re-read under the lock; the pre-lock copy may be stale.
		cur, err := r.Repayments.GetByRepaymentID(ctx, repaymentID)
		if err != nil {
			return err
		}
		if cur.Status != loan.RepaymentPending {
			return loan.ErrRepaymentFinalized
		}
		now := time.Now().UTC()
		cur.Status = next
		if next == loan.RepaymentCompleted {
			cur.PaidAt = &now
		}
		if err := r.Repayments.Save(ctx, cur); err != nil {
			return err
		}
		if next == loan.RepaymentCompleted {
			if err := reconcile(ctx, r, l, now); err != nil {
				return err
			}
		}
		dto = toDTO(cur, l.LoanID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// reconcile recomputes the loan's outstanding balance from every completed
// repayment and applies the resulting status transitions.
func reconcile(ctx context.Context, r uow.Repos, l *loan.Loan, now time.Time) error {
	paid, err := r.Repayments.SumCompletedByLoanID(ctx, l.ID)
	if err != nil {
		return err
	}
	remaining := l.TotalAmount.Sub(paid)

	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		l.OutstandingBalance = decimal.Zero
		if l.Status != loan.StatusCompleted {
			if !l.Status.CanTransitionTo(loan.StatusCompleted) {
				return loan.ErrInvalidTransition
			}
			l.Status = loan.StatusCompleted
		}
		// completed_at is stamped once, never overwritten
		if l.CompletedAt == nil {
			l.CompletedAt = &now
		}
	default:
		l.OutstandingBalance = remaining
		if l.Status == loan.StatusDisbursed {
			// first confirmed payment puts the loan in repayment
			l.Status = loan.StatusActive
		}
	}
	return r.Loans.Save(ctx, l)
}
