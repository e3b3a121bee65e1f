package loan

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

// defaultAnnualRate applies when an application omits interest_rate.
var defaultAnnualRate = decimal.RequireFromString("10.00")

type Usecase struct {
	repo loan.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r loan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if len(in.GroupID) != 32 || len(in.BorrowerID) != 32 {
		return nil, ErrInvalidInput
	}
	if !in.PrincipalAmount.IsPositive() {
		return nil, ErrInvalidInput
	}
	if in.DurationMonths <= 0 {
		return nil, ErrInvalidInput
	}
	rate := defaultAnnualRate
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return nil, ErrInvalidInput
		}
		rate = *in.InterestRate
	}

	l := &loan.Loan{
		LoanID:          id.NewID32(),
		GroupID:         in.GroupID,
		BorrowerID:      in.BorrowerID,
		PrincipalAmount: in.PrincipalAmount,
		InterestRate:    rate,
		DurationMonths:  in.DurationMonths,
		Purpose:         in.Purpose,
		Status:          loan.StatusPending,
	}
	// terms are fixed here and never recomputed
	l.SetDerivedAmounts()

	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// Disburse marks an approved loan as paid out. The transfer itself happens on
// an external rail; this only moves the ledger state.
func (u *Usecase) Disburse(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.CanTransitionTo(loan.StatusDisbursed) {
			return loan.ErrInvalidTransition
		}
		now := time.Now().UTC()
		l.Status = loan.StatusDisbursed
		l.DisbursedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
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

// MarkDefaulted moves an active loan to defaulted.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.CanTransitionTo(loan.StatusDefaulted) {
			return loan.ErrInvalidTransition
		}
		l.Status = loan.StatusDefaulted
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
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
