package loanmock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "chama-backend/internal/domain/loan"
)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the function fields a test needs.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

// RepaymentRepo is a function-backed mock for domain.RepaymentRepository.
type RepaymentRepo struct {
	CreateFn               func(ctx context.Context, r *domain.Repayment) error
	GetByRepaymentIDFn     func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	GetByReferenceNumberFn func(ctx context.Context, ref string) (*domain.Repayment, error)
	ListByLoanIDFn         func(ctx context.Context, loanID uint64) ([]domain.Repayment, error)
	SumCompletedByLoanIDFn func(ctx context.Context, loanID uint64) (decimal.Decimal, error)
	SaveFn                 func(ctx context.Context, r *domain.Repayment) error
}

var _ domain.RepaymentRepository = (*RepaymentRepo)(nil)

func (m *RepaymentRepo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RepaymentRepo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, errUnimplemented
}

func (m *RepaymentRepo) GetByReferenceNumber(ctx context.Context, ref string) (*domain.Repayment, error) {
	if m.GetByReferenceNumberFn != nil {
		return m.GetByReferenceNumberFn(ctx, ref)
	}
	return nil, errUnimplemented
}

func (m *RepaymentRepo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *RepaymentRepo) SumCompletedByLoanID(ctx context.Context, loanID uint64) (decimal.Decimal, error) {
	if m.SumCompletedByLoanIDFn != nil {
		return m.SumCompletedByLoanIDFn(ctx, loanID)
	}
	return decimal.Zero, errUnimplemented
}

func (m *RepaymentRepo) Save(ctx context.Context, r *domain.Repayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
