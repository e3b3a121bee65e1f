package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the enclosing
	// transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
}

type RepaymentRepository interface {
	Create(ctx context.Context, r *Repayment) error
	GetByRepaymentID(ctx context.Context, repaymentID string) (*Repayment, error)
	GetByReferenceNumber(ctx context.Context, ref string) (*Repayment, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Repayment, error)
	// SumCompletedByLoanID totals every completed repayment for the loan.
	// Balance recomputation always starts from this full-set sum.
	SumCompletedByLoanID(ctx context.Context, loanID uint64) (decimal.Decimal, error)
	Save(ctx context.Context, r *Repayment) error
}
