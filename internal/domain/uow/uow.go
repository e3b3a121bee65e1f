package uow

import (
	"context"

	"chama-backend/internal/domain/approval"
	"chama-backend/internal/domain/contribution"
	"chama-backend/internal/domain/expense"
	"chama-backend/internal/domain/loan"
)

type Repos struct {
	Loans         loan.Repository
	Repayments    loan.RepaymentRepository
	Approvals     approval.Repository
	Signatures    approval.SignatureRepository
	Expenses      expense.Repository
	Contributions contribution.Repository
	GroupAccounts contribution.GroupAccountRepository
}

type UnitOfWork interface {
	// WithinTx runs fn with every repo bound to one transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then runs fn. Repayment
	// confirmation and balance recomputation go through here.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// WithinApprovalTx locks the approval row first, then runs fn. Signature
	// insertion, recount and cascade go through here.
	WithinApprovalTx(ctx context.Context, approvalID string, fn func(r Repos, a *approval.DisbursementApproval) error) error
}
