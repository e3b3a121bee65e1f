package uowmock

import (
	"context"
	"errors"

	"chama-backend/internal/domain/approval"
	"chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn     func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinApprovalTxFn func(ctx context.Context, approvalID string, fn func(r uow.Repos, a *approval.DisbursementApproval) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinApprovalTx(ctx context.Context, approvalID string, fn func(r uow.Repos, a *approval.DisbursementApproval) error) error {
	if m.WithinApprovalTxFn != nil {
		return m.WithinApprovalTxFn(ctx, approvalID, fn)
	}
	return errUnimplemented
}
