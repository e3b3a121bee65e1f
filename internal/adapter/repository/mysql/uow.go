package mysql

import (
	"context"

	"gorm.io/gorm"

	"chama-backend/internal/domain/approval"
	"chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:         &LoanRepository{db: tx},
		Repayments:    &RepaymentRepository{db: tx},
		Approvals:     &ApprovalRepository{db: tx},
		Signatures:    &SignatureRepository{db: tx},
		Expenses:      &ExpenseRepository{db: tx},
		Contributions: &ContributionRepository{db: tx},
		GroupAccounts: &GroupAccountRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the loan row up-front so balance recomputation serializes
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinApprovalTx(ctx context.Context, approvalID string, fn func(r uow.Repos, a *approval.DisbursementApproval) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the approval row up-front so concurrent signatures serialize
		a, err := r.Approvals.GetByApprovalIDForUpdate(ctx, approvalID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
