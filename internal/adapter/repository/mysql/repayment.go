package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	loanDomain "chama-backend/internal/domain/loan"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, rp *loanDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *RepaymentRepository) Save(ctx context.Context, rp *loanDomain.Repayment) error {
	return r.db.WithContext(ctx).Save(rp).Error
}

func (r *RepaymentRepository) GetByRepaymentID(ctx context.Context, repaymentID string) (*loanDomain.Repayment, error) {
	var out loanDomain.Repayment
	res := r.db.WithContext(ctx).Where("repayment_id = ?", repaymentID).First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) GetByReferenceNumber(ctx context.Context, ref string) (*loanDomain.Repayment, error) {
	var out loanDomain.Repayment
	res := r.db.WithContext(ctx).Where("reference_number = ?", ref).First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]loanDomain.Repayment, error) {
	var out []loanDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// SumCompletedByLoanID totals completed repayments in SQL; the decimal scan
// keeps the sum exact.
func (r *RepaymentRepository) SumCompletedByLoanID(ctx context.Context, loanID uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Repayment{}).
		Where("loan_id = ? AND status = ?", loanID, loanDomain.RepaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
