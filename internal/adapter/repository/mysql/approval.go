package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	approvalDomain "chama-backend/internal/domain/approval"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.DisbursementApproval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) Save(ctx context.Context, a *approvalDomain.DisbursementApproval) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.DisbursementApproval, error) {
	var out approvalDomain.DisbursementApproval
	res := r.db.WithContext(ctx).Where("approval_id = ?", approvalID).First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*approvalDomain.DisbursementApproval, error) {
	var out approvalDomain.DisbursementApproval
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("approval_id = ?", approvalID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) GetByLoanID(ctx context.Context, loanNumericID uint64) (*approvalDomain.DisbursementApproval, error) {
	var out approvalDomain.DisbursementApproval
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanNumericID).First(&out)
	return &out, res.Error
}

type SignatureRepository struct{ db *gorm.DB }

func NewSignatureRepository(db *gorm.DB) *SignatureRepository { return &SignatureRepository{db: db} }

func (r *SignatureRepository) Create(ctx context.Context, s *approvalDomain.Signature) error {
	err := r.db.WithContext(ctx).Create(s).Error
	// the (approval_id, approver_id) unique index caught a resubmission
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return approvalDomain.ErrDuplicateSignature
	}
	return err
}

func (r *SignatureRepository) ListByApprovalID(ctx context.Context, approvalID uint64) ([]approvalDomain.Signature, error) {
	var out []approvalDomain.Signature
	res := r.db.WithContext(ctx).
		Where("approval_id = ?", approvalID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *SignatureRepository) CountByApprovalID(ctx context.Context, approvalID uint64) (approvalDomain.Tally, error) {
	var tally approvalDomain.Tally
	var counts []struct {
		Approved bool
		N        int
	}
	err := r.db.WithContext(ctx).
		Model(&approvalDomain.Signature{}).
		Select("approved, COUNT(*) AS n").
		Where("approval_id = ?", approvalID).
		Group("approved").
		Scan(&counts).Error
	if err != nil {
		return tally, err
	}
	for _, c := range counts {
		if c.Approved {
			tally.Approved = c.N
		} else {
			tally.Rejected = c.N
		}
	}
	return tally, nil
}
