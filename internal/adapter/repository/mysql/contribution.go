package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	contributionDomain "chama-backend/internal/domain/contribution"
)

type ContributionRepository struct{ db *gorm.DB }

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) Create(ctx context.Context, c *contributionDomain.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) Save(ctx context.Context, c *contributionDomain.Contribution) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContributionRepository) GetByContributionID(ctx context.Context, contributionID string) (*contributionDomain.Contribution, error) {
	var out contributionDomain.Contribution
	res := r.db.WithContext(ctx).Where("contribution_id = ?", contributionID).First(&out)
	return &out, res.Error
}

func (r *ContributionRepository) GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*contributionDomain.Contribution, error) {
	var out contributionDomain.Contribution
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contribution_id = ?", contributionID).
		First(&out)
	return &out, res.Error
}

func (r *ContributionRepository) GetByReferenceNumber(ctx context.Context, ref string) (*contributionDomain.Contribution, error) {
	var out contributionDomain.Contribution
	res := r.db.WithContext(ctx).Where("reference_number = ?", ref).First(&out)
	return &out, res.Error
}

func (r *ContributionRepository) SumCompletedByGroupID(ctx context.Context, groupID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&contributionDomain.Contribution{}).
		Where("group_id = ? AND status = ?", groupID, contributionDomain.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

type GroupAccountRepository struct{ db *gorm.DB }

func NewGroupAccountRepository(db *gorm.DB) *GroupAccountRepository {
	return &GroupAccountRepository{db: db}
}

func (r *GroupAccountRepository) GetByGroupID(ctx context.Context, groupID string) (*contributionDomain.GroupAccount, error) {
	var out contributionDomain.GroupAccount
	res := r.db.WithContext(ctx).Where("group_id = ?", groupID).First(&out)
	return &out, res.Error
}

// LockByGroupID serializes concurrent balance recomputations for a group.
// Confirming two contributions of the same group each sums the completed set;
// without a common lock the later writer overwrites the balance with a total
// that misses the earlier row. The account row is the lock: insert-if-absent
// so there is always one to take FOR UPDATE.
func (r *GroupAccountRepository) LockByGroupID(ctx context.Context, groupID string) (*contributionDomain.GroupAccount, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}},
			DoNothing: true,
		}).
		Create(&contributionDomain.GroupAccount{GroupID: groupID, Balance: decimal.Zero}).Error; err != nil {
		return nil, err
	}
	var out contributionDomain.GroupAccount
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("group_id = ?", groupID).
		First(&out)
	return &out, res.Error
}

func (r *GroupAccountRepository) Upsert(ctx context.Context, a *contributionDomain.GroupAccount) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
		}).
		Create(a).Error
}
