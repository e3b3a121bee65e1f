package contribution

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, c *Contribution) error
	GetByContributionID(ctx context.Context, contributionID string) (*Contribution, error)
	GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*Contribution, error)
	GetByReferenceNumber(ctx context.Context, ref string) (*Contribution, error)
	SumCompletedByGroupID(ctx context.Context, groupID string) (decimal.Decimal, error)
	Save(ctx context.Context, c *Contribution) error
}

type GroupAccountRepository interface {
	GetByGroupID(ctx context.Context, groupID string) (*GroupAccount, error)
	// LockByGroupID takes the row lock that serializes balance recomputation
	// for a group, creating a zero-balance row first if none exists. Must run
	// inside a transaction.
	LockByGroupID(ctx context.Context, groupID string) (*GroupAccount, error)
	// Upsert writes the recomputed balance, creating the account row on first
	// contribution.
	Upsert(ctx context.Context, a *GroupAccount) error
}
