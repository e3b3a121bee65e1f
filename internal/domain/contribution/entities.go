package contribution

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var (
	ErrNotFound  = errors.New("contribution not found")
	ErrFinalized = errors.New("contribution already finalized")
)

// Contribution is a member's payment into the group pot. Completed rows are
// immutable ledger entries; the group balance is always recomputed from the
// full completed set.
type Contribution struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	ContributionID  string          `gorm:"size:32;uniqueIndex:ux_contributions_contribution_id"`
	GroupID         string          `gorm:"size:32;index:idx_contributions_group"`
	MemberID        string          `gorm:"size:32;index:idx_contributions_member"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2)"`
	PaymentMethod   string          `gorm:"size:32"`
	ReferenceNumber string          `gorm:"size:64;uniqueIndex:ux_contributions_reference"`
	Status          Status          `gorm:"type:enum('pending','completed','failed');default:'pending'"`
	PaidAt          *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Contribution) TableName() string { return "contributions" }

// GroupAccount carries the materialized balance of a group's completed
// contributions.
type GroupAccount struct {
	ID        uint64          `gorm:"primaryKey;column:id"`
	GroupID   string          `gorm:"size:32;uniqueIndex:ux_group_accounts_group"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (GroupAccount) TableName() string { return "group_accounts" }
