package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

var (
	ErrNotFound          = errors.New("expense not found")
	ErrInvalidTransition = errors.New("invalid expense status transition")
)

// Expense is a group expense awaiting a disbursement approval. It follows the
// same status pattern as a loan, without derived-amount arithmetic.
type Expense struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	ExpenseID   string          `gorm:"size:32;uniqueIndex:ux_expenses_expense_id"`
	GroupID     string          `gorm:"size:32;index:idx_expenses_group"`
	RequestedBy string          `gorm:"size:32"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2)"`
	Status      Status          `gorm:"type:enum('pending','approved','rejected','paid');default:'pending'"`
	DecidedAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Expense) TableName() string { return "expenses" }
