package approval

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
)

type Type string

const (
	TypeLoan       Type = "loan"
	TypeExpense    Type = "expense"
	TypeWithdrawal Type = "withdrawal"
)

var (
	ErrNotFound           = errors.New("approval not found")
	ErrFinalized          = errors.New("approval already finalized")
	ErrDuplicateSignature = errors.New("approver already signed this approval")
)

// DisbursementApproval gates a fund release behind RequiredApprovals
// independent sign-offs. Status is terminal once it leaves pending.
type DisbursementApproval struct {
	ID                uint64          `gorm:"primaryKey;column:id"`
	ApprovalID        string          `gorm:"size:32;uniqueIndex:ux_approvals_approval_id"`
	GroupID           string          `gorm:"size:32;index:idx_approvals_group"`
	ApprovalType      Type            `gorm:"type:enum('loan','expense','withdrawal')"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2)"`
	RequiredApprovals int             `gorm:"default:2"`
	ApprovalsCount    int             `gorm:"default:0"`
	Status            Status          `gorm:"type:enum('pending','approved','rejected');default:'pending'"`
	// At most one of LoanID/ExpenseID is set, matching ApprovalType.
	LoanID    *uint64 `gorm:"column:loan_id;uniqueIndex:ux_approvals_loan"`
	ExpenseID *uint64 `gorm:"column:expense_id;uniqueIndex:ux_approvals_expense"`
	DecidedAt *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DisbursementApproval) TableName() string { return "disbursement_approvals" }

func (a *DisbursementApproval) Finalized() bool { return a.Status != StatusPending }

// Signature is one approver's binary decision. Immutable once created; the
// (approval, approver) pair is unique so one approver can never satisfy
// quorum alone.
type Signature struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	SignatureID string    `gorm:"size:32;uniqueIndex:ux_signatures_signature_id"`
	ApprovalID  uint64    `gorm:"column:approval_id;uniqueIndex:ux_signatures_approval_approver"`
	ApproverID  string    `gorm:"size:32;uniqueIndex:ux_signatures_approval_approver"`
	Approved    bool      `gorm:"not null"`
	Comments    string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Signature) TableName() string { return "approval_signatures" }

// Tally is the recount of all signatures on an approval.
type Tally struct {
	Approved int
	Rejected int
}
