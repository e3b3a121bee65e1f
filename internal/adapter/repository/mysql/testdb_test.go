package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- SQLite-friendly twin schemas for tests (no MySQL ENUMs) ---

type loanSQLite struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	LoanID             string          `gorm:"size:32;uniqueIndex;column:loan_id"`
	GroupID            string          `gorm:"size:32;column:group_id"`
	BorrowerID         string          `gorm:"size:32;column:borrower_id"`
	PrincipalAmount    decimal.Decimal `gorm:"type:numeric;column:principal_amount"`
	InterestRate       decimal.Decimal `gorm:"type:numeric;column:interest_rate"`
	DurationMonths     int             `gorm:"column:duration_months"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric;column:total_amount"`
	MonthlyPayment     decimal.Decimal `gorm:"type:numeric;column:monthly_payment"`
	OutstandingBalance decimal.Decimal `gorm:"type:numeric;column:outstanding_balance"`
	Purpose            string          `gorm:"column:purpose"`
	Status             string          `gorm:"type:text;column:status"` // ← no enum
	ApprovedAt         *time.Time      `gorm:"column:approved_at"`
	DisbursedAt        *time.Time      `gorm:"column:disbursed_at"`
	CompletedAt        *time.Time      `gorm:"column:completed_at"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type repaymentSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	RepaymentID     string          `gorm:"size:32;uniqueIndex;column:repayment_id"`
	LoanID          uint64          `gorm:"column:loan_id"`
	Amount          decimal.Decimal `gorm:"type:numeric;column:amount"`
	PaymentMethod   string          `gorm:"column:payment_method"`
	ReferenceNumber string          `gorm:"size:64;uniqueIndex;column:reference_number"`
	Status          string          `gorm:"type:text;column:status"`
	PaidAt          *time.Time      `gorm:"column:paid_at"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (repaymentSQLite) TableName() string { return "loan_repayments" }

type approvalSQLite struct {
	ID                uint64          `gorm:"primaryKey;column:id"`
	ApprovalID        string          `gorm:"size:32;uniqueIndex;column:approval_id"`
	GroupID           string          `gorm:"size:32;column:group_id"`
	ApprovalType      string          `gorm:"type:text;column:approval_type"`
	Amount            decimal.Decimal `gorm:"type:numeric;column:amount"`
	RequiredApprovals int             `gorm:"column:required_approvals"`
	ApprovalsCount    int             `gorm:"column:approvals_count"`
	Status            string          `gorm:"type:text;column:status"`
	LoanID            *uint64         `gorm:"column:loan_id"`
	ExpenseID         *uint64         `gorm:"column:expense_id"`
	DecidedAt         *time.Time      `gorm:"column:decided_at"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (approvalSQLite) TableName() string { return "disbursement_approvals" }

type signatureSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	SignatureID string    `gorm:"size:32;uniqueIndex;column:signature_id"`
	ApprovalID  uint64    `gorm:"column:approval_id;uniqueIndex:ux_signatures_approval_approver"`
	ApproverID  string    `gorm:"size:32;column:approver_id;uniqueIndex:ux_signatures_approval_approver"`
	Approved    bool      `gorm:"column:approved"`
	Comments    string    `gorm:"column:comments"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (signatureSQLite) TableName() string { return "approval_signatures" }

type contributionSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	ContributionID  string          `gorm:"size:32;uniqueIndex;column:contribution_id"`
	GroupID         string          `gorm:"size:32;column:group_id"`
	MemberID        string          `gorm:"size:32;column:member_id"`
	Amount          decimal.Decimal `gorm:"type:numeric;column:amount"`
	PaymentMethod   string          `gorm:"column:payment_method"`
	ReferenceNumber string          `gorm:"size:64;uniqueIndex;column:reference_number"`
	Status          string          `gorm:"type:text;column:status"`
	PaidAt          *time.Time      `gorm:"column:paid_at"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (contributionSQLite) TableName() string { return "contributions" }

type groupAccountSQLite struct {
	ID        uint64          `gorm:"primaryKey;column:id"`
	GroupID   string          `gorm:"size:32;uniqueIndex;column:group_id"`
	Balance   decimal.Decimal `gorm:"type:numeric;column:balance"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (groupAccountSQLite) TableName() string { return "group_accounts" }

type expenseSQLite struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	ExpenseID   string          `gorm:"size:32;uniqueIndex;column:expense_id"`
	GroupID     string          `gorm:"size:32;column:group_id"`
	RequestedBy string          `gorm:"size:32;column:requested_by"`
	Description string          `gorm:"column:description"`
	Amount      decimal.Decimal `gorm:"type:numeric;column:amount"`
	Status      string          `gorm:"type:text;column:status"`
	DecidedAt   *time.Time      `gorm:"column:decided_at"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (expenseSQLite) TableName() string { return "expenses" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas. TranslateError matches production so duplicate keys surface as
// gorm.ErrDuplicatedKey.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(
		&loanSQLite{}, &repaymentSQLite{},
		&approvalSQLite{}, &signatureSQLite{},
		&contributionSQLite{}, &groupAccountSQLite{}, &expenseSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
