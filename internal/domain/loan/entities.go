package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDisbursed Status = "disbursed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
	StatusRejected  Status = "rejected"
)

type RepaymentStatus string

const (
	RepaymentPending   RepaymentStatus = "pending"
	RepaymentCompleted RepaymentStatus = "completed"
	RepaymentFailed    RepaymentStatus = "failed"
)

var (
	ErrNotFound           = errors.New("loan not found")
	ErrInvalidTransition  = errors.New("invalid loan status transition")
	ErrNotRepayable       = errors.New("loan is not accepting repayments")
	ErrRepaymentNotFound  = errors.New("repayment not found")
	ErrRepaymentFinalized = errors.New("repayment already finalized")
)

// validNext lists the allowed successors of each loan status. Terminal
// statuses have no entry.
var validNext = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusDisbursed},
	StatusDisbursed: {StatusActive, StatusCompleted},
	StatusActive:    {StatusCompleted, StatusDefaulted},
	// a defaulted borrower can still settle in full
	StatusDefaulted: {StatusCompleted},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range validNext[s] {
		if n == next {
			return true
		}
	}
	return false
}

type Loan struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	LoanID             string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id"`
	GroupID            string          `gorm:"size:32;index:idx_loans_group"`
	BorrowerID         string          `gorm:"size:32;index:idx_loans_borrower"`
	PrincipalAmount    decimal.Decimal `gorm:"type:decimal(18,2)"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(6,2)"` // annual %, e.g. 10.00
	DurationMonths     int             `gorm:"column:duration_months"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,2)"`
	MonthlyPayment     decimal.Decimal `gorm:"type:decimal(18,2)"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(18,2)"`
	Purpose            string          `gorm:"type:text"`
	Status             Status          `gorm:"type:enum('pending','approved','disbursed','active','completed','defaulted','rejected');default:'pending'"`
	ApprovedAt         *time.Time
	DisbursedAt        *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (Loan) TableName() string { return "loans" }

// 100 (percent) x 12 (months per year)
var twelveHundred = decimal.NewFromInt(1200)

// CalculateTotalAmount returns principal plus simple interest for the term:
// principal + principal*rate*months/1200. The rate is annual and prorated
// linearly by month count, never compounded.
func (l *Loan) CalculateTotalAmount() decimal.Decimal {
	months := decimal.NewFromInt(int64(l.DurationMonths))
	interest := l.PrincipalAmount.Mul(l.InterestRate).Mul(months).Div(twelveHundred)
	return l.PrincipalAmount.Add(interest).Round(2)
}

// CalculateMonthlyPayment divides the total repayable amount evenly over the
// term. DurationMonths must already be validated > 0.
func (l *Loan) CalculateMonthlyPayment() decimal.Decimal {
	return l.TotalAmount.DivRound(decimal.NewFromInt(int64(l.DurationMonths)), 2)
}

// SetDerivedAmounts fixes the loan's terms at origination. It is a no-op when
// the fields are already populated: terms never change after creation.
func (l *Loan) SetDerivedAmounts() {
	if !l.TotalAmount.IsZero() {
		return
	}
	l.TotalAmount = l.CalculateTotalAmount()
	l.MonthlyPayment = l.CalculateMonthlyPayment()
	l.OutstandingBalance = l.TotalAmount
}

// Repayable reports whether money can be recorded against the loan. Funds
// must have moved first.
func (l *Loan) Repayable() bool {
	switch l.Status {
	case StatusDisbursed, StatusActive, StatusDefaulted:
		return true
	}
	return false
}

// Repayment is an append-only ledger entry against a loan. A row never
// changes again once it reaches completed.
type Repayment struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	RepaymentID     string          `gorm:"size:32;uniqueIndex:ux_repayments_repayment_id"`
	LoanID          uint64          `gorm:"column:loan_id;index:idx_repayments_loan"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2)"`
	PaymentMethod   string          `gorm:"size:32"`
	ReferenceNumber string          `gorm:"size:64;uniqueIndex:ux_repayments_reference"`
	Status          RepaymentStatus `gorm:"type:enum('pending','completed','failed');default:'pending'"`
	PaidAt          *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Repayment) TableName() string { return "loan_repayments" }
