package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"chama-backend/internal/domain/loan"
)

type ApplyInput struct {
	GroupID         string
	BorrowerID      string
	PrincipalAmount decimal.Decimal
	// nil means "use the default annual rate"
	InterestRate   *decimal.Decimal
	DurationMonths int
	Purpose        string
}

type LoanDTO struct {
	LoanID             string           `json:"loan_id"`
	GroupID            string           `json:"group_id"`
	BorrowerID         string           `json:"borrower_id"`
	PrincipalAmount    decimal.Decimal  `json:"principal_amount"`
	InterestRate       decimal.Decimal  `json:"interest_rate"`
	DurationMonths     int              `json:"duration_months"`
	TotalAmount        decimal.Decimal  `json:"total_amount"`
	MonthlyPayment     decimal.Decimal  `json:"monthly_payment"`
	OutstandingBalance decimal.Decimal  `json:"outstanding_balance"`
	Purpose            string           `json:"purpose,omitempty"`
	Status             string           `json:"status"`
	ApprovedAt         *time.Time       `json:"approved_at,omitempty"`
	DisbursedAt        *time.Time       `json:"disbursed_at,omitempty"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:             l.LoanID,
		GroupID:            l.GroupID,
		BorrowerID:         l.BorrowerID,
		PrincipalAmount:    l.PrincipalAmount,
		InterestRate:       l.InterestRate,
		DurationMonths:     l.DurationMonths,
		TotalAmount:        l.TotalAmount,
		MonthlyPayment:     l.MonthlyPayment,
		OutstandingBalance: l.OutstandingBalance,
		Purpose:            l.Purpose,
		Status:             string(l.Status),
		ApprovedAt:         l.ApprovedAt,
		DisbursedAt:        l.DisbursedAt,
		CompletedAt:        l.CompletedAt,
		CreatedAt:          l.CreatedAt,
	}
}
