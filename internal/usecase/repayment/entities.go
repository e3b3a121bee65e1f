package repayment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chama-backend/internal/domain/loan"
)

type RecordInput struct {
	LoanID        string
	Amount        decimal.Decimal
	PaymentMethod string
	// ReferenceNumber comes from the payment rail; generated when absent.
	ReferenceNumber string
}

type RepaymentDTO struct {
	RepaymentID     string          `json:"repayment_id"`
	LoanID          string          `json:"loan_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Status          string          `json:"status"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toDTO(rp *loan.Repayment, loanID string) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID:     rp.RepaymentID,
		LoanID:          loanID,
		Amount:          rp.Amount,
		PaymentMethod:   rp.PaymentMethod,
		ReferenceNumber: rp.ReferenceNumber,
		Status:          string(rp.Status),
		PaidAt:          rp.PaidAt,
		CreatedAt:       rp.CreatedAt,
	}
}

func newReference() string { return uuid.NewString() }
