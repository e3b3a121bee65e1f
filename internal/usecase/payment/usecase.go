// Package payment consumes the payment-rail event contract: a completed
// M-Pesa (or bank/cash) payment arrives as an event carrying amount, payer
// and a reference number, and gets applied to the matching repayment or
// contribution. STK-push initiation and retries live on the rail side, not
// here.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainContribution "chama-backend/internal/domain/contribution"
	domainLoan "chama-backend/internal/domain/loan"
	ucContribution "chama-backend/internal/usecase/contribution"
	ucRepayment "chama-backend/internal/usecase/repayment"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownReference = errors.New("no repayment or contribution matches reference")
	ErrAmountMismatch   = errors.New("event amount does not match recorded amount")
)

const (
	EventSuccess = "success"
	EventFailed  = "failed"
)

type EventInput struct {
	ReferenceNumber   string
	CheckoutRequestID string
	Amount            decimal.Decimal
	PhoneNumber       string
	Status            string
}

type EventResult struct {
	Kind         string                          `json:"kind"` // "repayment" | "contribution"
	Repayment    *ucRepayment.RepaymentDTO       `json:"repayment,omitempty"`
	Contribution *ucContribution.ContributionDTO `json:"contribution,omitempty"`
}

type repaymentFinalizer interface {
	Confirm(ctx context.Context, repaymentID string) (*ucRepayment.RepaymentDTO, error)
	Fail(ctx context.Context, repaymentID string) (*ucRepayment.RepaymentDTO, error)
}

type contributionFinalizer interface {
	Confirm(ctx context.Context, contributionID string) (*ucContribution.ContributionDTO, error)
	Fail(ctx context.Context, contributionID string) (*ucContribution.ContributionDTO, error)
}

type Usecase struct {
	repayments    domainLoan.RepaymentRepository
	contributions domainContribution.Repository
	repaymentUC   repaymentFinalizer
	contribUC     contributionFinalizer
}

func NewUsecase(repayments domainLoan.RepaymentRepository, contributions domainContribution.Repository, rp repaymentFinalizer, cb contributionFinalizer) *Usecase {
	return &Usecase{repayments: repayments, contributions: contributions, repaymentUC: rp, contribUC: cb}
}

// HandleEvent routes a rail event to the ledger row it settles. The event's
// amount must match what was recorded; a mismatch is refused rather than
// partially applied.
func (u *Usecase) HandleEvent(ctx context.Context, in EventInput) (*EventResult, error) {
	if in.ReferenceNumber == "" {
		return nil, ErrInvalidInput
	}
	success := in.Status == EventSuccess
	if !success && in.Status != EventFailed {
		return nil, ErrInvalidInput
	}

	rp, err := u.repayments.GetByReferenceNumber(ctx, in.ReferenceNumber)
	switch {
	case err == nil:
		if success && !in.Amount.Equal(rp.Amount) {
			return nil, ErrAmountMismatch
		}
		dto, err := u.finalizeRepayment(ctx, rp.RepaymentID, success)
		if err != nil {
			return nil, err
		}
		return &EventResult{Kind: "repayment", Repayment: dto}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	c, err := u.contributions.GetByReferenceNumber(ctx, in.ReferenceNumber)
	switch {
	case err == nil:
		if success && !in.Amount.Equal(c.Amount) {
			return nil, ErrAmountMismatch
		}
		dto, err := u.finalizeContribution(ctx, c.ContributionID, success)
		if err != nil {
			return nil, err
		}
		return &EventResult{Kind: "contribution", Contribution: dto}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return nil, ErrUnknownReference
}

func (u *Usecase) finalizeRepayment(ctx context.Context, repaymentID string, success bool) (*ucRepayment.RepaymentDTO, error) {
	if success {
		return u.repaymentUC.Confirm(ctx, repaymentID)
	}
	return u.repaymentUC.Fail(ctx, repaymentID)
}

func (u *Usecase) finalizeContribution(ctx context.Context, contributionID string, success bool) (*ucContribution.ContributionDTO, error) {
	if success {
		return u.contribUC.Confirm(ctx, contributionID)
	}
	return u.contribUC.Fail(ctx, contributionID)
}
