package contribution

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"chama-backend/internal/domain/contribution"
	"chama-backend/internal/domain/uow"
	"chama-backend/pkg/id"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	contributions contribution.Repository
	accounts      contribution.GroupAccountRepository
	uow           uow.UnitOfWork
}

func NewUsecase(contributions contribution.Repository, accounts contribution.GroupAccountRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{contributions: contributions, accounts: accounts, uow: tx}
}

type RecordInput struct {
	GroupID         string
	MemberID        string
	Amount          decimal.Decimal
	PaymentMethod   string
	ReferenceNumber string
}

type ContributionDTO struct {
	ContributionID  string          `json:"contribution_id"`
	GroupID         string          `json:"group_id"`
	MemberID        string          `json:"member_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Status          string          `json:"status"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type GroupBalanceDTO struct {
	GroupID string          `json:"group_id"`
	Balance decimal.Decimal `json:"balance"`
}

func (u *Usecase) Record(ctx context.Context, in RecordInput) (*ContributionDTO, error) {
	if len(in.GroupID) != 32 || len(in.MemberID) != 32 || !in.Amount.IsPositive() || in.PaymentMethod == "" {
		return nil, ErrInvalidInput
	}
	c := &contribution.Contribution{
		ContributionID:  id.NewID32(),
		GroupID:         in.GroupID,
		MemberID:        in.MemberID,
		Amount:          in.Amount,
		PaymentMethod:   in.PaymentMethod,
		ReferenceNumber: in.ReferenceNumber,
		Status:          contribution.StatusPending,
	}
	if c.ReferenceNumber == "" {
		c.ReferenceNumber = uuid.NewString()
	}
	if err := u.contributions.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

// Confirm completes a contribution and recomputes the group balance from the
// full completed set, in one transaction holding both the contribution row
// lock and the group account lock.
func (u *Usecase) Confirm(ctx context.Context, contributionID string) (*ContributionDTO, error) {
	var dto *ContributionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contributions.GetByContributionIDForUpdate(ctx, contributionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contribution.ErrNotFound
			}
			return err
		}
		if c.Status != contribution.StatusPending {
			return contribution.ErrFinalized
		}
		// Take the group account lock before summing. Two confirms in the
		// same group otherwise each lock only their own contribution row and
		// the later balance write misses the earlier one.
		if _, err := r.GroupAccounts.LockByGroupID(ctx, c.GroupID); err != nil {
			return err
		}
		now := time.Now().UTC()
		c.Status = contribution.StatusCompleted
		c.PaidAt = &now
		if err := r.Contributions.Save(ctx, c); err != nil {
			return err
		}

		total, err := r.Contributions.SumCompletedByGroupID(ctx, c.GroupID)
		if err != nil {
			return err
		}
		if err := r.GroupAccounts.Upsert(ctx, &contribution.GroupAccount{GroupID: c.GroupID, Balance: total}); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Fail marks a pending contribution as failed; the group balance is untouched.
func (u *Usecase) Fail(ctx context.Context, contributionID string) (*ContributionDTO, error) {
	var dto *ContributionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contributions.GetByContributionIDForUpdate(ctx, contributionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contribution.ErrNotFound
			}
			return err
		}
		if c.Status != contribution.StatusPending {
			return contribution.ErrFinalized
		}
		c.Status = contribution.StatusFailed
		if err := r.Contributions.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) GroupBalance(ctx context.Context, groupID string) (*GroupBalanceDTO, error) {
	if len(groupID) != 32 {
		return nil, ErrInvalidInput
	}
	a, err := u.accounts.GetByGroupID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// no completed contributions yet
			return &GroupBalanceDTO{GroupID: groupID, Balance: decimal.Zero}, nil
		}
		return nil, err
	}
	return &GroupBalanceDTO{GroupID: a.GroupID, Balance: a.Balance}, nil
}

func toDTO(c *contribution.Contribution) *ContributionDTO {
	return &ContributionDTO{
		ContributionID:  c.ContributionID,
		GroupID:         c.GroupID,
		MemberID:        c.MemberID,
		Amount:          c.Amount,
		PaymentMethod:   c.PaymentMethod,
		ReferenceNumber: c.ReferenceNumber,
		Status:          string(c.Status),
		PaidAt:          c.PaidAt,
		CreatedAt:       c.CreatedAt,
	}
}
