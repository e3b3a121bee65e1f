package expense

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"chama-backend/internal/domain/expense"
	"chama-backend/pkg/id"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct{ repo expense.Repository }

func NewUsecase(r expense.Repository) *Usecase { return &Usecase{repo: r} }

type CreateInput struct {
	GroupID     string
	RequestedBy string
	Description string
	Amount      decimal.Decimal
}

type ExpenseDTO struct {
	ExpenseID   string          `json:"expense_id"`
	GroupID     string          `json:"group_id"`
	RequestedBy string          `json:"requested_by"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	DecidedAt   *time.Time      `json:"decided_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ExpenseDTO, error) {
	if len(in.GroupID) != 32 || len(in.RequestedBy) != 32 || !in.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	e := &expense.Expense{
		ExpenseID:   id.NewID32(),
		GroupID:     in.GroupID,
		RequestedBy: in.RequestedBy,
		Description: in.Description,
		Amount:      in.Amount,
		Status:      expense.StatusPending,
	}
	if err := u.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

// MarkPaid records that an approved expense was paid out of the group pot.
// Pending and rejected expenses cannot be paid, and payout is terminal.
func (u *Usecase) MarkPaid(ctx context.Context, expenseID string) (*ExpenseDTO, error) {
	e, err := u.repo.GetByExpenseID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrNotFound
		}
		return nil, err
	}
	if e.Status != expense.StatusApproved {
		return nil, expense.ErrInvalidTransition
	}
	e.Status = expense.StatusPaid
	if err := u.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

func (u *Usecase) Get(ctx context.Context, expenseID string) (*ExpenseDTO, error) {
	e, err := u.repo.GetByExpenseID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrNotFound
		}
		return nil, err
	}
	return toDTO(e), nil
}

func toDTO(e *expense.Expense) *ExpenseDTO {
	return &ExpenseDTO{
		ExpenseID:   e.ExpenseID,
		GroupID:     e.GroupID,
		RequestedBy: e.RequestedBy,
		Description: e.Description,
		Amount:      e.Amount,
		Status:      string(e.Status),
		DecidedAt:   e.DecidedAt,
		CreatedAt:   e.CreatedAt,
	}
}
