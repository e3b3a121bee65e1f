package expense

import "context"

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByExpenseID(ctx context.Context, expenseID string) (*Expense, error)
	GetByID(ctx context.Context, id uint64) (*Expense, error)
	Save(ctx context.Context, e *Expense) error
}
