package mysql

import (
	"context"

	"gorm.io/gorm"

	expenseDomain "chama-backend/internal/domain/expense"
)

type ExpenseRepository struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository { return &ExpenseRepository{db: db} }

func (r *ExpenseRepository) Create(ctx context.Context, e *expenseDomain.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) Save(ctx context.Context, e *expenseDomain.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ExpenseRepository) GetByExpenseID(ctx context.Context, expenseID string) (*expenseDomain.Expense, error) {
	var out expenseDomain.Expense
	res := r.db.WithContext(ctx).Where("expense_id = ?", expenseID).First(&out)
	return &out, res.Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uint64) (*expenseDomain.Expense, error) {
	var out expenseDomain.Expense
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}
