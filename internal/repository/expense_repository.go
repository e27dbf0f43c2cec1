package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/droneflow/settlements/internal/model"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) ListAll(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			description,
			amount,
			category,
			expense_date AS date,
			paid_by,
			closed,
			created_at
		FROM expenses
		ORDER BY expense_date ASC, created_at ASC
	`).Scan(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepository) Insert(ctx context.Context, expense model.Expense) (*model.Expense, error) {
	var saved model.Expense
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO expenses (
			id,
			description,
			amount,
			category,
			expense_date,
			paid_by,
			closed
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING
			id,
			description,
			amount,
			category,
			expense_date AS date,
			paid_by,
			closed,
			created_at
	`,
		expense.ID,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.Date,
		expense.PaidBy,
		expense.Closed,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ExpenseRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM expenses WHERE id = ?`, id).Error
}

func (r *ExpenseRepository) SetClosedByIDs(ctx context.Context, ids []uuid.UUID, closed bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE expenses SET closed = ? WHERE id = ANY(?)
	`, closed, ids).Error
}

func (r *ExpenseRepository) SetClosedBetween(ctx context.Context, from, to time.Time, closed bool) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE expenses SET closed = ? WHERE expense_date >= ? AND expense_date <= ?
	`, closed, from, to).Error
}
