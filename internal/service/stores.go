package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/droneflow/settlements/internal/model"
)

// The engine reads and writes plain records through these store interfaces.
// Implementations live in the repository package; tests use in-memory fakes.

type ServiceStore interface {
	ListAll(ctx context.Context) ([]model.ServiceRecord, error)
	Insert(ctx context.Context, record model.ServiceRecord) (*model.ServiceRecord, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type ExpenseStore interface {
	ListAll(ctx context.Context) ([]model.Expense, error)
	Insert(ctx context.Context, expense model.Expense) (*model.Expense, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	// SetClosedByIDs flips the closed flag on the given expenses.
	SetClosedByIDs(ctx context.Context, ids []uuid.UUID, closed bool) error
	// SetClosedBetween flips the closed flag on every expense dated within
	// [from, to], both ends inclusive.
	SetClosedBetween(ctx context.Context, from, to time.Time, closed bool) error
}

type ContributionStore interface {
	ListAll(ctx context.Context) ([]model.Contribution, error)
	Insert(ctx context.Context, contribution model.Contribution) (*model.Contribution, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type ClosedMonthStore interface {
	ListAll(ctx context.Context) ([]model.ClosedMonth, error)
	// GetByKey returns nil without error when no record exists for the key.
	GetByKey(ctx context.Context, monthYear string) (*model.ClosedMonth, error)
	Insert(ctx context.Context, closed model.ClosedMonth) (*model.ClosedMonth, error)
	DeleteByKey(ctx context.Context, monthYear string) error
}

type ClientStore interface {
	ListAll(ctx context.Context) ([]model.Client, error)
	Upsert(ctx context.Context, clients []model.Client) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
