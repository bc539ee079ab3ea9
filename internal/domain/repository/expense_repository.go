package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// ExpenseFilterParams contains filtering parameters for expense queries
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	Category   *enum.ExpenseCategory
	StartDate  *time.Time
	EndDate    *time.Time
}

// CategoryTotal aggregates spend per expense category
type CategoryTotal struct {
	Category enum.ExpenseCategory `json:"category"`
	Total    int64                `json:"total"`
}

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Expense, error)
	SumBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}
