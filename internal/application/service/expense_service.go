package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// ExpenseService handles expense tracking and cash-flow summaries
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	saleRepo    repository.SaleRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, saleRepo repository.SaleRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, saleRepo: saleRepo}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	UserID    uuid.UUID
	Concept   string
	Category  enum.ExpenseCategory
	Amount    int64
	Date      time.Time
	Recurring bool
	Notes     *string
}

// CreateExpense records a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	expense := &entity.Expense{
		UserID:    input.UserID,
		Concept:   input.Concept,
		Category:  input.Category,
		Amount:    input.Amount,
		Date:      date,
		Recurring: input.Recurring,
		Notes:     input.Notes,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering and pagination
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// UpdateExpenseInput represents the update expense input
type UpdateExpenseInput struct {
	ID        uuid.UUID
	Concept   *string
	Category  *enum.ExpenseCategory
	Amount    *int64
	Date      *time.Time
	Recurring *bool
	Notes     *string
}

// UpdateExpense updates an expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, input *UpdateExpenseInput) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	if input.Concept != nil {
		expense.Concept = *input.Concept
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperror.NewBadRequestError("Amount must be positive")
		}
		expense.Amount = *input.Amount
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Recurring != nil {
		expense.Recurring = *input.Recurring
	}
	if input.Notes != nil {
		expense.Notes = input.Notes
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// CashFlowSummary is income against expenses for a period
type CashFlowSummary struct {
	From       time.Time                `json:"from"`
	To         time.Time                `json:"to"`
	Income     int64                    `json:"income"`
	Expenses   int64                    `json:"expenses"`
	Net        int64                    `json:"net"`
	ByCategory []repository.CategoryTotal `json:"by_category"`
}

// CashFlow summarizes the period's income (all recorded sales) against its
// expenses, broken down by expense category.
func (s *ExpenseService) CashFlow(ctx context.Context, from, to time.Time) (*CashFlowSummary, error) {
	income, err := s.saleRepo.RevenueBetween(ctx, from, to, nil)
	if err != nil {
		return nil, err
	}

	spent, err := s.expenseRepo.SumBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.expenseRepo.SumByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &CashFlowSummary{
		From:       from,
		To:         to,
		Income:     income,
		Expenses:   spent,
		Net:        income - spent,
		ByCategory: byCategory,
	}, nil
}
