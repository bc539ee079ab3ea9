package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	domainRepo "github.com/gsolanocr/comercio-api/internal/domain/repository"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Expense{})

	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) SumBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Where("date >= ? AND date <= ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *expenseRepository) SumByCategory(ctx context.Context, from, to time.Time) ([]domainRepo.CategoryTotal, error) {
	var totals []domainRepo.CategoryTotal
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ? AND date <= ?", from, to).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	return totals, err
}
