package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	domainRepo "github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

type strategyRepository struct {
	db *gorm.DB
}

// NewStrategyRepository creates a new strategy repository
func NewStrategyRepository(db *gorm.DB) domainRepo.StrategyRepository {
	return &strategyRepository{db: db}
}

func (r *strategyRepository) Create(ctx context.Context, strategy *entity.Strategy) error {
	return r.db.WithContext(ctx).Create(strategy).Error
}

func (r *strategyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Strategy, error) {
	var strategy entity.Strategy
	err := r.db.WithContext(ctx).First(&strategy, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &strategy, err
}

func (r *strategyRepository) Update(ctx context.Context, strategy *entity.Strategy) error {
	return r.db.WithContext(ctx).Save(strategy).Error
}

func (r *strategyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Strategy{}, "id = ?", id).Error
}

func (r *strategyRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Strategy, int64, error) {
	var strategies []entity.Strategy
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Strategy{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&strategies).Error

	return strategies, total, err
}
