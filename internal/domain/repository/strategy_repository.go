package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// StrategyRepository defines the interface for marketing strategy data operations
type StrategyRepository interface {
	Create(ctx context.Context, strategy *entity.Strategy) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Strategy, error)
	Update(ctx context.Context, strategy *entity.Strategy) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Strategy, int64, error)
}
