package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination  *pagination.PaginationParams
	Status      *enum.SaleStatus
	Source      string
	ClientPhone string
	StartDate   *time.Time
	EndDate     *time.Time
}

// DailyRevenuePoint is one day of aggregated sales
type DailyRevenuePoint struct {
	Day     time.Time `json:"day"`
	Revenue int64     `json:"revenue"`
	Count   int64     `json:"count"`
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enum.SaleStatus) (int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time, status *enum.SaleStatus) (int64, error)
	DailyRevenue(ctx context.Context, days int) ([]DailyRevenuePoint, error)
}
