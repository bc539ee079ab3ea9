package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	domainRepo "github.com/gsolanocr/comercio-api/internal/domain/repository"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Client").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Source != "" {
		query = query.Where("source = ?", params.Source)
	}

	if params.ClientPhone != "" {
		query = query.Where("client_phone = ?", params.ClientPhone)
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
		Preload("Items").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *saleRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC").
		Preload("Items").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).Count(&count).Error
	return count, err
}

func (r *saleRepository) CountByStatus(ctx context.Context, status enum.SaleStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *saleRepository) RevenueBetween(ctx context.Context, from, to time.Time, status *enum.SaleStatus) (int64, error) {
	var revenue int64
	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("date >= ? AND date <= ?", from, to)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Select("COALESCE(SUM(total), 0)").Scan(&revenue).Error
	return revenue, err
}

func (r *saleRepository) DailyRevenue(ctx context.Context, days int) ([]domainRepo.DailyRevenuePoint, error) {
	var points []domainRepo.DailyRevenuePoint
	since := time.Now().AddDate(0, 0, -days)
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("DATE_TRUNC('day', date) AS day, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Where("date >= ?", since).
		Group("DATE_TRUNC('day', date)").
		Order("day ASC").
		Scan(&points).Error
	return points, err
}
