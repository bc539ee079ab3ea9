package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
	"github.com/gsolanocr/comercio-api/pkg/utils"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID     uuid.UUID
	Name       string
	Code       string
	CategoryID *uuid.UUID
	Stock      int
	StockAlert int
	Price      int64
	Notes      *string
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already in use")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Code:       code,
		Stock:      input.Stock,
		StockAlert: input.StockAlert,
		Price:      input.Price,
		Notes:      input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID         uuid.UUID
	Name       *string
	CategoryID *uuid.UUID
	Stock      *int
	StockAlert *int
	Price      *int64
	Notes      *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// GetLowStockProducts returns products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	ProductID uuid.UUID
	Delta     int
}

// AdjustStock applies a manual stock correction. Negative deltas fail when
// the stock cannot cover them.
func (s *ProductService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	switch {
	case input.Delta > 0:
		if err := s.productRepo.IncrementStock(ctx, input.ProductID, input.Delta); err != nil {
			return nil, err
		}
	case input.Delta < 0:
		ok, err := s.productRepo.DecrementStock(ctx, input.ProductID, -input.Delta)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewBadRequestError("Insufficient stock for adjustment")
		}
	}

	return s.productRepo.GetByID(ctx, input.ProductID)
}
