package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/internal/notify"
	"github.com/gsolanocr/comercio-api/internal/snapshot"
	"github.com/gsolanocr/comercio-api/internal/whatsapp"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
	"github.com/gsolanocr/comercio-api/pkg/utils"
)

// SaleService handles sale ledger operations
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	center      *notify.Center
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	center *notify.Center,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		center:      center,
	}
}

// GetSale retrieves a sale with its line items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// CompleteSale moves a pending sale to completed. Completed sales stay
// completed; there is no transition back.
func (s *SaleService) CompleteSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status != enum.SaleStatusPendiente {
		return nil, apperror.NewBadRequestError("Only pending sales can be completed")
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, enum.SaleStatusCompletado); err != nil {
		return nil, err
	}

	sale.Status = enum.SaleStatusCompletado
	return sale, nil
}

// POSItemInput is one cart line at checkout
type POSItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreatePOSSaleInput represents a point-of-sale checkout
type CreatePOSSaleInput struct {
	UserID      uuid.UUID
	ClientName  string
	ClientPhone string
	TaxRate     int
	Items       []POSItemInput
}

// CreatePOSSale records a checkout from the in-portal register. Unlike the
// WhatsApp intake, every line must reference a real product, and prices come
// from the catalog at the moment of sale.
func (s *SaleService) CreatePOSSale(ctx context.Context, input *CreatePOSSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A sale needs at least one item")
	}

	var subtotal int64
	var items []entity.SaleItem
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Item quantity must be at least 1")
		}
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}

		ok, err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewConflictError(fmt.Sprintf("Insufficient stock for %s", product.Name))
		}

		lineTotal := product.Price * int64(line.Quantity)
		subtotal += lineTotal
		productID := product.ID
		items = append(items, entity.SaleItem{
			ProductID: &productID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Total:     lineTotal,
		})
	}

	tax := subtotal * int64(input.TaxRate) / 100
	total := subtotal + tax

	clientName := input.ClientName
	if clientName == "" {
		clientName = "Cliente de mostrador"
	}

	sale := &entity.Sale{
		UserID:      input.UserID,
		ReceiptNo:   utils.GenerateReceiptNo(),
		Date:        time.Now(),
		ClientName:  clientName,
		ClientPhone: normalizePhone(input.ClientPhone),
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       total,
		Status:      enum.SaleStatusCompletado,
		Source:      entity.SaleSourcePOS,
		Items:       items,
	}

	if sale.ClientPhone != "" {
		client, err := s.clientRepo.GetByPhone(ctx, sale.ClientPhone)
		if err != nil {
			return nil, err
		}
		if client != nil {
			client.Purchases++
			client.TotalSpent += total
			if err := s.clientRepo.Update(ctx, client); err != nil {
				return nil, err
			}
			sale.ClientID = &client.ID
		}
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	if s.center != nil {
		s.center.Emit(snapshot.Notification{
			Type:        "purchase",
			Title:       "Venta registrada",
			Content:     fmt.Sprintf("Venta %s por ₡%s", sale.ReceiptNo, whatsapp.FormatAmount(total)),
			ClientName:  sale.ClientName,
			ClientPhone: sale.ClientPhone,
			Total:       total,
			SaleID:      sale.ID.String(),
			Reference:   sale.ReceiptNo,
			Source:      entity.SaleSourcePOS,
		})
	}

	return sale, nil
}
