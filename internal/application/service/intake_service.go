package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/internal/notify"
	"github.com/gsolanocr/comercio-api/internal/snapshot"
	"github.com/gsolanocr/comercio-api/internal/whatsapp"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/utils"
)

// IntakeService turns pasted WhatsApp order text into committed sales. The
// pipeline runs parse, catalog reconciliation, stock decrements, the client
// upsert and the sale insert as separate repository calls, in that order,
// without a wrapping transaction: a failure late in the chain leaves the
// earlier writes in place.
type IntakeService struct {
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	saleRepo    repository.SaleRepository
	center      *notify.Center
}

// NewIntakeService creates a new order intake service
func NewIntakeService(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
	center *notify.Center,
) *IntakeService {
	return &IntakeService{
		productRepo: productRepo,
		clientRepo:  clientRepo,
		saleRepo:    saleRepo,
		center:      center,
	}
}

// OrderPreview is the dry-run result: what a commit would record, plus the
// reconciliation warnings the seller should see before confirming.
type OrderPreview struct {
	Client     whatsapp.ClientInfo     `json:"client"`
	Items      []whatsapp.ResolvedItem `json:"items"`
	Subtotal   int64                   `json:"subtotal"`
	Tax        int64                   `json:"tax"`
	Total      int64                   `json:"total"`
	AllMatched bool                    `json:"all_matched"`
	Warnings   []string                `json:"warnings"`
}

// Preview parses and reconciles order text without writing anything.
func (s *IntakeService) Preview(ctx context.Context, text string) (*OrderPreview, error) {
	order, err := whatsapp.Parse(text)
	if err != nil {
		if errors.Is(err, whatsapp.ErrMissingFields) {
			return nil, apperror.NewUnprocessableError("El mensaje no tiene los datos mínimos del pedido (cliente, teléfono y productos)")
		}
		return nil, err
	}

	catalog, err := s.productRepo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	result := whatsapp.Reconcile(order.Items, catalog)

	return &OrderPreview{
		Client:     order.Client,
		Items:      result.Items,
		Subtotal:   order.Subtotal,
		Tax:        order.Tax,
		Total:      order.Total,
		AllMatched: result.AllMatched,
		Warnings:   result.Warnings,
	}, nil
}

// CommitTextInput represents the commit order input
type CommitTextInput struct {
	UserID uuid.UUID
	Text   string
}

// CommitText parses the order text and records it: stock is decremented for
// every matched line the catalog can cover, the client is created or updated
// by phone, and the sale lands as Pendiente. Warnings (unknown products,
// short stock) do not block the commit.
func (s *IntakeService) CommitText(ctx context.Context, input *CommitTextInput) (*entity.Sale, []string, error) {
	order, err := whatsapp.Parse(input.Text)
	if err != nil {
		if errors.Is(err, whatsapp.ErrMissingFields) {
			return nil, nil, apperror.NewUnprocessableError("El mensaje no tiene los datos mínimos del pedido (cliente, teléfono y productos)")
		}
		return nil, nil, err
	}

	catalog, err := s.productRepo.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	result := whatsapp.Reconcile(order.Items, catalog)
	warnings := result.Warnings

	// Stock first. Each decrement is conditional in the database, so a
	// product sold out between preview and commit downgrades to a warning
	// instead of overselling.
	for productID, amount := range result.Decrements {
		ok, err := s.productRepo.DecrementStock(ctx, productID, amount)
		if err != nil {
			return nil, warnings, err
		}
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Stock insuficiente al confirmar el producto %s, inventario sin cambios", productID))
		}
	}

	client, err := s.upsertClient(ctx, input.UserID, order)
	if err != nil {
		return nil, warnings, err
	}

	sale := &entity.Sale{
		UserID:        input.UserID,
		ClientID:      &client.ID,
		ReceiptNo:     utils.GenerateReceiptNo(),
		Date:          time.Now(),
		ClientName:    order.Client.Name,
		ClientPhone:   order.Client.Phone,
		ClientAddress: order.Client.Address,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
		Status:        enum.SaleStatusPendiente,
		Source:        entity.SaleSourceWhatsApp,
	}
	for _, item := range result.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
			NotFound:  item.NotFound,
		})
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, warnings, err
	}

	if s.center != nil {
		s.center.Emit(snapshot.Notification{
			Type:        "purchase",
			Title:       "Nuevo pedido de WhatsApp",
			Content:     fmt.Sprintf("%s confirmó un pedido por ₡%s", order.Client.Name, whatsapp.FormatAmount(order.Total)),
			ClientName:  order.Client.Name,
			ClientPhone: order.Client.Phone,
			Total:       order.Total,
			SaleID:      sale.ID.String(),
			Reference:   sale.ReceiptNo,
			Source:      entity.SaleSourceWhatsApp,
		})
	}

	return sale, warnings, nil
}

// upsertClient keys the CRM on the digits-only phone. An existing client
// gains one purchase and the order total; the stored address is only filled
// in when it was empty, never overwritten.
func (s *IntakeService) upsertClient(ctx context.Context, userID uuid.UUID, order *whatsapp.ParsedOrder) (*entity.Client, error) {
	client, err := s.clientRepo.GetByPhone(ctx, order.Client.Phone)
	if err != nil {
		return nil, err
	}

	if client == nil {
		client = &entity.Client{
			UserID:     userID,
			Name:       order.Client.Name,
			Phone:      order.Client.Phone,
			Address:    order.Client.Address,
			Purchases:  1,
			TotalSpent: order.Total,
		}
		if err := s.clientRepo.Create(ctx, client); err != nil {
			return nil, err
		}
		return client, nil
	}

	client.Purchases++
	client.TotalSpent += order.Total
	if client.Address == "" && order.Client.Address != "" {
		client.Address = order.Client.Address
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// ShareMessage rebuilds the canonical order text for a sale and returns the
// wa.me link that opens it in WhatsApp, addressed to the business phone.
func (s *IntakeService) ShareMessage(ctx context.Context, saleID uuid.UUID, businessPhone string) (string, string, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return "", "", err
	}
	if sale == nil {
		return "", "", apperror.NewNotFoundError("Sale")
	}

	order := &whatsapp.ParsedOrder{
		Client: whatsapp.ClientInfo{
			Name:    sale.ClientName,
			Phone:   sale.ClientPhone,
			Address: sale.ClientAddress,
		},
		Subtotal: sale.Subtotal,
		Tax:      sale.Tax,
		Total:    sale.Total,
	}
	for _, item := range sale.Items {
		order.Items = append(order.Items, whatsapp.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: item.Total,
		})
	}

	message := whatsapp.RenderOrder(order)
	link := whatsapp.ShareLink(businessPhone, message)
	if businessPhone == "" {
		log.Println("intake: business phone not configured, share link has no recipient")
	}
	return message, link, nil
}
