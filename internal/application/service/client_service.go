package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// ClientService handles CRM client operations
type ClientService struct {
	clientRepo repository.ClientRepository
	saleRepo   repository.SaleRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, saleRepo repository.SaleRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo, saleRepo: saleRepo}
}

// normalizePhone strips everything but digits. Phones are stored and matched
// in this form everywhere.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	UserID  uuid.UUID
	Name    string
	Phone   string
	Email   *string
	Address string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	phone := normalizePhone(input.Phone)
	if phone == "" {
		return nil, apperror.NewBadRequestError("Phone is required")
	}

	existing, err := s.clientRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A client with this phone already exists")
	}

	client := &entity.Client{
		UserID:  input.UserID,
		Name:    input.Name,
		Phone:   phone,
		Email:   input.Email,
		Address: input.Address,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients with pagination and search
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	ID      uuid.UUID
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.Phone != nil {
		phone := normalizePhone(*input.Phone)
		if phone != client.Phone {
			existing, err := s.clientRepo.GetByPhone(ctx, phone)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != client.ID {
				return nil, apperror.NewConflictError("A client with this phone already exists")
			}
			client.Phone = phone
		}
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Address != nil {
		client.Address = *input.Address
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	return s.clientRepo.Delete(ctx, id)
}

// GetClientSales returns the sales recorded under the client's phone
func (s *ClientService) GetClientSales(ctx context.Context, id uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	sales, total, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination:  params,
		ClientPhone: client.Phone,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// TopClients returns the highest-spending clients
func (s *ClientService) TopClients(ctx context.Context, limit int) ([]entity.Client, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	return s.clientRepo.TopBySpend(ctx, limit)
}
