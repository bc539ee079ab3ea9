package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// ClientRepository defines the interface for CRM client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	// GetByPhone looks a client up by exact digits-only phone match, the
	// key the order-intake ledger upserts on.
	GetByPhone(ctx context.Context, phone string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
	TopBySpend(ctx context.Context, limit int) ([]entity.Client, error)
	Count(ctx context.Context) (int64, error)
}
