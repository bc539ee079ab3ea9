package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	domainRepo "github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/internal/notify"
	"github.com/gsolanocr/comercio-api/internal/snapshot"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (f *fakeProductRepo) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	out := f.snapshotCatalog()
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Catalog(ctx context.Context) ([]entity.Product, error) {
	return f.snapshotCatalog(), nil
}

func (f *fakeProductRepo) snapshotCatalog() []entity.Product {
	out := make([]entity.Product, len(f.products))
	for i, p := range f.products {
		out[i] = *p
	}
	return out
}

func (f *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	for _, p := range f.products {
		if p.ID == id {
			if p.Stock < amount {
				return false, nil
			}
			p.Stock -= amount
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) IncrementStock(ctx context.Context, id uuid.UUID, amount int) error {
	for _, p := range f.products {
		if p.ID == id {
			p.Stock += amount
		}
	}
	return nil
}

func (f *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

type fakeClientRepo struct {
	clients []*entity.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.clients = append(f.clients, c)
	return nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) GetByPhone(ctx context.Context, phone string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *entity.Client) error {
	for i, existing := range f.clients {
		if existing.ID == c.ID {
			f.clients[i] = c
		}
	}
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeClientRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	return nil, 0, nil
}

func (f *fakeClientRepo) TopBySpend(ctx context.Context, limit int) ([]entity.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.clients)), nil
}

type fakeSaleRepo struct {
	sales []*entity.Sale
}

func (f *fakeSaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.sales = append(f.sales, s)
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSaleRepo) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (f *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	for _, s := range f.sales {
		if s.ID == id {
			s.Status = status
		}
	}
	return nil
}

func (f *fakeSaleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.sales)), nil
}

func (f *fakeSaleRepo) CountByStatus(ctx context.Context, status enum.SaleStatus) (int64, error) {
	var n int64
	for _, s := range f.sales {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeSaleRepo) RevenueBetween(ctx context.Context, from, to time.Time, status *enum.SaleStatus) (int64, error) {
	return 0, nil
}

func (f *fakeSaleRepo) DailyRevenue(ctx context.Context, days int) ([]domainRepo.DailyRevenuePoint, error) {
	return nil, nil
}

const orderText = `🛒 *NUEVO PEDIDO*

Cliente: María Jiménez
Teléfono: 8888-1234
Dirección: Barrio Escalante, San José

Productos:
• Café Negro x 2 = ₡5,000
• Pan Casero x 1 = ₡1,500

Subtotal: ₡6,500
IVA: ₡845
TOTAL: ₡7,345`

func newIntakeFixture(t *testing.T) (*IntakeService, *fakeProductRepo, *fakeClientRepo, *fakeSaleRepo, *notify.Center) {
	t.Helper()
	products := &fakeProductRepo{}
	clients := &fakeClientRepo{}
	sales := &fakeSaleRepo{}
	store := snapshot.Open(filepath.Join(t.TempDir(), "state.json"))
	center := notify.NewCenter(store)
	svc := NewIntakeService(products, clients, sales, center)
	return svc, products, clients, sales, center
}

func TestCommitTextCreatesPendingSaleAndClient(t *testing.T) {
	svc, products, clients, sales, center := newIntakeFixture(t)
	userID := uuid.New()

	cafe := &entity.Product{ID: uuid.New(), Name: "Café Negro", Code: "PROD-1", Stock: 10, Price: 2500}
	pan := &entity.Product{ID: uuid.New(), Name: "Pan Casero", Code: "PROD-2", Stock: 5, Price: 1500}
	products.products = append(products.products, cafe, pan)

	sale, warnings, err := svc.CommitText(context.Background(), &CommitTextInput{UserID: userID, Text: orderText})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, sales.sales, 1)
	assert.Equal(t, enum.SaleStatusPendiente, sale.Status)
	assert.Equal(t, entity.SaleSourceWhatsApp, sale.Source)
	assert.Equal(t, int64(6500), sale.Subtotal)
	assert.Equal(t, int64(845), sale.Tax)
	assert.Equal(t, int64(7345), sale.Total)
	assert.Equal(t, "María Jiménez", sale.ClientName)
	assert.Equal(t, "88881234", sale.ClientPhone)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, int64(2500), sale.Items[0].UnitPrice)

	// Stock decremented
	assert.Equal(t, 8, cafe.Stock)
	assert.Equal(t, 4, pan.Stock)

	// Client ledger
	require.Len(t, clients.clients, 1)
	client := clients.clients[0]
	assert.Equal(t, 1, client.Purchases)
	assert.Equal(t, int64(7345), client.TotalSpent)
	assert.Equal(t, "Barrio Escalante, San José", client.Address)

	// Notification emitted
	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, "purchase", list[0].Type)
	assert.Equal(t, int64(7345), list[0].Total)
}

func TestCommitTextUpsertsExistingClientByPhone(t *testing.T) {
	svc, products, clients, _, _ := newIntakeFixture(t)
	userID := uuid.New()

	products.products = append(products.products,
		&entity.Product{ID: uuid.New(), Name: "Café Negro", Code: "PROD-1", Stock: 10, Price: 2500},
		&entity.Product{ID: uuid.New(), Name: "Pan Casero", Code: "PROD-2", Stock: 5, Price: 1500},
	)
	existing := &entity.Client{
		ID:         uuid.New(),
		Name:       "María J.",
		Phone:      "88881234",
		Address:    "Dirección original",
		Purchases:  3,
		TotalSpent: 10000,
	}
	clients.clients = append(clients.clients, existing)

	_, _, err := svc.CommitText(context.Background(), &CommitTextInput{UserID: userID, Text: orderText})
	require.NoError(t, err)

	require.Len(t, clients.clients, 1)
	client := clients.clients[0]
	assert.Equal(t, 4, client.Purchases)
	assert.Equal(t, int64(17345), client.TotalSpent)
	// The stored address survives; the order's address does not overwrite it.
	assert.Equal(t, "Dirección original", client.Address)
}

func TestCommitTextBackfillsEmptyAddress(t *testing.T) {
	svc, products, clients, _, _ := newIntakeFixture(t)

	products.products = append(products.products,
		&entity.Product{ID: uuid.New(), Name: "Café Negro", Code: "PROD-1", Stock: 10, Price: 2500},
		&entity.Product{ID: uuid.New(), Name: "Pan Casero", Code: "PROD-2", Stock: 5, Price: 1500},
	)
	clients.clients = append(clients.clients, &entity.Client{
		ID: uuid.New(), Name: "María", Phone: "88881234",
	})

	_, _, err := svc.CommitText(context.Background(), &CommitTextInput{UserID: uuid.New(), Text: orderText})
	require.NoError(t, err)
	assert.Equal(t, "Barrio Escalante, San José", clients.clients[0].Address)
}

func TestCommitTextUnknownProductStillCommits(t *testing.T) {
	svc, products, _, sales, _ := newIntakeFixture(t)

	// Only one of the two ordered products exists.
	products.products = append(products.products,
		&entity.Product{ID: uuid.New(), Name: "Café Negro", Code: "PROD-1", Stock: 10, Price: 2500},
	)

	sale, warnings, err := svc.CommitText(context.Background(), &CommitTextInput{UserID: uuid.New(), Text: orderText})
	require.NoError(t, err)
	require.Len(t, sales.sales, 1)
	require.Len(t, sale.Items, 2)

	assert.False(t, sale.Items[0].NotFound)
	assert.True(t, sale.Items[1].NotFound)
	assert.Nil(t, sale.Items[1].ProductID)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Pan Casero")
}

func TestCommitTextShortStockLeavesInventoryUntouched(t *testing.T) {
	svc, products, _, sales, _ := newIntakeFixture(t)

	cafe := &entity.Product{ID: uuid.New(), Name: "Café Negro", Code: "PROD-1", Stock: 1, Price: 2500}
	pan := &entity.Product{ID: uuid.New(), Name: "Pan Casero", Code: "PROD-2", Stock: 5, Price: 1500}
	products.products = append(products.products, cafe, pan)

	_, warnings, err := svc.CommitText(context.Background(), &CommitTextInput{UserID: uuid.New(), Text: orderText})
	require.NoError(t, err)
	require.Len(t, sales.sales, 1)

	// Two ordered, one in stock: no partial decrement.
	assert.Equal(t, 1, cafe.Stock)
	assert.Equal(t, 4, pan.Stock)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "stock insuficiente")
}

func TestCommitTextRepeatedProductLinesDecrementWhatStockCovers(t *testing.T) {
	svc, products, _, sales, _ := newIntakeFixture(t)

	pan := &entity.Product{ID: uuid.New(), Name: "Pan Casero", Code: "PROD-2", Stock: 3, Price: 1500}
	products.products = append(products.products, pan)

	repeated := `Cliente: Ana
Teléfono: 7000-0000
Productos:
• Pan Casero x 2 = ₡3,000
• Pan Casero x 2 = ₡3,000
TOTAL: ₡6,000`

	_, warnings, err := svc.CommitText(context.Background(), &CommitTextInput{UserID: uuid.New(), Text: repeated})
	require.NoError(t, err)
	require.Len(t, sales.sales, 1)

	// The first line takes 2 of the 3 in stock; the second warns instead of
	// pushing the combined decrement past what the inventory holds.
	assert.Equal(t, 1, pan.Stock)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "stock insuficiente para Pan Casero")
}

func TestCommitTextRejectsIncompleteMessage(t *testing.T) {
	svc, _, _, sales, _ := newIntakeFixture(t)

	_, _, err := svc.CommitText(context.Background(), &CommitTextInput{
		UserID: uuid.New(),
		Text:   "Teléfono: 8888-1234\n\nProductos:\n• Café x 1 = ₡2,500\n\nTOTAL: ₡2,500",
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Empty(t, sales.sales)
}

func TestPreviewWritesNothing(t *testing.T) {
	svc, products, clients, sales, _ := newIntakeFixture(t)

	cafe := &entity.Product{ID: uuid.New(), Name: "Café Negro", Code: "PROD-1", Stock: 10, Price: 2500}
	products.products = append(products.products, cafe)

	preview, err := svc.Preview(context.Background(), orderText)
	require.NoError(t, err)

	assert.Equal(t, "María Jiménez", preview.Client.Name)
	require.Len(t, preview.Items, 2)
	assert.False(t, preview.AllMatched)

	assert.Equal(t, 10, cafe.Stock)
	assert.Empty(t, clients.clients)
	assert.Empty(t, sales.sales)
}
