package whatsapp

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
)

func testCatalog() []entity.Product {
	products := []entity.Product{
		{Name: "Café Negro", Stock: 10, Price: 2500},
		{Name: "Café Negro Premium", Stock: 4, Price: 4000},
		{Name: "Pan Casero", Stock: 2, Price: 1500},
	}
	for i := range products {
		products[i].ID = uuid.New()
	}
	return products
}

func TestReconcileSubstringMatch(t *testing.T) {
	catalog := testCatalog()
	// "Té Negro" shares a word with "Café Negro" but is not a substring
	// match in either direction.
	items := []LineItem{
		{Name: "café", Quantity: 2, LineTotal: 5000},
		{Name: "Té Negro", Quantity: 1, LineTotal: 1200},
	}

	result := Reconcile(items, catalog)

	require.Len(t, result.Items, 2)
	assert.False(t, result.AllMatched)

	require.NotNil(t, result.Items[0].ProductID)
	assert.Equal(t, catalog[0].ID, *result.Items[0].ProductID)
	assert.False(t, result.Items[0].NotFound)

	assert.Nil(t, result.Items[1].ProductID)
	assert.True(t, result.Items[1].NotFound)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Té Negro")
}

func TestReconcileFirstCatalogHitWins(t *testing.T) {
	catalog := testCatalog()
	items := []LineItem{{Name: "café negro", Quantity: 1, LineTotal: 2500}}

	result := Reconcile(items, catalog)

	require.NotNil(t, result.Items[0].ProductID)
	assert.Equal(t, catalog[0].ID, *result.Items[0].ProductID)
	assert.Equal(t, map[uuid.UUID]int{catalog[0].ID: 1}, result.Decrements)
}

func TestReconcileShortStockWarnsWithoutDecrement(t *testing.T) {
	catalog := testCatalog()
	items := []LineItem{{Name: "Pan Casero", Quantity: 5, LineTotal: 7500}}

	result := Reconcile(items, catalog)

	assert.True(t, result.AllMatched)
	assert.Empty(t, result.Decrements)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "stock insuficiente para Pan Casero")
	require.NotNil(t, result.Items[0].ProductID)
	assert.False(t, result.Items[0].NotFound)
}

func TestReconcileRepeatedLinesConsumeStockSequentially(t *testing.T) {
	// The second line for the same product sees what the first one left:
	// stock 2 covers the first qty-2 line, the second line warns.
	catalog := testCatalog()
	items := []LineItem{
		{Name: "Pan Casero", Quantity: 2, LineTotal: 3000},
		{Name: "Pan Casero", Quantity: 2, LineTotal: 3000},
	}

	result := Reconcile(items, catalog)

	assert.Equal(t, map[uuid.UUID]int{catalog[2].ID: 2}, result.Decrements)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "stock insuficiente para Pan Casero (disponible 0, pedido 2)")
}

func TestReconcileUnitPriceRoundsFromLineTotal(t *testing.T) {
	catalog := testCatalog()
	items := []LineItem{{Name: "Café Negro", Quantity: 3, LineTotal: 1000}}

	result := Reconcile(items, catalog)

	assert.Equal(t, int64(333), result.Items[0].UnitPrice)
	assert.Equal(t, int64(1000), result.Items[0].Total)
}
