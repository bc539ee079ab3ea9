package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalMessage = `🛒 *NUEVO PEDIDO*

Cliente: María Jiménez
Teléfono: +506 8888-1234
Dirección: Barrio Escalante, casa 12

Productos:
• Café Negro x 2 = ₡5,000
• Pan Casero x 1 = ₡1,500

Subtotal: ₡6,500
IVA: ₡845
TOTAL: ₡7,345
`

func TestParseCanonicalMessage(t *testing.T) {
	order, err := Parse(canonicalMessage)
	require.NoError(t, err)

	assert.Equal(t, "María Jiménez", order.Client.Name)
	assert.Equal(t, "50688881234", order.Client.Phone)
	assert.Equal(t, "Barrio Escalante, casa 12", order.Client.Address)

	require.Len(t, order.Items, 2)
	assert.Equal(t, LineItem{Name: "Café Negro", Quantity: 2, LineTotal: 5000}, order.Items[0])
	assert.Equal(t, LineItem{Name: "Pan Casero", Quantity: 1, LineTotal: 1500}, order.Items[1])

	assert.Equal(t, int64(6500), order.Subtotal)
	assert.Equal(t, int64(845), order.Tax)
	assert.Equal(t, int64(7345), order.Total)
}

func TestParseLastTotalLineWins(t *testing.T) {
	// "Subtotal:" contains "total:", so a subtotal line after the TOTAL line
	// overwrites the total. Existing messages depend on this.
	raw := `Cliente: Ana
Teléfono: 7000-0000
Productos:
• Queso x 1 = ₡2,000
TOTAL: ₡2,260
Subtotal: ₡2,000
`
	order, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), order.Subtotal)
	assert.Equal(t, int64(2000), order.Total)
}

func TestParseMissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "no client name",
			raw:  "Teléfono: 8888-1234\nProductos:\n• Café x 1 = ₡2,500\n",
		},
		{
			name: "no phone",
			raw:  "Cliente: Ana\nProductos:\n• Café x 1 = ₡2,500\n",
		},
		{
			name: "no items",
			raw:  "Cliente: Ana\nTeléfono: 8888-1234\nProductos:\nSubtotal: ₡0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := Parse(tt.raw)
			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Nil(t, order)
		})
	}
}

func TestParseLowercaseProductsDoesNotOpenSection(t *testing.T) {
	raw := `Cliente: Ana
Teléfono: 8888-1234
productos:
• Café x 1 = ₡2,500
`
	_, err := Parse(raw)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestParseSkipsFreeFormBullets(t *testing.T) {
	raw := `Cliente: Ana
Teléfono: 8888-1234
Productos:
• Café Negro x 2 = ₡5,000
• Entrega mañana por la tarde
• Pan Casero x 1 = ₡1,500
Subtotal: ₡6,500
`
	order, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Café Negro", order.Items[0].Name)
	assert.Equal(t, "Pan Casero", order.Items[1].Name)
}

func TestParseParenthesesItemFormat(t *testing.T) {
	raw := `Cliente: Ana
Teléfono: 8888-1234
Productos:
• Café Negro (2) - 5000
• Pan Casero (1) – ₡1,500
`
	order, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, LineItem{Name: "Café Negro", Quantity: 2, LineTotal: 5000}, order.Items[0])
	assert.Equal(t, LineItem{Name: "Pan Casero", Quantity: 1, LineTotal: 1500}, order.Items[1])
}

func TestParseZeroQuantityBulletSkipped(t *testing.T) {
	raw := `Cliente: Ana
Teléfono: 8888-1234
Productos:
• Café Negro x 0 = ₡0
• Pan Casero x 1 = ₡1,500
`
	order, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Pan Casero", order.Items[0].Name)
}

func TestParseLooseTaxLabel(t *testing.T) {
	raw := `Cliente: Ana
Teléfono: 8888-1234
Productos:
• Café x 1 = ₡2,500
Subtotal: ₡2,500
Incluye iva del 13%: ₡325
TOTAL: ₡2,825
`
	order, err := Parse(raw)
	require.NoError(t, err)
	// The first digits on the tax line win, 13 from "13%".
	assert.Equal(t, int64(13), order.Tax)
	assert.Equal(t, int64(2825), order.Total)
}

func TestParseProductSectionClosesOnSubtotal(t *testing.T) {
	raw := `Cliente: Ana
Teléfono: 8888-1234
Productos:
• Café x 1 = ₡2,500
Subtotal: ₡2,500
• Pan x 1 = ₡1,000
`
	order, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Café", order.Items[0].Name)
}
