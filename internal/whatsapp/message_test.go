package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrderParseRoundTrip(t *testing.T) {
	order := &ParsedOrder{
		Client: ClientInfo{
			Name:    "María Jiménez",
			Phone:   "50688881234",
			Address: "Barrio Escalante, casa 12",
		},
		Items: []LineItem{
			{Name: "Café Negro", Quantity: 2, LineTotal: 5000},
			{Name: "Pan Casero", Quantity: 1, LineTotal: 1500},
		},
		Subtotal: 6500,
		Tax:      845,
		Total:    7345,
	}

	parsed, err := Parse(RenderOrder(order))
	require.NoError(t, err)
	assert.Equal(t, order, parsed)
}

func TestRenderOrderOmitsEmptyAddress(t *testing.T) {
	order := &ParsedOrder{
		Client: ClientInfo{Name: "Ana", Phone: "70000000"},
		Items:  []LineItem{{Name: "Queso", Quantity: 1, LineTotal: 2000}},
		Total:  2000,
	}

	rendered := RenderOrder(order)
	assert.NotContains(t, rendered, "Dirección:")

	parsed, err := Parse(rendered)
	require.NoError(t, err)
	assert.Empty(t, parsed.Client.Address)
}

func TestShareLink(t *testing.T) {
	link := ShareLink("+506 8888-1234", "Hola, ¿está listo el pedido?")
	assert.Equal(t,
		"https://wa.me/50688881234?text=Hola%2C+%C2%BFest%C3%A1+listo+el+pedido%3F",
		link)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{7345, "7,345"},
		{1234567, "1,234,567"},
		{-12500, "-12,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in))
	}
}
