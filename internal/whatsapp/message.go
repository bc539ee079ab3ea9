package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// RenderOrder writes the canonical order message — the exact format Parse is
// built to re-read. Keep the two in sync: render→parse must round-trip.
func RenderOrder(o *ParsedOrder) string {
	var b strings.Builder

	b.WriteString("🛒 *NUEVO PEDIDO*\n\n")
	fmt.Fprintf(&b, "Cliente: %s\n", o.Client.Name)
	fmt.Fprintf(&b, "Teléfono: %s\n", o.Client.Phone)
	if o.Client.Address != "" {
		fmt.Fprintf(&b, "Dirección: %s\n", o.Client.Address)
	}

	b.WriteString("\nProductos:\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "• %s x %d = ₡%s\n", item.Name, item.Quantity, FormatAmount(item.LineTotal))
	}

	fmt.Fprintf(&b, "\nSubtotal: ₡%s\n", FormatAmount(o.Subtotal))
	fmt.Fprintf(&b, "IVA: ₡%s\n", FormatAmount(o.Tax))
	fmt.Fprintf(&b, "TOTAL: ₡%s\n", FormatAmount(o.Total))

	return b.String()
}

// ShareLink builds a wa.me URL that opens a chat with the given phone and the
// message preloaded as the initial text.
func ShareLink(phone, message string) string {
	return "https://wa.me/" + digitsOnly(phone) + "?text=" + url.QueryEscape(message)
}

// FormatAmount renders whole colones with comma thousands separators,
// matching what the parser's amount extraction accepts.
func FormatAmount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
