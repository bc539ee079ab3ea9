package whatsapp

import (
	"regexp"
	"strconv"
	"strings"
)

// Line item patterns, tried in order:
//
//	• Café Negro x 2 = ₡5,000
//	• Café Negro (2) - 5000        (en dash also accepted)
//
// Bullets matching neither pattern are skipped without error; messages in the
// wild carry free-form bullets ("• Entrega mañana") between product lines.
var (
	itemTimesRe = regexp.MustCompile(`^•\s*(.+?)\s+x\s*(\d+)\s*=\s*₡?\s*([0-9][0-9,]*)`)
	itemParenRe = regexp.MustCompile(`^•\s*(.+?)\s*\((\d+)\)\s*[-–]\s*₡?\s*([0-9][0-9,]*)`)
	amountRe    = regexp.MustCompile(`₡?\s*([0-9][0-9,]*)`)
)

// Parse extracts a structured order from a chat message.
//
// The template is line oriented. Client fields are located by label
// ("Cliente:", "Teléfono:"/"Telefono:", "Dirección:"/"Direccion:",
// case-insensitive). The product section opens on a line containing
// "Productos:" or "PRODUCTOS:" (exact case; lowercase "productos:" does not
// open it) and closes on "Subtotal:"/"SUBTOTAL:". Subtotal comes from the
// first line containing "subtotal:", tax from the first line containing
// "iva", and the total from the LAST line containing "total:" — which the
// subtotal line also matches. That last-match rule is inherited from the
// portal this template comes from and is kept on purpose; existing messages
// depend on it.
func Parse(raw string) (*ParsedOrder, error) {
	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	order := &ParsedOrder{}
	order.Client.Name = labelValue(lines, "cliente:")
	order.Client.Phone = digitsOnly(labelValue(lines, "teléfono:", "telefono:"))
	order.Client.Address = labelValue(lines, "dirección:", "direccion:")

	inProducts := false
	for _, line := range lines {
		if strings.Contains(line, "Productos:") || strings.Contains(line, "PRODUCTOS:") {
			inProducts = true
			continue
		}
		if inProducts && (strings.Contains(line, "Subtotal:") || strings.Contains(line, "SUBTOTAL:")) {
			inProducts = false
		}
		if !inProducts || !strings.HasPrefix(line, "•") {
			continue
		}
		if item, ok := parseItemLine(line); ok {
			order.Items = append(order.Items, item)
		}
	}

	subtotalSeen, taxSeen := false, false
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !subtotalSeen && strings.Contains(lower, "subtotal:") {
			order.Subtotal = extractAmount(line)
			subtotalSeen = true
		}
		if !taxSeen && strings.Contains(lower, "iva") {
			order.Tax = extractAmount(line)
			taxSeen = true
		}
		// Last match wins; "subtotal:" also contains "total:".
		if strings.Contains(lower, "total:") {
			order.Total = extractAmount(line)
		}
	}

	if order.Client.Name == "" || order.Client.Phone == "" || len(order.Items) == 0 {
		return nil, ErrMissingFields
	}
	return order, nil
}

// parseItemLine parses one bullet line. Quantities below 1 never occur in
// rendered messages; a hand-edited zero is treated as a non-matching line.
func parseItemLine(line string) (LineItem, bool) {
	m := itemTimesRe.FindStringSubmatch(line)
	if m == nil {
		m = itemParenRe.FindStringSubmatch(line)
	}
	if m == nil {
		return LineItem{}, false
	}

	qty, err := strconv.Atoi(m[2])
	if err != nil || qty < 1 {
		return LineItem{}, false
	}
	total, err := strconv.ParseInt(strings.ReplaceAll(m[3], ",", ""), 10, 64)
	if err != nil {
		return LineItem{}, false
	}

	return LineItem{
		Name:      strings.TrimSpace(m[1]),
		Quantity:  qty,
		LineTotal: total,
	}, true
}

// labelValue returns the text after the first ":" of the first line whose
// lowercase form contains any of the given labels.
func labelValue(lines []string, labels ...string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, label := range labels {
			if !strings.Contains(lower, label) {
				continue
			}
			if idx := strings.Index(line, ":"); idx >= 0 {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// extractAmount returns the first run of digits and thousands separators on
// the line, after an optional ₡ sign. No decimals: colones only.
func extractAmount(line string) int64 {
	m := amountRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
