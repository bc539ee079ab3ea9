package whatsapp

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/entity"
)

// ResolvedItem is a parsed line item after catalog matching. UnitPrice is
// derived from the message (round(lineTotal/quantity)), not copied from the
// catalog: the message reflects the price at the time the order was composed.
type ResolvedItem struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	UnitPrice int64      `json:"unit_price"`
	Total     int64      `json:"total"`
	NotFound  bool       `json:"not_found,omitempty"`
}

// ReconcileResult carries the resolved items plus the stock decrements the
// caller should apply. Decrements only lists quantities the catalog's stock
// covers; a short-stocked line takes nothing and produces a warning instead.
type ReconcileResult struct {
	Items      []ResolvedItem
	AllMatched bool
	Decrements map[uuid.UUID]int
	Warnings   []string
}

// Reconcile matches parsed items against the catalog. Names are compared
// lowercased and trimmed; a product matches when the names are equal or one
// contains the other. The first catalog entry that matches wins — there is no
// ranking. Items with no match are kept, flagged NotFound.
//
// Stock is consumed sequentially across lines: each matched line draws from
// what earlier lines left, so a second line for the same product sees the
// reduced remainder and may warn where the first one decremented.
func Reconcile(items []LineItem, catalog []entity.Product) ReconcileResult {
	result := ReconcileResult{
		AllMatched: true,
		Decrements: make(map[uuid.UUID]int),
	}
	remaining := make(map[uuid.UUID]int)

	for _, item := range items {
		resolved := ResolvedItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: int64(math.Round(float64(item.LineTotal) / float64(item.Quantity))),
			Total:     item.LineTotal,
		}

		product := matchProduct(item.Name, catalog)
		if product == nil {
			resolved.NotFound = true
			result.AllMatched = false
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("producto no encontrado en el catálogo: %s", item.Name))
		} else {
			id := product.ID
			resolved.ProductID = &id
			if _, seen := remaining[id]; !seen {
				remaining[id] = product.Stock
			}
			if remaining[id] >= item.Quantity {
				remaining[id] -= item.Quantity
				result.Decrements[id] += item.Quantity
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("stock insuficiente para %s (disponible %d, pedido %d)",
						product.Name, remaining[id], item.Quantity))
			}
		}

		result.Items = append(result.Items, resolved)
	}

	return result
}

func matchProduct(name string, catalog []entity.Product) *entity.Product {
	needle := normalizeName(name)
	for i := range catalog {
		candidate := normalizeName(catalog[i].Name)
		if candidate == needle ||
			strings.Contains(candidate, needle) ||
			strings.Contains(needle, candidate) {
			return &catalog[i]
		}
	}
	return nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
