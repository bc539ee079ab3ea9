// Package whatsapp implements the free-text order pipeline: parsing the
// chat-message template the storefront shares through wa.me links, matching
// the extracted items against the live catalog, and rendering the canonical
// outbound message that the parser itself can re-read.
package whatsapp

import "errors"

// ErrMissingFields is returned by Parse when the client name, the phone or
// every product line is absent from the message.
var ErrMissingFields = errors.New("missing required fields")

// ClientInfo is the client block extracted from an order message.
type ClientInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"` // digits only
	Address string `json:"address,omitempty"`
}

// LineItem is one parsed product entry. LineTotal is in whole colones; the
// template carries no decimals.
type LineItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

// ParsedOrder is the structured result of parsing an order message.
// Subtotal, Tax and Total are extracted independently from their own lines
// and are not recomputed from the items.
type ParsedOrder struct {
	Client   ClientInfo `json:"client"`
	Items    []LineItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Tax      int64      `json:"tax"`
	Total    int64      `json:"total"`
}
