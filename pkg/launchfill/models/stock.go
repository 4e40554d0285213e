// Package models defines data structures shared by the stock reader, the
// reference resolver and the report writers.
package models

import "github.com/shopspring/decimal"

// StockItem represents a single row of the stock sheet.
type StockItem struct {
	// Ref is the reference code (lookup key).
	Ref string `json:"ref"`
	// Row is the sheet row the item was read from (1-based).
	Row int `json:"row"`
	// Quantity is the physical quantity on hand.
	Quantity decimal.Decimal `json:"quantity"`
	// QuantityRaw is the quantity cell as read from the sheet.
	QuantityRaw string `json:"quantity_raw,omitempty"`
	// QuantityValid is false when QuantityRaw is not a number.
	QuantityValid bool `json:"quantity_valid"`
	// Color is the color attribute used for alternative matching.
	Color string `json:"color"`
	// Width is the width (laize) attribute used for alternative matching.
	Width string `json:"width"`
	// Attrs maps stock header name to typed cell value.
	Attrs map[string]any `json:"attrs"`
}

// Attr returns the value of the named attribute, or nil if absent.
func (s *StockItem) Attr(field string) any {
	if s == nil || s.Attrs == nil {
		return nil
	}
	return s.Attrs[field]
}

// StockTable is an ordered, reference-indexed view of the stock sheet.
// It is built once and only read afterwards.
type StockTable struct {
	headers []string
	items   []*StockItem
	index   map[string]*StockItem
}

// NewStockTable creates an empty table with the given header row.
func NewStockTable(headers []string) *StockTable {
	return &StockTable{
		headers: append([]string(nil), headers...),
		index:   make(map[string]*StockItem),
	}
}

// Add appends an item. The first occurrence of a reference wins; Add
// returns false for a duplicate, which is then not indexed or listed.
func (t *StockTable) Add(item *StockItem) bool {
	if _, exists := t.index[item.Ref]; exists {
		return false
	}
	t.index[item.Ref] = item
	t.items = append(t.items, item)
	return true
}

// Lookup returns the item for a reference code.
func (t *StockTable) Lookup(ref string) (*StockItem, bool) {
	item, ok := t.index[ref]
	return item, ok
}

// Items returns the items in sheet order.
func (t *StockTable) Items() []*StockItem {
	return t.items
}

// Headers returns the header row.
func (t *StockTable) Headers() []string {
	return t.headers
}

// HasHeader reports whether the header row contains name.
func (t *StockTable) HasHeader(name string) bool {
	for _, h := range t.headers {
		if h == name {
			return true
		}
	}
	return false
}

// Len returns the number of indexed items.
func (t *StockTable) Len() int {
	return len(t.items)
}
