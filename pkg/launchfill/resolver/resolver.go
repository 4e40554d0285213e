// Package resolver resolves launch sheet references against a stock table,
// falling back to a same-color, same-width item when a reference is out of
// stock.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"golang.org/x/text/cases"
)

// ErrInvalidQuantity indicates a referenced stock item has a quantity that
// is not a number.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Config controls how resolved items are turned into cell values.
type Config struct {
	// Mappings lists target columns and their stock headers, in write order.
	Mappings []models.ColumnMapping
	// PriceColumn is the target column whose string values are cleaned.
	PriceColumn string
	// PriceMarker is removed from string prices.
	PriceMarker string
}

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	Status models.RowStatus
	// Item is the stock item whose attributes are written. It is the
	// substitute when Status is StatusSubstituted, and nil when nothing is
	// written.
	Item *models.StockItem
	// Original is the item the reference pointed at, if it exists.
	Original *models.StockItem
}

// Substitute returns the substitute reference, or "" if none was used.
func (r Resolution) Substitute() string {
	if r.Status != models.StatusSubstituted || r.Item == nil {
		return ""
	}
	return r.Item.Ref
}

// Resolver looks up references in a read-only stock table.
// It is not safe for concurrent use.
type Resolver struct {
	table *models.StockTable
	cfg   Config
	fold  cases.Caser
}

// New creates a Resolver over table.
func New(table *models.StockTable, cfg Config) *Resolver {
	return &Resolver{
		table: table,
		cfg:   cfg,
		fold:  cases.Fold(),
	}
}

// Resolve looks up ref. A zero-quantity item is replaced by the first
// in-stock alternative with the same color and width; the alternative
// itself is never replaced.
func (r *Resolver) Resolve(ref string) (Resolution, error) {
	item, ok := r.table.Lookup(ref)
	if !ok {
		return Resolution{Status: models.StatusNotFound}, nil
	}
	if !item.QuantityValid {
		return Resolution{}, fmt.Errorf("%w: reference %q (row %d) has quantity %q",
			ErrInvalidQuantity, item.Ref, item.Row, item.QuantityRaw)
	}
	if !IsZeroQuantity(item) {
		return Resolution{Status: models.StatusFound, Item: item, Original: item}, nil
	}

	alt, ok := r.FindAlternative(item)
	if !ok {
		return Resolution{Status: models.StatusNoAlternative, Original: item}, nil
	}
	return Resolution{Status: models.StatusSubstituted, Item: alt, Original: item}, nil
}

// FindAlternative returns the first other item, in table order, whose
// color and width match item's and whose quantity is positive.
func (r *Resolver) FindAlternative(item *models.StockItem) (*models.StockItem, bool) {
	color := r.matchKey(item.Color)
	width := r.matchKey(item.Width)
	for _, candidate := range r.table.Items() {
		if candidate.Ref == item.Ref {
			continue
		}
		if !candidate.QuantityValid || !candidate.Quantity.IsPositive() {
			continue
		}
		if r.matchKey(candidate.Color) == color && r.matchKey(candidate.Width) == width {
			return candidate, true
		}
	}
	return nil, false
}

// Values returns the cell values for item keyed by target column.
// Headers missing from the stock table yield nil.
func (r *Resolver) Values(item *models.StockItem) map[string]any {
	values := make(map[string]any, len(r.cfg.Mappings))
	for _, m := range r.cfg.Mappings {
		v := item.Attr(m.Field)
		if m.Column == r.cfg.PriceColumn {
			v = NormalizePrice(v, r.cfg.PriceMarker)
		}
		values[m.Column] = v
	}
	return values
}

func (r *Resolver) matchKey(s string) string {
	return r.fold.String(strings.TrimSpace(s))
}

// IsZeroQuantity reports whether item counts as out of stock.
// The quantity is truncated towards zero first, so 0.4 is zero while -2
// is not.
func IsZeroQuantity(item *models.StockItem) bool {
	return item.Quantity.Truncate(0).IsZero()
}

// NormalizePrice removes every occurrence of marker from a string price
// and trims the result. Values of other types are returned unchanged.
func NormalizePrice(v any, marker string) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if marker != "" {
		s = strings.ReplaceAll(s, marker, "")
	}
	return strings.TrimSpace(s)
}
