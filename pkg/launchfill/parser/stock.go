package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"github.com/xuri/excelize/v2"
)

// StockColumns names the stock headers the reader depends on.
type StockColumns struct {
	Key      string
	Quantity string
	Color    string
	Width    string
}

// StockReadResult holds the stock table and what was skipped while reading it.
type StockReadResult struct {
	Table *models.StockTable
	// HeaderRow is the sheet row holding the headers (1-based).
	HeaderRow int
	// Duplicates lists reference codes seen more than once; the first row wins.
	Duplicates []string
	// Blank counts data rows skipped because their reference cell was empty.
	Blank int
}

// ReadStockTable reads the stock sheet into a reference-indexed table.
// The first non-empty row is the header row.
func ReadStockTable(f *excelize.File, sheetName string, cols StockColumns) (*StockReadResult, error) {
	rows, err := ReadTypedRows(f, sheetName)
	if err != nil {
		return nil, err
	}

	headerRow := findHeaderRow(rows)
	if headerRow < 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrColumnNotFound, sheetName)
	}
	headers, index := headerIndex(rows[headerRow])

	colIdx := make(map[string]int, 4)
	for _, name := range []string{cols.Key, cols.Quantity, cols.Color, cols.Width} {
		idx, ok := index[NormalizeHeader(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q in sheet %q", ErrColumnNotFound, name, sheetName)
		}
		colIdx[name] = idx
	}

	result := &StockReadResult{
		Table:     models.NewStockTable(headers),
		HeaderRow: headerRow + 1,
	}
	for rowIdx := headerRow + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		ref := CellString(cellAt(row, colIdx[cols.Key]))
		if strings.TrimSpace(ref) == "" {
			result.Blank++
			continue
		}

		attrs := make(map[string]any, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if _, set := attrs[h]; set {
				continue
			}
			attrs[h] = cellAt(row, i)
		}

		qtyRaw := cellAt(row, colIdx[cols.Quantity])
		qty, valid := parseQuantity(qtyRaw)
		item := &models.StockItem{
			Ref:           ref,
			Row:           rowIdx + 1,
			Quantity:      qty,
			QuantityRaw:   CellString(qtyRaw),
			QuantityValid: valid,
			Color:         CellString(cellAt(row, colIdx[cols.Color])),
			Width:         CellString(cellAt(row, colIdx[cols.Width])),
			Attrs:         attrs,
		}
		if !result.Table.Add(item) {
			result.Duplicates = append(result.Duplicates, ref)
		}
	}

	return result, nil
}

// parseQuantity converts a quantity cell to a decimal.
// An empty cell is zero. Text that is not a number is reported invalid.
func parseQuantity(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, true
	case int64:
		return decimal.NewFromInt(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, true
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
