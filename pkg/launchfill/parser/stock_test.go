package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testColumns = StockColumns{Key: "RÉF", Quantity: "Qte Phys Reel", Color: "COL", Width: "Laize"}

func newStockFile(t *testing.T, startCell string, rows ...[]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	require.NoError(t, f.SetSheetName("Sheet1", "Feuil1"))

	col, row, err := excelize.CellNameToCoordinates(startCell)
	require.NoError(t, err)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Feuil1", cell, &rows[i]))
	}
	return saveAndReopen(t, f)
}

func TestReadStockTable(t *testing.T) {
	f := newStockFile(t, "A1",
		[]any{"RÉF", "COL", "Laize", "Composition", "Qte Phys Reel"},
		[]any{"A1", "Red", 150, "Coton", 0},
		[]any{"A2", "red", "150 ", "Lin", 5},
		[]any{"", "Blue", 140, "Soie", 3},
		[]any{"A1", "Green", 160, "Laine", 9},
		[]any{"A3", "Blue", 140, "Soie", 2.5},
	)

	res, err := ReadStockTable(f, "Feuil1", testColumns)
	require.NoError(t, err)

	assert.Equal(t, 1, res.HeaderRow)
	assert.Equal(t, 1, res.Blank)
	assert.Equal(t, []string{"A1"}, res.Duplicates)
	require.Equal(t, 3, res.Table.Len())

	a1, ok := res.Table.Lookup("A1")
	require.True(t, ok)
	assert.Equal(t, 2, a1.Row)
	assert.Equal(t, "Red", a1.Color)
	assert.Equal(t, "150", a1.Width)
	assert.True(t, a1.Quantity.IsZero())
	assert.Equal(t, "Coton", a1.Attr("Composition"))

	a2, _ := res.Table.Lookup("A2")
	assert.Equal(t, "150 ", a2.Width)
	assert.True(t, a2.Quantity.Equal(decimal.NewFromInt(5)))

	a3, _ := res.Table.Lookup("A3")
	assert.True(t, a3.Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, int64(140), a3.Attr("Laize"))

	refs := make([]string, 0, res.Table.Len())
	for _, item := range res.Table.Items() {
		refs = append(refs, item.Ref)
	}
	assert.Equal(t, []string{"A1", "A2", "A3"}, refs)
}

func TestReadStockTableHeaderNotOnFirstRow(t *testing.T) {
	f := newStockFile(t, "B3",
		[]any{" RÉF ", "COL", "Laize", "Qte Phys Reel"},
		[]any{"X9", "Noir", 120, 4},
	)

	res, err := ReadStockTable(f, "Feuil1", testColumns)
	require.NoError(t, err)
	assert.Equal(t, 3, res.HeaderRow)
	item, ok := res.Table.Lookup("X9")
	require.True(t, ok)
	assert.Equal(t, 4, item.Row)
}

func TestReadStockTableDecomposedHeader(t *testing.T) {
	// "RE" followed by a combining acute accent.
	f := newStockFile(t, "A1",
		[]any{"RE\u0301F", "COL", "Laize", "Qte Phys Reel"},
		[]any{"X1", "Noir", 120, 4},
	)

	res, err := ReadStockTable(f, "Feuil1", testColumns)
	require.NoError(t, err)
	_, ok := res.Table.Lookup("X1")
	assert.True(t, ok)
}

func TestReadStockTableMissingColumn(t *testing.T) {
	f := newStockFile(t, "A1",
		[]any{"RÉF", "COL", "Qte Phys Reel"},
		[]any{"A1", "Red", 1},
	)

	_, err := ReadStockTable(f, "Feuil1", testColumns)
	require.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "Laize")
}

func TestReadStockTableMissingSheet(t *testing.T) {
	f := newStockFile(t, "A1", []any{"RÉF"})

	_, err := ReadStockTable(f, "Stock", testColumns)
	require.ErrorIs(t, err, ErrSheetNotFound)
}

func TestReadStockTableEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Feuil1"))

	_, err := ReadStockTable(saveAndReopen(t, f), "Feuil1", testColumns)
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		valid bool
	}{
		{"empty", nil, "0", true},
		{"int", int64(7), "7", true},
		{"float", 0.5, "0.5", true},
		{"numeric text", " 12 ", "12", true},
		{"blank text", "  ", "0", true},
		{"text", "n/a", "0", false},
		{"bool", true, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := parseQuantity(tt.input)
			assert.Equal(t, tt.valid, valid)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "RÉF", NormalizeHeader(" RE\u0301F "))
	assert.Equal(t, "Prix Dh", NormalizeHeader("Prix Dh "))
	assert.Empty(t, NormalizeHeader("   "))
}
