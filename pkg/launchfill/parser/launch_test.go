package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newLaunchFile(t *testing.T, cells map[string]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	require.NoError(t, f.SetSheetName("Sheet1", "CHEF PRODUIT"))
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("CHEF PRODUIT", cell, v))
	}
	return saveAndReopen(t, f)
}

var runColumns = RunColumns{Ref: "G", Color: "D", Width: "H"}

func TestScanReferenceRun(t *testing.T) {
	f := newLaunchFile(t, map[string]any{
		"G28": "header",
		"G29": "A1",
		"D29": "Rouge",
		"G30": 12345,
		"H30": 150,
		"G31": "A3",
		"G33": "after-gap",
	})

	run, err := ScanReferenceRun(f, "CHEF PRODUIT", 29, runColumns)
	require.NoError(t, err)
	require.Len(t, run, 3)

	assert.Equal(t, 29, run[0].Row)
	assert.Equal(t, "A1", run[0].Ref)
	assert.Equal(t, "Rouge", run[0].Color)
	assert.Equal(t, "12345", run[1].Ref)
	assert.Equal(t, "150", run[1].Width)
	assert.Equal(t, 31, run[2].Row)
}

func TestScanReferenceRunEmpty(t *testing.T) {
	f := newLaunchFile(t, map[string]any{"G30": "A1"})

	run, err := ScanReferenceRun(f, "CHEF PRODUIT", 29, runColumns)
	require.NoError(t, err)
	assert.Empty(t, run)
}

func TestScanReferenceRunMissingSheet(t *testing.T) {
	f := newLaunchFile(t, nil)

	_, err := ScanReferenceRun(f, "Other", 29, runColumns)
	require.ErrorIs(t, err, ErrSheetNotFound)
}

func TestWriteRow(t *testing.T) {
	f := newLaunchFile(t, map[string]any{"G29": "A1", "K29": "keep"})
	require.NoError(t, f.SetCellFormula("CHEF PRODUIT", "S29", "SUM(H29:J29)"))

	written, err := WriteRow(f, "CHEF PRODUIT", 29, map[string]any{
		"H": int64(150),
		"I": "Coton",
		"R": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"H29": int64(150), "I29": "Coton", "R29": nil}, written)

	f = saveAndReopen(t, f)
	v, err := f.GetCellValue("CHEF PRODUIT", "H29")
	require.NoError(t, err)
	assert.Equal(t, "150", v)
	v, _ = f.GetCellValue("CHEF PRODUIT", "K29")
	assert.Equal(t, "keep", v)
	formula, err := f.GetCellFormula("CHEF PRODUIT", "S29")
	require.NoError(t, err)
	assert.Equal(t, "SUM(H29:J29)", formula)
}
