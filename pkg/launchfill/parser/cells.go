// Package parser reads stock tables and launch sheets from xlsx workbooks
// and writes resolved values back.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates a required sheet is missing from a workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrColumnNotFound indicates a required header is missing from a sheet.
var ErrColumnNotFound = errors.New("column not found")

// hasSheet reports whether the workbook has a sheet with the given name.
func hasSheet(f *excelize.File, sheetName string) bool {
	idx, err := f.GetSheetIndex(sheetName)
	return err == nil && idx >= 0
}

func requireSheet(f *excelize.File, sheetName string) error {
	if !hasSheet(f, sheetName) {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	return nil
}

// ReadTypedRows reads every row of a sheet as typed values.
// Raw (unformatted) cell values are used. Numeric cells become int64 or
// float64, boolean cells become bool, text cells stay strings and empty
// cells are nil.
func ReadTypedRows(f *excelize.File, sheetName string) ([][]any, error) {
	if err := requireSheet(f, sheetName); err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make([][]any, len(rows))
	for rowIdx, row := range rows {
		values := make([]any, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			values[colIdx] = typedValue(cellType, cellValue)
		}
		result[rowIdx] = values
	}
	return result, nil
}

// ReadCell reads a single cell as a typed value (see ReadTypedRows).
func ReadCell(f *excelize.File, sheetName, cell string) (any, error) {
	raw, err := f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return nil, err
	}
	cellType, err := f.GetCellType(sheetName, cell)
	if err != nil {
		return nil, err
	}
	return typedValue(cellType, raw), nil
}

// typedValue converts a raw cell value according to its cell type.
func typedValue(cellType excelize.CellType, raw string) any {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return parseValue(raw)
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	default:
		return raw
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// CellString renders a typed value as text for comparisons.
// nil renders as the empty string.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(t)
	}
}
