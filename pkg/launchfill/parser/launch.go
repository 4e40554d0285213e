package parser

import (
	"fmt"
	"sort"

	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"github.com/xuri/excelize/v2"
)

// RunColumns names the launch sheet columns read for each row of the run.
type RunColumns struct {
	Ref   string
	Color string
	Width string
}

// LaunchRow is one row of the reference run with the context columns
// read alongside the reference.
type LaunchRow struct {
	models.LaunchRef
	Color string
	Width string
}

// ScanReferenceRun reads the reference column from startRow downwards and
// stops at the first empty reference cell. Formula cells yield their
// calculated value.
func ScanReferenceRun(f *excelize.File, sheetName string, startRow int, cols RunColumns) ([]LaunchRow, error) {
	if err := requireSheet(f, sheetName); err != nil {
		return nil, err
	}
	if startRow < 1 {
		return nil, fmt.Errorf("invalid start row %d", startRow)
	}

	var run []LaunchRow
	for row := startRow; ; row++ {
		ref, err := ReadCell(f, sheetName, cellName(cols.Ref, row))
		if err != nil {
			return nil, err
		}
		if ref == nil {
			break
		}
		lr := LaunchRow{LaunchRef: models.LaunchRef{Row: row, Ref: CellString(ref)}}
		if lr.Color, err = readCellString(f, sheetName, cols.Color, row); err != nil {
			return nil, err
		}
		if lr.Width, err = readCellString(f, sheetName, cols.Width, row); err != nil {
			return nil, err
		}
		run = append(run, lr)
	}
	return run, nil
}

// WriteRow writes values (keyed by column letter) into the given row.
// Only the named cells are touched. It returns the values keyed by cell name.
func WriteRow(f *excelize.File, sheetName string, row int, values map[string]any) (map[string]any, error) {
	columns := make([]string, 0, len(values))
	for col := range values {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	written := make(map[string]any, len(values))
	for _, col := range columns {
		cell := cellName(col, row)
		if err := f.SetCellValue(sheetName, cell, values[col]); err != nil {
			return written, fmt.Errorf("write %s: %w", cell, err)
		}
		written[cell] = values[col]
	}
	return written, nil
}

func readCellString(f *excelize.File, sheetName, col string, row int) (string, error) {
	if col == "" {
		return "", nil
	}
	v, err := ReadCell(f, sheetName, cellName(col, row))
	return CellString(v), err
}

func cellName(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
