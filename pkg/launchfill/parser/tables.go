package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// findHeaderRow returns the index of the first row holding any data, or -1.
func findHeaderRow(rows [][]any) int {
	for rowIdx, row := range rows {
		for _, cell := range row {
			if cell != nil && strings.TrimSpace(CellString(cell)) != "" {
				return rowIdx
			}
		}
	}
	return -1
}

// NormalizeHeader trims a header and composes its Unicode form, so that
// "RÉF" typed with a combining accent matches the precomposed spelling.
func NormalizeHeader(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// headerIndex maps normalized header names to column indexes (0-based).
// The first occurrence of a repeated header wins.
func headerIndex(row []any) ([]string, map[string]int) {
	headers := make([]string, len(row))
	index := make(map[string]int, len(row))
	for colIdx, cell := range row {
		name := NormalizeHeader(CellString(cell))
		headers[colIdx] = name
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = colIdx
		}
	}
	return headers, index
}

// cellAt returns the value at colIdx, or nil when the row is shorter.
func cellAt(row []any, colIdx int) any {
	if colIdx < 0 || colIdx >= len(row) {
		return nil
	}
	return row[colIdx]
}
