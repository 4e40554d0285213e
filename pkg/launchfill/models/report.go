package models

// RowStatus is the outcome of resolving one launch sheet row.
type RowStatus string

const (
	// StatusFound means the reference was in stock and its attributes were written.
	StatusFound RowStatus = "found"
	// StatusSubstituted means the reference had zero quantity and an
	// alternative with the same color and width was written instead.
	StatusSubstituted RowStatus = "substituted"
	// StatusNotFound means the reference is absent from stock.
	StatusNotFound RowStatus = "not_found"
	// StatusNoAlternative means the reference had zero quantity and no
	// alternative was available.
	StatusNoAlternative RowStatus = "no_alternative"
)

// Written reports whether rows with this status had their target cells set.
func (s RowStatus) Written() bool {
	return s == StatusFound || s == StatusSubstituted
}

// RowResult describes what happened to a single launch sheet row.
type RowResult struct {
	// Row is the launch sheet row (1-based).
	Row int `json:"row" yaml:"row"`
	// Reference is the reference code read from the row.
	Reference string `json:"reference" yaml:"reference"`
	// Substitute is the alternative reference used, if any.
	Substitute string `json:"substitute,omitempty" yaml:"substitute,omitempty"`
	// Status is the resolution outcome.
	Status RowStatus `json:"status" yaml:"status"`
	// Written maps target cell names to the values written.
	Written map[string]any `json:"written,omitempty" yaml:"written,omitempty"`
}

// Report summarizes a complete run.
type Report struct {
	// StockFile is the stock workbook name (no path).
	StockFile string `json:"stock_file" yaml:"stock_file"`
	// LaunchFile is the launch workbook name (no path).
	LaunchFile string `json:"launch_file" yaml:"launch_file"`
	// Sheet is the launch sheet name.
	Sheet string `json:"sheet" yaml:"sheet"`
	// StartRow is the first row of the reference run.
	StartRow int `json:"start_row" yaml:"start_row"`
	// Total is the length of the reference run.
	Total int `json:"total" yaml:"total"`
	// Processed is the number of rows handled.
	Processed int `json:"processed" yaml:"processed"`
	// Rows holds the per-row results in sheet order.
	Rows []RowResult `json:"rows" yaml:"rows"`
}

// Count returns the number of rows with the given status.
func (r *Report) Count(status RowStatus) int {
	n := 0
	for _, row := range r.Rows {
		if row.Status == status {
			n++
		}
	}
	return n
}
