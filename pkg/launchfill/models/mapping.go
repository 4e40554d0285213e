package models

// ColumnMapping pairs a launch sheet column with a stock header.
type ColumnMapping struct {
	// Column is the launch sheet column letter (e.g. "H").
	Column string `json:"column" yaml:"column" mapstructure:"column"`
	// Field is the stock sheet header name (e.g. "Laize").
	Field string `json:"field" yaml:"field" mapstructure:"field"`
}

// LaunchRef is one entry of the reference run of a launch sheet.
type LaunchRef struct {
	// Row is the sheet row (1-based).
	Row int `json:"row"`
	// Ref is the reference code found in the reference column.
	Ref string `json:"ref"`
}
