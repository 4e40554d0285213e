// Package launchfill fills a launch sheet with attributes looked up in a
// stock workbook.
package launchfill

import (
	"fmt"

	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Layout describes where things live in the stock and launch workbooks.
type Layout struct {
	// StockSheet is the sheet of the stock workbook holding the stock table.
	StockSheet string `mapstructure:"stock_sheet" yaml:"stock_sheet"`
	// StockKey is the stock header holding reference codes.
	StockKey string `mapstructure:"stock_key" yaml:"stock_key"`
	// QuantityField is the stock header holding the physical quantity.
	QuantityField string `mapstructure:"quantity_field" yaml:"quantity_field"`
	// ColorField is the stock header holding the color.
	ColorField string `mapstructure:"color_field" yaml:"color_field"`
	// WidthField is the stock header holding the width.
	WidthField string `mapstructure:"width_field" yaml:"width_field"`

	// LaunchSheet is the sheet of the launch workbook to fill.
	LaunchSheet string `mapstructure:"launch_sheet" yaml:"launch_sheet"`
	// StartRow is the first row of the reference run (1-based).
	StartRow int `mapstructure:"start_row" yaml:"start_row"`
	// RefColumn is the launch column holding reference codes.
	RefColumn string `mapstructure:"ref_column" yaml:"ref_column"`
	// ColorColumn is the launch column holding the requested color.
	ColorColumn string `mapstructure:"color_column" yaml:"color_column"`
	// WidthColumn is the launch column holding the requested width.
	WidthColumn string `mapstructure:"width_column" yaml:"width_column"`
	// PriceColumn is the target column whose string values are stripped of PriceMarker.
	PriceColumn string `mapstructure:"price_column" yaml:"price_column"`
	// PriceMarker is the currency marker removed from string prices.
	PriceMarker string `mapstructure:"price_marker" yaml:"price_marker"`
	// Mappings lists target columns and the stock headers written into them.
	Mappings []models.ColumnMapping `mapstructure:"mappings" yaml:"mappings"`

	// OutputName is the file name of the filled workbook.
	OutputName string `mapstructure:"output_name" yaml:"output_name"`
}

// DefaultLayout returns the layout of the standard "fiche de lancement".
func DefaultLayout() Layout {
	return Layout{
		StockSheet:    "Feuil1",
		StockKey:      "RÉF",
		QuantityField: "Qte Phys Reel",
		ColorField:    "COL",
		WidthField:    "Laize",
		LaunchSheet:   "CHEF PRODUIT",
		StartRow:      29,
		RefColumn:     "G",
		ColorColumn:   "D",
		WidthColumn:   "H",
		PriceColumn:   "R",
		PriceMarker:   "dh",
		Mappings: []models.ColumnMapping{
			{Column: "H", Field: "Laize"},
			{Column: "I", Field: "Composition"},
			{Column: "J", Field: "P/M²"},
			{Column: "L", Field: "FRNS"},
			{Column: "R", Field: "Prix Dh"},
		},
		OutputName: "fiche_lancement_complete.xlsx",
	}
}

// Validate checks that the layout is usable.
func (l Layout) Validate() error {
	if l.StockSheet == "" || l.LaunchSheet == "" {
		return fmt.Errorf("%w: sheet names must be set", ErrInvalidLayout)
	}
	if l.StockKey == "" || l.QuantityField == "" || l.ColorField == "" || l.WidthField == "" {
		return fmt.Errorf("%w: stock key, quantity, color and width fields must be set", ErrInvalidLayout)
	}
	if l.StartRow < 1 {
		return fmt.Errorf("%w: start row must be >= 1, got %d", ErrInvalidLayout, l.StartRow)
	}
	for _, col := range []string{l.RefColumn, l.ColorColumn, l.WidthColumn} {
		if _, err := excelize.ColumnNameToNumber(col); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
	}
	if len(l.Mappings) == 0 {
		return fmt.Errorf("%w: no column mappings", ErrInvalidLayout)
	}
	seen := make(map[string]bool, len(l.Mappings))
	for _, m := range l.Mappings {
		if _, err := excelize.ColumnNameToNumber(m.Column); err != nil {
			return fmt.Errorf("%w: mapping %q: %v", ErrInvalidLayout, m.Field, err)
		}
		if m.Field == "" {
			return fmt.Errorf("%w: mapping for column %s has no field", ErrInvalidLayout, m.Column)
		}
		if seen[m.Column] {
			return fmt.Errorf("%w: column %s mapped twice", ErrInvalidLayout, m.Column)
		}
		if m.Column == l.RefColumn {
			return fmt.Errorf("%w: column %s is the reference column", ErrInvalidLayout, m.Column)
		}
		seen[m.Column] = true
	}
	if l.PriceColumn != "" && !seen[l.PriceColumn] {
		return fmt.Errorf("%w: price column %s is not mapped", ErrInvalidLayout, l.PriceColumn)
	}
	return nil
}

// Options configures a fill run.
type Options struct {
	// Layout describes both workbooks.
	Layout Layout
	// Logger receives per-row and per-stage events. If nil, nothing is logged.
	Logger *zap.Logger
	// Progress, if set, is called after every row of the reference run.
	Progress func(result models.RowResult, processed, total int)
}

// DefaultOptions returns options using DefaultLayout.
func DefaultOptions() Options {
	return Options{
		Layout: DefaultLayout(),
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
