package launchfill

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/parser"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/resolver"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Fill reads the stock and launch workbooks, fills the launch sheet and
// saves it to outPath. Nothing is written when any step fails.
func Fill(stockPath, launchPath, outPath string, opts Options) (*models.Report, error) {
	stock, err := openWorkbook(stockPath, "stock")
	if err != nil {
		return nil, err
	}
	defer stock.Close()

	launch, err := openWorkbook(launchPath, "launch")
	if err != nil {
		return nil, err
	}
	defer launch.Close()

	report, err := fill(stock, launch, opts)
	if err != nil {
		return nil, err
	}
	report.StockFile = filepath.Base(stockPath)
	report.LaunchFile = filepath.Base(launchPath)

	if err := launch.SaveAs(outPath); err != nil {
		return nil, NewProcessingError("launch", "save", err)
	}
	opts.logger().Info("launch sheet saved", zap.String("path", outPath))
	return report, nil
}

// FillReader is Fill for in-memory workbooks. The filled launch workbook
// is written to out only after every row was processed.
func FillReader(stockR, launchR io.Reader, out io.Writer, opts Options) (*models.Report, error) {
	stock, err := excelize.OpenReader(stockR)
	if err != nil {
		return nil, NewProcessingError("stock", "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer stock.Close()

	launch, err := excelize.OpenReader(launchR)
	if err != nil {
		return nil, NewProcessingError("launch", "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer launch.Close()

	report, err := fill(stock, launch, opts)
	if err != nil {
		return nil, err
	}
	if _, err := launch.WriteTo(out); err != nil {
		return nil, NewProcessingError("launch", "save", err)
	}
	return report, nil
}

func openWorkbook(path, document string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewProcessingError(document, "open", fmt.Errorf("%w: %s", ErrFileNotFound, path))
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewProcessingError(document, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	return f, nil
}

func fill(stock, launch *excelize.File, opts Options) (*models.Report, error) {
	layout := opts.Layout
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	read, err := parser.ReadStockTable(stock, layout.StockSheet, parser.StockColumns{
		Key:      layout.StockKey,
		Quantity: layout.QuantityField,
		Color:    layout.ColorField,
		Width:    layout.WidthField,
	})
	if err != nil {
		return nil, NewProcessingError("stock", "read", err)
	}
	table := read.Table
	log.Debug("stock table loaded",
		zap.String("sheet", layout.StockSheet),
		zap.Int("header_row", read.HeaderRow),
		zap.Strings("headers", table.Headers()),
		zap.Int("items", table.Len()),
		zap.Int("blank", read.Blank))
	if len(read.Duplicates) > 0 {
		log.Warn("duplicate stock references, keeping first occurrence", zap.Strings("refs", read.Duplicates))
	}
	mappings := normalizeMappings(layout.Mappings)
	for _, m := range mappings {
		if !table.HasHeader(m.Field) {
			log.Warn("mapped stock column missing, target cells will be cleared",
				zap.String("field", m.Field), zap.String("column", m.Column))
		}
	}

	run, err := parser.ScanReferenceRun(launch, layout.LaunchSheet, layout.StartRow, parser.RunColumns{
		Ref:   layout.RefColumn,
		Color: layout.ColorColumn,
		Width: layout.WidthColumn,
	})
	if err != nil {
		return nil, NewProcessingError("launch", "read", err)
	}

	report := &models.Report{
		Sheet:    layout.LaunchSheet,
		StartRow: layout.StartRow,
		Total:    len(run),
		Rows:     make([]models.RowResult, 0, len(run)),
	}
	res := resolver.New(table, resolver.Config{
		Mappings:    mappings,
		PriceColumn: layout.PriceColumn,
		PriceMarker: layout.PriceMarker,
	})

	for _, lr := range run {
		resolution, err := res.Resolve(lr.Ref)
		if err != nil {
			return nil, NewProcessingError("stock", "resolve", fmt.Errorf("row %d: %w", lr.Row, err))
		}

		result := models.RowResult{
			Row:        lr.Row,
			Reference:  lr.Ref,
			Substitute: resolution.Substitute(),
			Status:     resolution.Status,
		}
		if resolution.Status.Written() {
			written, err := parser.WriteRow(launch, layout.LaunchSheet, lr.Row, res.Values(resolution.Item))
			if err != nil {
				return nil, NewProcessingError("launch", "write", fmt.Errorf("row %d: %w", lr.Row, err))
			}
			result.Written = written
		}

		logRow(log, lr, resolution)
		report.Rows = append(report.Rows, result)
		report.Processed++
		if opts.Progress != nil {
			opts.Progress(result, report.Processed, report.Total)
		}
	}

	log.Info("launch sheet filled",
		zap.Int("total", report.Total),
		zap.Int("found", report.Count(models.StatusFound)),
		zap.Int("substituted", report.Count(models.StatusSubstituted)),
		zap.Int("not_found", report.Count(models.StatusNotFound)),
		zap.Int("no_alternative", report.Count(models.StatusNoAlternative)))
	return report, nil
}

// normalizeMappings spells mapped fields the way stock headers are read.
func normalizeMappings(in []models.ColumnMapping) []models.ColumnMapping {
	out := make([]models.ColumnMapping, len(in))
	for i, m := range in {
		out[i] = models.ColumnMapping{Column: m.Column, Field: parser.NormalizeHeader(m.Field)}
	}
	return out
}

func logRow(log *zap.Logger, lr parser.LaunchRow, resolution resolver.Resolution) {
	fields := []zap.Field{zap.Int("row", lr.Row), zap.String("ref", lr.Ref)}
	switch resolution.Status {
	case models.StatusFound:
		log.Debug("reference found", fields...)
	case models.StatusSubstituted:
		log.Info("reference out of stock, using alternative",
			append(fields,
				zap.String("substitute", resolution.Item.Ref),
				zap.String("color", resolution.Original.Color),
				zap.String("width", resolution.Original.Width))...)
	case models.StatusNoAlternative:
		log.Warn("reference out of stock, no alternative with same color and width",
			append(fields,
				zap.String("color", resolution.Original.Color),
				zap.String("width", resolution.Original.Width))...)
	case models.StatusNotFound:
		log.Warn("reference not found in stock",
			append(fields,
				zap.String("sheet_color", lr.Color),
				zap.String("sheet_width", lr.Width))...)
	}
}
