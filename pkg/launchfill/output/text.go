package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

// RowLine renders the status line for a single row.
func RowLine(r models.RowResult) string {
	switch r.Status {
	case models.StatusFound:
		return fmt.Sprintf("✅ Reference %q found in stock (row %d)", r.Reference, r.Row)
	case models.StatusSubstituted:
		return fmt.Sprintf("⚠️ Reference %q has zero quantity, using alternative %q with same color and width (row %d)",
			r.Reference, r.Substitute, r.Row)
	case models.StatusNoAlternative:
		return fmt.Sprintf("❌ Reference %q has zero quantity and no alternative with same color and width (row %d)",
			r.Reference, r.Row)
	case models.StatusNotFound:
		return fmt.Sprintf("❌ Reference %q not found in stock (row %d)", r.Reference, r.Row)
	default:
		return fmt.Sprintf("? Reference %q: %s (row %d)", r.Reference, r.Status, r.Row)
	}
}

func statusColor(s models.RowStatus) *color.Color {
	switch s {
	case models.StatusFound:
		return okColor
	case models.StatusSubstituted:
		return warnColor
	default:
		return errColor
	}
}

// WriteProgress writes the status line of a row prefixed with the run
// progress, colored when useColor is set.
func WriteProgress(w io.Writer, r models.RowResult, processed, total int, useColor bool) error {
	line := RowLine(r)
	if useColor {
		line = statusColor(r.Status).Sprint(line)
	}
	_, err := fmt.Fprintf(w, "[%d/%d] %s\n", processed, total, line)
	return err
}

// WriteTotals writes the per-status row counts of a report.
func WriteTotals(w io.Writer, report *models.Report) error {
	_, err := fmt.Fprintf(w, "%d/%d rows processed: %d found, %d substituted, %d not found, %d without alternative\n",
		report.Processed, report.Total,
		report.Count(models.StatusFound),
		report.Count(models.StatusSubstituted),
		report.Count(models.StatusNotFound),
		report.Count(models.StatusNoAlternative))
	return err
}
