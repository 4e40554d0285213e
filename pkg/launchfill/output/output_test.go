package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"gopkg.in/yaml.v3"
)

func sampleReport() *models.Report {
	return &models.Report{
		StockFile:  "stock.xlsx",
		LaunchFile: "launch.xlsx",
		Sheet:      "CHEF PRODUIT",
		StartRow:   29,
		Total:      3,
		Processed:  3,
		Rows: []models.RowResult{
			{Row: 29, Reference: "A1", Substitute: "A2", Status: models.StatusSubstituted, Written: map[string]any{"R29": "99"}},
			{Row: 30, Reference: "B1", Status: models.StatusFound},
			{Row: 31, Reference: "ZZ", Status: models.StatusNotFound},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "CHEF PRODUIT", decoded["sheet"])
	rows := decoded["rows"].([]any)
	require.Len(t, rows, 3)
	first := rows[0].(map[string]any)
	assert.Equal(t, "substituted", first["status"])
	assert.Equal(t, "A2", first["substitute"])
	_, hasSub := rows[1].(map[string]any)["substitute"]
	assert.False(t, hasSub)

	pretty, err := ToJSON(sampleReport(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"stock_file\"")
}

func TestToYAML(t *testing.T) {
	data, err := ToYAML(sampleReport())
	require.NoError(t, err)

	var decoded struct {
		StartRow int `yaml:"start_row"`
		Rows     []struct {
			Reference string `yaml:"reference"`
			Status    string `yaml:"status"`
		} `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 29, decoded.StartRow)
	require.Len(t, decoded.Rows, 3)
	assert.Equal(t, "not_found", decoded.Rows[2].Status)
}

func TestRowLine(t *testing.T) {
	tests := []struct {
		row  models.RowResult
		want string
	}{
		{models.RowResult{Row: 30, Reference: "B1", Status: models.StatusFound}, `✅ Reference "B1" found in stock (row 30)`},
		{models.RowResult{Row: 29, Reference: "A1", Substitute: "A2", Status: models.StatusSubstituted}, `alternative "A2"`},
		{models.RowResult{Row: 32, Reference: "C1", Status: models.StatusNoAlternative}, `❌ Reference "C1" has zero quantity`},
		{models.RowResult{Row: 31, Reference: "ZZ", Status: models.StatusNotFound}, `❌ Reference "ZZ" not found in stock (row 31)`},
	}
	for _, tt := range tests {
		assert.Contains(t, RowLine(tt.row), tt.want)
	}
}

func TestWriteProgressAndTotals(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	for i, r := range report.Rows {
		require.NoError(t, WriteProgress(&buf, r, i+1, report.Total, false))
	}
	require.NoError(t, WriteTotals(&buf, report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "[1/3] ⚠️"))
	assert.True(t, strings.HasPrefix(lines[2], "[3/3] ❌"))
	assert.Equal(t, "3/3 rows processed: 1 found, 1 substituted, 1 not found, 0 without alternative", lines[3])
}
