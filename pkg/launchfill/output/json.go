// Package output serializes fill reports.
package output

import (
	"encoding/json"

	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"gopkg.in/yaml.v3"
)

// ToJSON serializes a report to JSON.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// ToYAML serializes a report to YAML.
func ToYAML(report *models.Report) ([]byte, error) {
	return yaml.Marshal(report)
}
