package report

import (
	"encoding/json"
	"os"

	"github.com/IvanShishkin/webtrail/pkg/models"
)

// generateJSON generates a JSON report
func (g *Generator) generateJSON(summary *models.ScanSummary, outputFile string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(outputFile, data, 0644)
}
