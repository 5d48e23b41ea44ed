package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/webtrail/pkg/models"
)

// generateText generates a text report
func (g *Generator) generateText(s *models.ScanSummary, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("  WEBTRAIL SCAN REPORT v%s\n", s.Version))
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Home Root:        %s\n", s.HomeRoot))
	sb.WriteString(fmt.Sprintf("Store Root:       %s\n", s.StoreRoot))
	sb.WriteString(fmt.Sprintf("Start Time:       %s\n", s.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("End Time:         %s\n", s.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(s.Duration)))
	sb.WriteString(fmt.Sprintf("Workers:          %d\n", s.WorkersUsed))
	sb.WriteString(fmt.Sprintf("Total Users:      %d\n", s.TotalUsers))
	sb.WriteString(fmt.Sprintf("Scanned Users:    %d\n", s.ScannedUsers))
	sb.WriteString(fmt.Sprintf("Missing Roots:    %d\n", s.MissingRoots))
	sb.WriteString(fmt.Sprintf("Processed Files:  %d\n", s.Processed))
	sb.WriteString(fmt.Sprintf("Skipped Files:    %d\n", s.Skipped))
	sb.WriteString(fmt.Sprintf("Stored:           %d\n", s.Stored))
	sb.WriteString("\n")

	// Per user
	sb.WriteString("USERS\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	for _, u := range s.Users {
		if u.Missing {
			sb.WriteString(fmt.Sprintf("%-16s no content root\n", u.User))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-16s %s  domains=%d processed=%d skipped=%d bytes=%d\n",
			u.User, u.Changeset, u.Domains, u.Processed, u.Skipped, u.StoredBytes))
		for _, e := range u.Errors {
			sb.WriteString(fmt.Sprintf("%-16s error: %s\n", "", e))
		}
	}
	sb.WriteString("\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
