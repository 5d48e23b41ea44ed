package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/webtrail/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(s *models.ScanSummary, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Webtrail Scan Report v%s\n\n", s.Version))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Home Root | `%s` |\n", s.HomeRoot))
	sb.WriteString(fmt.Sprintf("| Store Root | `%s` |\n", s.StoreRoot))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", s.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(s.Duration)))
	sb.WriteString(fmt.Sprintf("| Users | %d scanned, %d missing |\n", s.ScannedUsers, s.MissingRoots))
	sb.WriteString(fmt.Sprintf("| Processed Files | %d |\n", s.Processed))
	sb.WriteString(fmt.Sprintf("| Skipped Files | %d |\n", s.Skipped))
	sb.WriteString(fmt.Sprintf("| **Changesets Stored** | **%d** |\n", s.Stored))
	sb.WriteString("\n")

	// Per user
	sb.WriteString("## Users\n\n")
	sb.WriteString("| User | Changeset | Domains | Processed | Skipped | Size |\n")
	sb.WriteString("|------|-----------|---------|-----------|---------|------|\n")
	for _, u := range s.Users {
		if u.Missing {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | `%s` | %d | %d | %d | %s |\n",
			u.User, u.Changeset, u.Domains, u.Processed, u.Skipped, FormatBytes(u.StoredBytes)))
	}
	sb.WriteString("\n")

	var failed []*models.UserScan
	for _, u := range s.Users {
		if len(u.Errors) > 0 {
			failed = append(failed, u)
		}
	}
	if len(failed) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, u := range failed {
			for _, e := range u.Errors {
				sb.WriteString(fmt.Sprintf("- **%s**: %s\n", u.User, e))
			}
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
