package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		// Milliseconds
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		// Seconds
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		// Minutes and seconds
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	// Hours, minutes and seconds
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// FormatBytes formats a byte count with a binary unit
func FormatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%dB", n)
}

// Generator generates scan reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// Generate renders the summary to the console, or to a file when a report
// format is configured. It returns the absolute report path.
func (g *Generator) Generate(summary *models.ScanSummary) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	// If no format specified, print to console
	if format == "" {
		g.printConsole(summary)
		return "", nil
	}

	// Generate default filename if not specified
	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		switch format {
		case "json":
			outputFile = fmt.Sprintf("WEBTRAIL-REPORT-%s.json", timestamp)
		case "txt", "text":
			outputFile = fmt.Sprintf("WEBTRAIL-REPORT-%s.txt", timestamp)
		case "md", "markdown":
			outputFile = fmt.Sprintf("WEBTRAIL-REPORT-%s.md", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(summary, outputFile)
	case "txt", "text":
		err = g.generateText(summary, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(summary, outputFile)
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	// Get absolute path
	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// printConsole prints the summary with colors
func (g *Generator) printConsole(s *models.ScanSummary) {
	w := g.out
	fmt.Fprintln(w)

	// Summary header
	fmt.Fprintf(w, "%s%sSCAN COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Fprintln(w)

	// Stats
	fmt.Fprintf(w, "  %sHome:%s      %s\n", colorGray, colorReset, s.HomeRoot)
	fmt.Fprintf(w, "  %sStore:%s     %s\n", colorGray, colorReset, s.StoreRoot)
	fmt.Fprintf(w, "  %sUsers:%s     %d scanned, %d without content root\n", colorGray, colorReset, s.ScannedUsers, s.MissingRoots)
	fmt.Fprintf(w, "  %sFiles:%s     %d processed, %d skipped\n", colorGray, colorReset, s.Processed, s.Skipped)
	fmt.Fprintf(w, "  %sDuration:%s  %s\n", colorGray, colorReset, FormatDuration(s.Duration))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
	for _, u := range s.Users {
		if u.Missing {
			continue
		}
		status := fmt.Sprintf("%s✓%s", colorGreen, colorReset)
		if len(u.Errors) > 0 {
			status = fmt.Sprintf("%s✗%s", colorRed, colorReset)
		}
		fmt.Fprintf(w, "\n  %s %s%s%s\n", status, colorBold, u.User, colorReset)
		fmt.Fprintf(w, "      %sChangeset:%s %s\n", colorGray, colorReset, u.Changeset)
		fmt.Fprintf(w, "      %sDomains:%s   %d (%d files, %d skipped)\n", colorGray, colorReset, u.Domains, u.Processed, u.Skipped)
		if u.StoredBytes > 0 {
			fmt.Fprintf(w, "      %sStored:%s    %s (%s)\n", colorGray, colorReset, u.StoredPath, FormatBytes(u.StoredBytes))
		}
		for _, e := range u.Errors {
			fmt.Fprintf(w, "      %sError:%s     %s%s%s\n", colorGray, colorReset, colorYellow, cleanFragment(e, 100), colorReset)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
	fmt.Fprintln(w)
}

// cleanFragment cleans and truncates text for console output
func cleanFragment(fragment string, maxLen int) string {
	// Replace newlines and tabs with spaces
	fragment = strings.ReplaceAll(fragment, "\n", " ")
	fragment = strings.ReplaceAll(fragment, "\r", "")
	fragment = strings.ReplaceAll(fragment, "\t", " ")

	// Collapse multiple spaces
	for strings.Contains(fragment, "  ") {
		fragment = strings.ReplaceAll(fragment, "  ", " ")
	}

	fragment = strings.TrimSpace(fragment)

	if len(fragment) > maxLen {
		fragment = fragment[:maxLen] + "..."
	}

	return fragment
}
