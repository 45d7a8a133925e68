// Package report composes a Markdown summary of a stored run and renders
// an HTML twin of it.
package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dmcgrath/conflictpanel/internal/database"
)

// Compose builds the Markdown summary for a run: inputs, row counts,
// dropped events, and per-region coverage.
func Compose(run *database.Run, coverage []database.RegionCoverage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Panel run %s\n\n", run.ID)
	if run.CreatedAt != nil {
		fmt.Fprintf(&b, "Generated %s\n\n", *run.CreatedAt)
	}

	b.WriteString("## Inputs\n\n")
	fmt.Fprintf(&b, "- Survey extract: `%s` (%d records)\n", run.SurveyPath, run.SurveyRecords)
	fmt.Fprintf(&b, "- Layout descriptor: `%s`\n", run.LayoutPath)
	fmt.Fprintf(&b, "- Event log: `%s` (%d events)\n", run.EventsPath, run.EventRecords)
	fmt.Fprintf(&b, "- Reference year: %d\n\n", run.ReferenceYear)

	b.WriteString("## Panel\n\n")
	fmt.Fprintf(&b, "- Rows: %d\n", run.PanelRows)
	fmt.Fprintf(&b, "- Regions matched: %d\n", run.RegionsMatched)
	if run.DroppedEvents > 0 {
		fmt.Fprintf(&b, "- **Dropped events: %d** (region name not in the canonical set)\n", run.DroppedEvents)
	} else {
		b.WriteString("- Dropped events: 0\n")
	}
	b.WriteString("\n")

	if len(coverage) > 0 {
		b.WriteString("## Region coverage\n\n")
		b.WriteString("| Region | Events | First year | Last year |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, c := range coverage {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", c.Region, c.Events, c.FirstYear, c.LastYear)
		}
	}

	return b.String()
}

// Write stores the Markdown summary at mdPath and its HTML rendition at
// htmlPath.
func Write(markdown, mdPath, htmlPath string) error {
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return fmt.Errorf("rendering report html: %w", err)
	}
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report html: %w", err)
	}
	return nil
}
