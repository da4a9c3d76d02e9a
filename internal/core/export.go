package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// The two preview caps are independent presentation policies: the display
// cap matches the original dashboard's text-area limit, the export cap
// keeps CSV rows reviewable in a spreadsheet.
const (
	displayPreviewLimit = 5000
	exportPreviewLimit  = 500
)

// DisplayRun returns a copy of the run with paste content truncated for
// on-screen display.
func DisplayRun(run Run) Run {
	out := run
	out.Reports = make([]Report, len(run.Reports))
	for i, report := range run.Reports {
		report.Content = truncate(report.Content, displayPreviewLimit)
		out.Reports[i] = report
	}
	return out
}

// WriteCSV writes one row per matched paste.
func WriteCSV(w io.Writer, run Run) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Title",
		"URL",
		"Matched Keywords",
		"Unique Keywords",
		"Total Occurrences",
		"Content Length",
		"Content Preview",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, report := range run.Reports {
		row := []string{
			report.Title,
			report.URL,
			strings.Join(report.MatchedKeywords, ", "),
			fmt.Sprintf("%d", report.MatchCount),
			fmt.Sprintf("%d", report.TotalOccurrences),
			fmt.Sprintf("%d", len(report.Content)),
			truncate(report.Content, exportPreviewLimit),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// truncate cuts s to at most limit bytes, backing up so it never splits a
// UTF-8 sequence at the boundary.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
