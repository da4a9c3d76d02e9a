// Package core ties the scanner to the fetch layer: batch scanning,
// operator session state, export projections, and the monitor loop.
package core

import (
	"github.com/octovision/pastewatch/internal/scanner"
	"github.com/octovision/pastewatch/internal/scraper"
)

// ScanConfig is the immutable configuration one scan runs with. Callers
// build a new value and swap it wholesale instead of mutating a shared one.
type ScanConfig struct {
	Keywords      []string `json:"keywords"`
	CaseSensitive bool     `json:"case_sensitive"`
}

// Ready reports whether a scan can run at all.
func (c ScanConfig) Ready() bool {
	return len(c.Keywords) > 0
}

// Report is the union of a fetched paste and its scan result. Only pastes
// with at least one matched keyword become reports.
type Report struct {
	scraper.Paste
	scanner.Result
}

// ScanPastes runs the scan engine over each fetched paste. Pastes carrying
// an error marker or empty content are skipped, as are pastes with no
// matches; output order mirrors input order with the gaps collapsed.
func ScanPastes(pastes []scraper.Paste, cfg ScanConfig) []Report {
	reports := make([]Report, 0, len(pastes))
	for _, paste := range pastes {
		if paste.Error != "" || paste.Content == "" {
			continue
		}
		result := scanner.Scan(paste.Content, cfg.Keywords, cfg.CaseSensitive)
		if !result.MatchesFound {
			continue
		}
		reports = append(reports, Report{Paste: paste, Result: result})
	}
	return reports
}
