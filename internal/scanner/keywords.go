package scanner

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// InvalidInputError reports an unusable keyword upload. The Reason is shown
// to the operator verbatim, so keep messages self-contained.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// LoadFromCSV parses a one-column CSV and returns the trimmed, non-empty
// values of the first column in input order. The first row is data, never a
// header, and duplicates are preserved; deduplication happens only in the
// matched-keyword set at scan time.
//
// Unlike LoadFromLines, an upload that yields nothing usable is an error:
// the operator chose a file, so silence would hide a broken one.
func LoadFromCSV(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &InvalidInputError{Reason: "keyword file is empty"}
	}

	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse keyword file: %w", err)
	}
	if len(records) == 0 {
		return nil, &InvalidInputError{Reason: "keyword file contains no rows"}
	}
	if len(records[0]) == 0 {
		return nil, &InvalidInputError{Reason: "keyword file has no columns"}
	}

	keywords := make([]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		cell := strings.TrimSpace(record[0])
		if cell == "" {
			continue
		}
		keywords = append(keywords, cell)
	}
	if len(keywords) == 0 {
		return nil, &InvalidInputError{Reason: "keyword file contains no usable keywords"}
	}
	return keywords, nil
}

// LoadFromLines splits newline-delimited text into trimmed, non-empty
// keywords. Empty input yields an empty slice, not an error; manual entry
// is optional.
func LoadFromLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	keywords := make([]string, 0, len(lines))
	for _, line := range lines {
		kw := strings.TrimSpace(line)
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords
}
