package core_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octovision/pastewatch/internal/core"
	"github.com/octovision/pastewatch/internal/scanner"
	"github.com/octovision/pastewatch/internal/scraper"
)

func sampleRun(content string) core.Run {
	return core.Run{
		ID:         "run-1",
		PastesSeen: 1,
		Reports: []core.Report{{
			Paste: scraper.Paste{ID: "abc", Title: "Dump", URL: "https://p/abc", Content: content},
			Result: scanner.Result{
				MatchesFound:     true,
				MatchedKeywords:  []string{"password", "token"},
				MatchCount:       2,
				TotalOccurrences: 7,
			},
		}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, core.WriteCSV(&buf, sampleRun("password token body")))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"Title", "URL", "Matched Keywords", "Unique Keywords",
		"Total Occurrences", "Content Length", "Content Preview",
	}, rows[0])
	assert.Equal(t, []string{
		"Dump", "https://p/abc", "password, token", "2", "7", "19", "password token body",
	}, rows[1])
}

func TestWriteCSV_PreviewCapped(t *testing.T) {
	long := strings.Repeat("x", 2000)
	var buf bytes.Buffer
	require.NoError(t, core.WriteCSV(&buf, sampleRun(long)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2000", rows[1][5])
	assert.Len(t, rows[1][6], 500)
}

func TestDisplayRun_TruncatesContent(t *testing.T) {
	long := strings.Repeat("y", 6000)
	run := sampleRun(long)

	display := core.DisplayRun(run)

	require.Len(t, display.Reports, 1)
	assert.Len(t, display.Reports[0].Content, 5000)
	// The source run is untouched.
	assert.Len(t, run.Reports[0].Content, 6000)
}

func TestWriteCSV_PreviewNeverSplitsRunes(t *testing.T) {
	// ☃ is 3 bytes; 500 is not a multiple of 3, so a byte-exact cut would
	// leave a partial sequence at the preview boundary.
	snow := strings.Repeat("☃", 200)
	var buf bytes.Buffer
	require.NoError(t, core.WriteCSV(&buf, sampleRun(snow)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	preview := rows[1][6]
	assert.True(t, utf8.ValidString(preview))
	assert.Len(t, preview, 498)
}

func TestDisplayRun_PreviewNeverSplitsRunes(t *testing.T) {
	snow := strings.Repeat("☃", 2000)
	display := core.DisplayRun(sampleRun(snow))

	require.Len(t, display.Reports, 1)
	content := display.Reports[0].Content
	assert.True(t, utf8.ValidString(content))
	assert.Len(t, content, 4998)
}

func TestDisplayRun_ShortContentUnchanged(t *testing.T) {
	run := sampleRun("short")
	display := core.DisplayRun(run)

	require.Len(t, display.Reports, 1)
	assert.Equal(t, "short", display.Reports[0].Content)
}
