package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octovision/pastewatch/internal/core"
	"github.com/octovision/pastewatch/internal/scraper"
)

func TestScanPastes_FiltersErroredEmptyAndUnmatched(t *testing.T) {
	pastes := []scraper.Paste{
		{ID: "a", Title: "Errored", URL: "https://p/a", Content: "has password inside", Error: "timeout"},
		{ID: "b", Title: "No match", URL: "https://p/b", Content: "completely benign text"},
		{ID: "c", Title: "Match", URL: "https://p/c", Content: "leaked password here"},
		{ID: "d", Title: "Empty", URL: "https://p/d", Content: ""},
	}
	cfg := core.ScanConfig{Keywords: []string{"password"}}

	reports := core.ScanPastes(pastes, cfg)

	require.Len(t, reports, 1)
	assert.Equal(t, "c", reports[0].ID)
	assert.Equal(t, "Match", reports[0].Title)
	assert.Equal(t, "https://p/c", reports[0].URL)
	assert.Equal(t, "leaked password here", reports[0].Content)
	assert.True(t, reports[0].MatchesFound)
	assert.Equal(t, []string{"password"}, reports[0].MatchedKeywords)
	assert.Equal(t, 1, reports[0].TotalOccurrences)
}

func TestScanPastes_OutputMirrorsInputOrder(t *testing.T) {
	pastes := []scraper.Paste{
		{ID: "1", Content: "token first"},
		{ID: "2", Content: "nothing"},
		{ID: "3", Content: "token third"},
	}
	reports := core.ScanPastes(pastes, core.ScanConfig{Keywords: []string{"token"}})

	require.Len(t, reports, 2)
	assert.Equal(t, "1", reports[0].ID)
	assert.Equal(t, "3", reports[1].ID)
}

func TestScanPastes_CaseSensitivityFlows(t *testing.T) {
	pastes := []scraper.Paste{{ID: "a", Content: "Leaked Secret"}}

	insensitive := core.ScanPastes(pastes, core.ScanConfig{Keywords: []string{"secret"}})
	sensitive := core.ScanPastes(pastes, core.ScanConfig{Keywords: []string{"secret"}, CaseSensitive: true})

	assert.Len(t, insensitive, 1)
	assert.Empty(t, sensitive)
}

func TestScanPastes_EmptyInputs(t *testing.T) {
	assert.Empty(t, core.ScanPastes(nil, core.ScanConfig{Keywords: []string{"x"}}))
	assert.Empty(t, core.ScanPastes([]scraper.Paste{{ID: "a", Content: "x"}}, core.ScanConfig{}))
}
