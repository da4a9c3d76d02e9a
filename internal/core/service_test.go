package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octovision/pastewatch/internal/core"
	"github.com/octovision/pastewatch/internal/scraper"
)

type fakeArchive struct {
	pastes []scraper.Paste
	err    error
	calls  int
}

func (f *fakeArchive) RecentPastes(_ context.Context, limit int) ([]scraper.Paste, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.pastes) {
		return f.pastes[:limit], nil
	}
	return f.pastes, nil
}

type fakeURLScraper struct {
	paste scraper.Paste
}

func (f *fakeURLScraper) ScrapeURL(_ context.Context, rawURL string) scraper.Paste {
	p := f.paste
	p.URL = rawURL
	return p
}

func newService(archive *fakeArchive, custom *fakeURLScraper) *core.ScanService {
	if archive == nil {
		archive = &fakeArchive{}
	}
	if custom == nil {
		custom = &fakeURLScraper{}
	}
	return core.NewScanService(core.NewSession(), archive, custom)
}

func TestScanRecent_RequiresKeywords(t *testing.T) {
	archive := &fakeArchive{}
	svc := newService(archive, nil)

	_, err := svc.ScanRecent(context.Background(), 10)

	assert.ErrorIs(t, err, core.ErrNoKeywords)
	assert.Zero(t, archive.calls, "must not fetch when no keywords are loaded")
}

func TestScanRecent_RecordsRun(t *testing.T) {
	archive := &fakeArchive{pastes: []scraper.Paste{
		{ID: "a", Content: "found a password here"},
		{ID: "b", Content: "benign"},
		{ID: "c", Error: "fetch failed"},
	}}
	svc := newService(archive, nil)
	svc.Session().SetKeywords([]string{"password"})

	run, err := svc.ScanRecent(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 3, run.PastesSeen)
	require.Len(t, run.Reports, 1)
	assert.Equal(t, "a", run.Reports[0].ID)

	stored, ok := svc.Session().LastRun()
	require.True(t, ok)
	assert.Equal(t, run.ID, stored.ID)
}

func TestScanRecent_PropagatesFetchError(t *testing.T) {
	archive := &fakeArchive{err: errors.New("archive unreachable")}
	svc := newService(archive, nil)
	svc.Session().SetKeywords([]string{"kw"})

	_, err := svc.ScanRecent(context.Background(), 10)

	assert.EqualError(t, err, "archive unreachable")
	_, ok := svc.Session().LastRun()
	assert.False(t, ok, "failed fetch must not record a run")
}

func TestScanURL_MatchAndNoMatch(t *testing.T) {
	custom := &fakeURLScraper{paste: scraper.Paste{Title: "Custom Paste", Content: "api_key=123"}}
	svc := newService(nil, custom)
	svc.Session().SetKeywords([]string{"api_key"})

	run, err := svc.ScanURL(context.Background(), "https://p/raw/x")
	require.NoError(t, err)
	assert.Equal(t, 1, run.PastesSeen)
	require.Len(t, run.Reports, 1)
	assert.Equal(t, "https://p/raw/x", run.Reports[0].URL)

	// A non-matching paste still records a run, just with no reports.
	svc.Session().SetKeywords([]string{"absent"})
	run, err = svc.ScanURL(context.Background(), "https://p/raw/x")
	require.NoError(t, err)
	assert.Empty(t, run.Reports)
}

func TestScanURL_RequiresKeywords(t *testing.T) {
	svc := newService(nil, &fakeURLScraper{})

	_, err := svc.ScanURL(context.Background(), "https://p/raw/x")

	assert.ErrorIs(t, err, core.ErrNoKeywords)
}
