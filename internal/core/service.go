package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/octovision/pastewatch/internal/observability"
	"github.com/octovision/pastewatch/internal/scraper"
)

// ErrNoKeywords is returned when a scan is requested before any keywords
// have been loaded.
var ErrNoKeywords = errors.New("no keywords loaded")

// ScanService runs fetch-then-scan operations against the session's current
// configuration.
type ScanService struct {
	session *Session
	archive scraper.ArchiveScraper
	custom  scraper.URLScraper
}

func NewScanService(session *Session, archive scraper.ArchiveScraper, custom scraper.URLScraper) *ScanService {
	return &ScanService{
		session: session,
		archive: archive,
		custom:  custom,
	}
}

func (s *ScanService) Session() *Session {
	return s.session
}

// ScanRecent fetches up to limit recent pastes and scans them, recording
// the outcome as the session's latest run.
func (s *ScanService) ScanRecent(ctx context.Context, limit int) (Run, error) {
	cfg := s.session.Config()
	if !cfg.Ready() {
		return Run{}, ErrNoKeywords
	}

	start := time.Now()
	pastes, err := s.archive.RecentPastes(ctx, limit)
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "scraper")
		return Run{}, err
	}
	s.countFetches(pastes)

	reports := ScanPastes(pastes, cfg)
	run := s.session.RecordRun(len(pastes), reports)

	observability.ObserveScanRun(time.Since(start).Seconds())
	observability.AddPastesMatched(uint64(len(reports)))
	slog.Info("scan run complete",
		"run_id", run.ID,
		"pastes", len(pastes),
		"matched", len(reports),
		"keywords", len(cfg.Keywords))
	return run, nil
}

// ScanURL fetches one paste URL and scans it.
func (s *ScanService) ScanURL(ctx context.Context, rawURL string) (Run, error) {
	cfg := s.session.Config()
	if !cfg.Ready() {
		return Run{}, ErrNoKeywords
	}

	start := time.Now()
	paste := s.custom.ScrapeURL(ctx, rawURL)
	s.countFetches([]scraper.Paste{paste})

	reports := ScanPastes([]scraper.Paste{paste}, cfg)
	run := s.session.RecordRun(1, reports)

	observability.ObserveScanRun(time.Since(start).Seconds())
	observability.AddPastesMatched(uint64(len(reports)))
	slog.Info("url scan complete", "run_id", run.ID, "url", rawURL, "matched", len(reports))
	return run, nil
}

func (s *ScanService) countFetches(pastes []scraper.Paste) {
	for _, p := range pastes {
		if p.Error != "" {
			observability.IncError(observability.ClassifyMessage(p.Error), "scraper")
			continue
		}
		observability.IncPastesFetched()
	}
}
