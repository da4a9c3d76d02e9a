package scraper

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/octovision/pastewatch/internal/httpx"
)

const defaultPastebinBase = "https://pastebin.com"

// PastebinScraper walks the pastebin archive listing and fetches each
// paste's raw body. Per-paste failures become error-marked records rather
// than aborting the batch.
type PastebinScraper struct {
	fetcher *httpx.Fetcher
	base    string
}

func NewPastebinScraper(fetcher *httpx.Fetcher, baseURL string) *PastebinScraper {
	if baseURL == "" {
		baseURL = defaultPastebinBase
	}
	return &PastebinScraper{
		fetcher: fetcher,
		base:    strings.TrimRight(baseURL, "/"),
	}
}

func (s *PastebinScraper) RecentPastes(ctx context.Context, limit int) ([]Paste, error) {
	if limit <= 0 {
		limit = 10
	}

	body, _, err := s.fetcher.FetchBytes(ctx, s.base+"/archive")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return []Paste{{Title: "Error accessing archive", Error: err.Error()}}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return []Paste{{Title: "Error accessing archive", Error: "parse archive: " + err.Error()}}, nil
	}

	ids := s.archiveEntries(doc, limit)
	if len(ids) == 0 {
		return []Paste{{Title: "Error accessing archive", Error: "no paste links found in archive"}}, nil
	}

	pastes := make([]Paste, 0, len(ids))
	for _, entry := range ids {
		if ctx.Err() != nil {
			return pastes, ctx.Err()
		}
		pastes = append(pastes, s.fetchPaste(ctx, entry))
	}
	return pastes, nil
}

type archiveEntry struct {
	id    string
	title string
}

// archiveEntries extracts paste IDs and titles from the archive table rows.
func (s *PastebinScraper) archiveEntries(doc *goquery.Document, limit int) []archiveEntry {
	var entries []archiveEntry
	doc.Find("table.maintable tr, tr.data").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		id := strings.Trim(href, "/")
		if id == "" || strings.Contains(id, "/") {
			return true
		}
		title := strings.TrimSpace(link.Text())
		if title == "" {
			title = "Untitled"
		}
		entries = append(entries, archiveEntry{id: id, title: title})
		return len(entries) < limit
	})
	return entries
}

func (s *PastebinScraper) fetchPaste(ctx context.Context, entry archiveEntry) Paste {
	pasteURL := s.base + "/" + entry.id
	raw, _, err := s.fetcher.FetchBytes(ctx, s.base+"/raw/"+entry.id)
	if err != nil {
		slog.Warn("paste fetch failed", "id", entry.id, "error", err)
		return Paste{
			ID:    entry.id,
			Title: entry.title,
			URL:   pasteURL,
			Error: err.Error(),
		}
	}
	return Paste{
		ID:      entry.id,
		Title:   entry.title,
		URL:     pasteURL,
		Content: string(raw),
	}
}
