// Package scraper retrieves paste documents from paste-hosting sites.
package scraper

import "context"

// Paste is one unit of fetched text content. A non-empty Error marks the
// record as unusable for scanning; it stays in the slice so callers can see
// what failed, but the batch driver excludes it.
type Paste struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// ArchiveScraper lists and fetches recently published pastes.
type ArchiveScraper interface {
	RecentPastes(ctx context.Context, limit int) ([]Paste, error)
}

// URLScraper fetches a single paste by URL.
type URLScraper interface {
	ScrapeURL(ctx context.Context, rawURL string) Paste
}
