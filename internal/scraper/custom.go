package scraper

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/octovision/pastewatch/internal/httpx"
)

// CustomScraper fetches one operator-supplied paste URL. Raw endpoints are
// returned verbatim; HTML pages get their paste body extracted.
type CustomScraper struct {
	fetcher *httpx.Fetcher
}

func NewCustomScraper(fetcher *httpx.Fetcher) *CustomScraper {
	return &CustomScraper{fetcher: fetcher}
}

func (s *CustomScraper) ScrapeURL(ctx context.Context, rawURL string) Paste {
	body, _, err := s.fetcher.FetchBytes(ctx, rawURL)
	if err != nil {
		return Paste{URL: rawURL, Title: "Error", Error: err.Error()}
	}

	if strings.Contains(rawURL, "/raw/") {
		return Paste{URL: rawURL, Title: "Custom Paste", Content: string(body)}
	}

	return Paste{
		URL:     rawURL,
		Title:   "Custom Paste",
		Content: extractPasteBody(body),
	}
}

// extractPasteBody pulls the paste text out of an HTML page. Most paste
// sites render the body inside a textarea, pre, or code element; pages that
// don't fall back to whole-document text extraction.
func extractPasteBody(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return documentText(body)
	}

	for _, selector := range []string{"textarea", "pre", "code"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			if text := sel.Text(); strings.TrimSpace(text) != "" {
				return text
			}
		}
	}
	return documentText(body)
}
