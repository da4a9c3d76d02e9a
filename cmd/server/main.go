package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/octovision/pastewatch/internal/api"
	"github.com/octovision/pastewatch/internal/core"
	"github.com/octovision/pastewatch/internal/httpx"
	"github.com/octovision/pastewatch/internal/scanner"
	"github.com/octovision/pastewatch/internal/scraper"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	userAgent := os.Getenv("PASTEWATCH_USER_AGENT")
	if userAgent == "" {
		userAgent = "pastewatch-bot/1.0"
	}

	fetcher := httpx.NewFetcher(userAgent)
	archive := scraper.NewPastebinScraper(fetcher, os.Getenv("PASTEWATCH_ARCHIVE_BASE"))
	custom := scraper.NewCustomScraper(fetcher)

	session := core.NewSession()
	if path := os.Getenv("PASTEWATCH_KEYWORDS_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Error("failed to read keywords file", "path", path, "error", err)
			os.Exit(1)
		}
		keywords, err := scanner.LoadFromCSV(string(content))
		if err != nil {
			slog.Error("failed to load keywords file", "path", path, "error", err)
			os.Exit(1)
		}
		session.SetKeywords(keywords)
		slog.Info("keywords loaded", "path", path, "count", len(keywords))
	}

	svc := core.NewScanService(session, archive, custom)

	ctx := context.Background()

	interval := monitorInterval()
	core.NewMonitor(svc, interval).Start(ctx)
	if interval > 0 {
		slog.Info("monitor enabled", "interval", interval.String())
	}

	srv := api.NewServer(svc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port)
	if err := http.ListenAndServe(":"+port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func monitorInterval() time.Duration {
	raw := os.Getenv("PASTEWATCH_MONITOR_INTERVAL")
	if raw == "" {
		return 0
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid monitor interval, monitoring disabled", "value", raw, "error", err)
		return 0
	}
	return interval
}
