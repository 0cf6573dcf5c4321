// Command reader is a minimal host around the ingestion library: it loads
// the configured feed URLs through a single Coordinator and prints what was
// stored.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"rssreader/internal/config"
	"rssreader/internal/ingest"
	"rssreader/internal/storage"
	"rssreader/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && cfg.DatabasePath != ":memory:" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	tc := transport.New(http.DefaultClient)
	tc.SetUserAgent(cfg.UserAgent)

	coordinator := ingest.New(store, tc, log)
	defer coordinator.Close()

	if len(cfg.FeedURLs) == 0 {
		log.Info("no feed URLs configured, nothing to do")
		return
	}

	for _, feedURL := range cfg.FeedURLs {
		res := <-coordinator.FetchFeed(feedURL)
		if res.Err != nil {
			log.Error("fetch feed", "url", feedURL, "kind", res.Err.Kind.String(), "message", res.Err.Message)
			continue
		}

		items := <-coordinator.FetchItemsForFeed(res.Feed.ID)
		if items.Err != nil {
			log.Error("fetch items", "feed_id", res.Feed.ID, "message", items.Err.Message)
			continue
		}

		fmt.Printf("%s (%d items)\n", res.Feed.Title, len(items.Items))
		for _, item := range items.Items {
			fmt.Printf("  %s  %s\n", item.PubDate.Format("2006-01-02"), item.Title)
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
