// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath string
	LogLevel     string
	UserAgent    string
	FeedURLs     []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/reader.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	userAgent := os.Getenv("HTTP_USER_AGENT")
	if userAgent == "" {
		userAgent = "rssreader/1.0"
	}

	var feedURLs []string
	if raw := os.Getenv("FEED_URLS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			u, err := url.Parse(s)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return nil, fmt.Errorf("invalid feed URL %q in FEED_URLS", s)
			}
			feedURLs = append(feedURLs, s)
		}
	}

	return &Config{
		DatabasePath: dbPath,
		LogLevel:     logLevel,
		UserAgent:    userAgent,
		FeedURLs:     feedURLs,
	}, nil
}
