package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr bool
	}{
		{
			name: "defaults applied",
			env:  map[string]string{},
			want: &Config{
				DatabasePath: "./data/reader.db",
				LogLevel:     "info",
				UserAgent:    "rssreader/1.0",
				FeedURLs:     nil,
			},
		},
		{
			name: "all values set",
			env: map[string]string{
				"DATABASE_PATH":   "/tmp/reader.db",
				"LOG_LEVEL":       "debug",
				"HTTP_USER_AGENT": "newsbox/2.1",
				"FEED_URLS":       "https://a.example.com/rss,https://b.example.com/atom.xml",
			},
			want: &Config{
				DatabasePath: "/tmp/reader.db",
				LogLevel:     "debug",
				UserAgent:    "newsbox/2.1",
				FeedURLs:     []string{"https://a.example.com/rss", "https://b.example.com/atom.xml"},
			},
		},
		{
			name: "feed urls with spaces and stray commas",
			env: map[string]string{
				"FEED_URLS": " https://a.example.com/rss , , https://b.example.com/rss ,",
			},
			want: &Config{
				DatabasePath: "./data/reader.db",
				LogLevel:     "info",
				UserAgent:    "rssreader/1.0",
				FeedURLs:     []string{"https://a.example.com/rss", "https://b.example.com/rss"},
			},
		},
		{
			name: "invalid feed url",
			env: map[string]string{
				"FEED_URLS": "https://a.example.com/rss,not a url",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DATABASE_PATH", "LOG_LEVEL", "HTTP_USER_AGENT", "FEED_URLS"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
