// Package parser turns feed XML into normalized feed and item records.
package parser

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mmcdole/gofeed"

	"rssreader/internal/extract"
	"rssreader/internal/model"
	"rssreader/internal/transport"
)

// ErrMalformedFeed marks a document that could not be parsed as a feed.
var ErrMalformedFeed = errors.New("malformed feed")

// pubDateLayouts are the expected RFC 822 style publication date formats.
var pubDateLayouts = []string{time.RFC1123Z, time.RFC1123}

// ParsedFeed is the outcome of parsing one feed document. Record IDs are
// unset; the storage layer assigns them on insert.
type ParsedFeed struct {
	Feed  model.Feed
	Items []model.Item
}

// Parse reads a complete feed document from r and extracts channel and item
// metadata. feedURL is recorded as the feed's canonical source address.
// A failure reading r classifies as a network failure, a structural failure
// as a malformed feed; both are terminal and yield no partial result.
func Parse(r io.Reader, feedURL string) (*ParsedFeed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read feed body: %v", transport.ErrNetwork, err)
	}

	src, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	parsed := &ParsedFeed{
		Feed: model.Feed{
			Link:        src.Link,
			Title:       src.Title,
			Description: src.Description,
			FeedURL:     feedURL,
		},
	}
	if parsed.Feed.FeedURL == "" {
		parsed.Feed.FeedURL = src.FeedLink
	}

	now := time.Now().UTC()
	for _, item := range src.Items {
		parsed.Items = append(parsed.Items, convertItem(item, now))
	}
	return parsed, nil
}

func convertItem(src *gofeed.Item, now time.Time) model.Item {
	item := model.Item{
		Link:  src.Link,
		Title: src.Title,
		GUID:  itemGUID(src),
	}

	if len(src.Enclosures) > 0 {
		item.Enclosure = src.Enclosures[0].URL
		item.MIMEType = src.Enclosures[0].Type
	}

	// content:encoded is assumed to be the more complete source; it
	// supersedes the plain description both as item text and as the
	// preferred place to look for an embedded image.
	richHTML := src.Content
	if richHTML == "" {
		richHTML = src.Description
	}
	item.Description = extract.Text(richHTML)

	if item.Enclosure == "" {
		if img, ok := extract.FirstImage(richHTML); ok {
			item.Enclosure = img
		} else if img, ok := extract.FirstImage(src.Description); ok {
			item.Enclosure = img
		}
	}
	// A media:content element is the last resort; its MIME type is
	// adopted together with its URL.
	if item.Enclosure == "" {
		if url, mime, ok := mediaContent(src); ok {
			item.Enclosure = url
			item.MIMEType = mime
		}
	}

	item.PubDate = parsePubDate(src, now)
	return item
}

// mediaContent returns the URL and MIME type of the item's first
// media:content extension element, which shares the enclosure attribute
// shape.
func mediaContent(src *gofeed.Item) (url, mime string, ok bool) {
	media, ok := src.Extensions["media"]
	if !ok {
		return "", "", false
	}
	for _, ext := range media["content"] {
		if u := ext.Attrs["url"]; u != "" {
			return u, ext.Attrs["type"], true
		}
	}
	return "", "", false
}

// parsePubDate parses the item's publication date against the expected
// RFC 822 style layouts. An unparsable date falls back to gofeed's lenient
// parse when available, then to the ingestion instant; a bad date never
// fails the item.
func parsePubDate(src *gofeed.Item, now time.Time) time.Time {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, src.Published); err == nil {
			return t
		}
	}
	if src.PublishedParsed != nil {
		return *src.PublishedParsed
	}
	return now
}

// itemGUID returns the natural key for an item. Items published without a
// GUID get a sha256 digest of title and link so they still carry a stable
// key.
func itemGUID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	h := sha256.Sum256([]byte(item.Title + "|" + item.Link))
	return fmt.Sprintf("sha256:%x", h[:16])
}
