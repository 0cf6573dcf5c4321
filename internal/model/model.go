// Package model defines the domain types used across the application.
package model

import "time"

// Feed represents a subscribed RSS/Atom source. FeedURL is the canonical
// source address and the feed's natural key; Link is the human-facing site.
type Feed struct {
	ID          int64
	Link        string
	Title       string
	Description string
	FeedURL     string
}

// Item represents a single entry within a feed. Description holds plain
// text; markup from the source document has already been stripped out.
// Enclosure carries either the item's declared media attachment or an
// image derived from the item body.
type Item struct {
	ID          int64
	FeedID      int64
	Link        string
	Title       string
	Description string
	GUID        string
	PubDate     time.Time
	Enclosure   string
	MIMEType    string
	Favorite    bool
	Archived    bool
}
