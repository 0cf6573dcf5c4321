// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"rssreader/internal/model"
)

// Storage is the interface for all persistence operations. Lookups that
// miss return a nil record and a nil error; only infrastructure failures
// surface as errors.
type Storage interface {
	CreateFeed(ctx context.Context, feed *model.Feed) error
	FeedByID(ctx context.Context, id int64) (*model.Feed, error)
	FeedByURL(ctx context.Context, feedURL string) (*model.Feed, error)

	CreateItem(ctx context.Context, item *model.Item) error
	ItemExists(ctx context.Context, feedID int64, guid string) (bool, error)
	ItemsByFeed(ctx context.Context, feedID int64) ([]model.Item, error)
	UpdateItemFlags(ctx context.Context, itemID int64, favorite, archived bool) error

	Close() error
}
