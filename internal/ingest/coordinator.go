// Package ingest coordinates feed retrieval, parsing, and persistence.
//
// All store and network access runs on a single background worker, so
// concurrent requests can never interleave partial writes. Every public
// operation enqueues a task and returns immediately; the outcome arrives
// exactly once on the returned channel, wherever the caller chooses to
// receive it.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"rssreader/internal/parser"
	"rssreader/internal/storage"
	"rssreader/internal/transport"
)

// Coordinator serializes all feed ingestion work through one worker.
type Coordinator struct {
	store     storage.Storage
	transport *transport.Client
	log       *slog.Logger

	mu      sync.Mutex
	wake    *sync.Cond
	queue   []func(context.Context)
	running bool
	closed  bool
}

// New creates a Coordinator. The store and transport client become
// exclusively owned by the Coordinator's worker; nothing else may use them
// concurrently.
func New(store storage.Storage, tc *transport.Client, log *slog.Logger) *Coordinator {
	c := &Coordinator{
		store:     store,
		transport: tc,
		log:       log,
	}
	c.wake = sync.NewCond(&c.mu)
	return c
}

// FetchFeed resolves feedURL to its stored Feed, ingesting it over the
// network the first time the URL is seen. Repeated calls for a known URL
// never refetch; they deliver the already stored row. The result channel
// receives exactly one value.
func (c *Coordinator) FetchFeed(feedURL string) <-chan FeedResult {
	out := make(chan FeedResult, 1)
	c.enqueue(func(ctx context.Context) {
		out <- c.fetchFeed(ctx, feedURL)
	})
	return out
}

// FetchItemsForFeed delivers all stored items of a feed, newest publication
// first. An empty list is a valid success.
func (c *Coordinator) FetchItemsForFeed(feedID int64) <-chan ItemsResult {
	out := make(chan ItemsResult, 1)
	c.enqueue(func(ctx context.Context) {
		items, err := c.store.ItemsByFeed(ctx, feedID)
		if err != nil {
			c.log.Error("list items", "feed_id", feedID, "error", err)
			out <- ItemsResult{Err: classify(err)}
			return
		}
		out <- ItemsResult{Items: items}
	})
	return out
}

// SetItemFlags persists the favorite and archived flags of an item through
// the same serialized worker as all other writes.
func (c *Coordinator) SetItemFlags(itemID int64, favorite, archived bool) <-chan FlagsResult {
	out := make(chan FlagsResult, 1)
	c.enqueue(func(ctx context.Context) {
		if err := c.store.UpdateItemFlags(ctx, itemID, favorite, archived); err != nil {
			c.log.Error("update item flags", "item_id", itemID, "error", err)
			out <- FlagsResult{Err: classify(err)}
			return
		}
		out <- FlagsResult{}
	})
	return out
}

// Close stops the worker once the task in progress finishes. Tasks still
// queued are kept; enqueuing further work starts a fresh worker that
// resumes them, so no request is ever dropped.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.wake.Broadcast()
	c.mu.Unlock()
}

// enqueue appends the task in FIFO position and makes sure a worker is
// running. The caller never blocks here.
func (c *Coordinator) enqueue(task func(context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, task)
	c.closed = false
	if !c.running {
		c.running = true
		go c.work()
	}
	c.wake.Signal()
}

// work is the single worker loop. Tasks run to completion in arrival
// order; there is no cancellation of in-flight work.
func (c *Coordinator) work() {
	ctx := context.Background()
	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.closed {
			c.wake.Wait()
		}
		if c.closed {
			c.running = false
			c.mu.Unlock()
			return
		}
		task := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		task(ctx)
	}
}

func (c *Coordinator) fetchFeed(ctx context.Context, feedURL string) FeedResult {
	log := c.log.With("feed_url", feedURL)

	log.Debug("checking store")
	existing, err := c.store.FeedByURL(ctx, feedURL)
	if err != nil {
		log.Error("look up feed", "error", err)
		return FeedResult{Err: classify(err)}
	}
	if existing != nil {
		log.Debug("feed already ingested", "feed_id", existing.ID)
		return FeedResult{Feed: existing}
	}

	log.Debug("fetching")
	body, err := c.transport.Open(ctx, feedURL)
	if err != nil {
		log.Error("fetch feed", "error", err)
		return FeedResult{Err: classify(err)}
	}
	defer func() { _ = body.Close() }()

	log.Debug("parsing")
	parsed, err := parser.Parse(body, feedURL)
	if err != nil {
		log.Error("parse feed", "error", err)
		return FeedResult{Err: classify(err)}
	}

	log.Debug("persisting", "items", len(parsed.Items))
	feed := parsed.Feed
	if err := c.store.CreateFeed(ctx, &feed); err != nil {
		log.Error("insert feed", "error", err)
		return FeedResult{Err: classify(err)}
	}
	for i := range parsed.Items {
		item := parsed.Items[i]
		item.FeedID = feed.ID
		exists, err := c.store.ItemExists(ctx, feed.ID, item.GUID)
		if err != nil {
			log.Error("check item", "guid", item.GUID, "error", err)
			return FeedResult{Err: classify(err)}
		}
		if exists {
			continue
		}
		if err := c.store.CreateItem(ctx, &item); err != nil {
			log.Error("insert item", "guid", item.GUID, "error", err)
			return FeedResult{Err: classify(err)}
		}
	}

	// Read back, so the caller gets the store's canonical row rather than
	// the transient parse record.
	log.Debug("reading back")
	canonical, err := c.store.FeedByID(ctx, feed.ID)
	if err != nil {
		log.Error("read back feed", "error", err)
		return FeedResult{Err: classify(err)}
	}
	if canonical == nil {
		err := fmt.Errorf("feed %d missing after insert", feed.ID)
		log.Error("read back feed", "error", err)
		return FeedResult{Err: classify(err)}
	}

	log.Info("feed ingested", "feed_id", canonical.ID, "title", canonical.Title, "items", len(parsed.Items))
	return FeedResult{Feed: canonical}
}
