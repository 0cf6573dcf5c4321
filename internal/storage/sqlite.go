package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"rssreader/internal/model"
	"rssreader/migrations"
)

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=OFF"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("disable foreign keys: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateFeed inserts a new feed and populates its ID. Feed URL uniqueness
// is the caller's responsibility to check with FeedByURL first; the unique
// index acts only as a backstop.
func (s *SQLite) CreateFeed(ctx context.Context, feed *model.Feed) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feeds (link, title, description, feed_url) VALUES (?, ?, ?, ?)`,
		feed.Link, feed.Title, feed.Description, feed.FeedURL,
	)
	if err != nil {
		return fmt.Errorf("insert feed: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	feed.ID = id
	return nil
}

// FeedByID returns a single feed by its row ID, or nil when absent.
func (s *SQLite) FeedByID(ctx context.Context, id int64) (*model.Feed, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, link, title, description, feed_url FROM feeds WHERE id = ?`, id,
	)
	return scanFeed(row)
}

// FeedByURL returns the feed with the given canonical source URL, or nil
// when the URL has never been ingested.
func (s *SQLite) FeedByURL(ctx context.Context, feedURL string) (*model.Feed, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, link, title, description, feed_url FROM feeds WHERE feed_url = ?`, feedURL,
	)
	return scanFeed(row)
}

// CreateItem inserts a new item and populates its ID. The owning feed row
// must already exist.
func (s *SQLite) CreateItem(ctx context.Context, item *model.Item) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (link, title, description, guid, pub_date, enclosure, mime_type, rss_feed, is_favorite, is_archived)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Link, item.Title, item.Description, item.GUID, item.PubDate.UTC().Unix(),
		item.Enclosure, item.MIMEType, item.FeedID, boolToInt(item.Favorite), boolToInt(item.Archived),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	item.ID = id
	return nil
}

// ItemExists reports whether the feed already holds an item with this GUID.
// The GUID is a natural key scoped to its feed, not globally.
func (s *SQLite) ItemExists(ctx context.Context, feedID int64, guid string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE rss_feed = ? AND guid = ?`,
		feedID, guid,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check item: %w", err)
	}
	return count > 0, nil
}

// ItemsByFeed returns all items belonging to the feed, newest publication
// first.
func (s *SQLite) ItemsByFeed(ctx context.Context, feedID int64) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, link, title, description, guid, pub_date, enclosure, mime_type, rss_feed, is_favorite, is_archived
		 FROM items WHERE rss_feed = ? ORDER BY pub_date DESC, id ASC`, feedID,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItemFlags persists the favorite and archived flags of an item.
func (s *SQLite) UpdateItemFlags(ctx context.Context, itemID int64, favorite, archived bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET is_favorite = ?, is_archived = ? WHERE id = ?`,
		boolToInt(favorite), boolToInt(archived), itemID,
	)
	if err != nil {
		return fmt.Errorf("update item flags: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update item flags: item %d not found", itemID)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scannable interface {
	Scan(dest ...any) error
}

func scanFeed(row *sql.Row) (*model.Feed, error) {
	var f model.Feed
	err := row.Scan(&f.ID, &f.Link, &f.Title, &f.Description, &f.FeedURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan feed: %w", err)
	}
	return &f, nil
}

func scanItem(row scannable) (model.Item, error) {
	var it model.Item
	var pubDate int64
	var favorite, archived int
	err := row.Scan(&it.ID, &it.Link, &it.Title, &it.Description, &it.GUID, &pubDate,
		&it.Enclosure, &it.MIMEType, &it.FeedID, &favorite, &archived)
	if err != nil {
		return it, fmt.Errorf("scan item: %w", err)
	}
	it.PubDate = time.Unix(pubDate, 0).UTC()
	it.Favorite = favorite == 1
	it.Archived = archived == 1
	return it, nil
}
