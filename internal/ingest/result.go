package ingest

import (
	"errors"

	"rssreader/internal/model"
	"rssreader/internal/parser"
	"rssreader/internal/transport"
)

// ErrorKind classifies a failed operation for the caller.
type ErrorKind int

// Failure taxonomy delivered to callers.
const (
	KindUnknown ErrorKind = iota
	KindInvalidURL
	KindNetwork
	KindMalformedFeed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid URL"
	case KindNetwork:
		return "network failure"
	case KindMalformedFeed:
		return "malformed feed"
	default:
		return "unknown"
	}
}

// Failure describes why an operation failed, with a short message suitable
// for direct display.
type Failure struct {
	Kind    ErrorKind
	Message string
}

// FeedResult is delivered exactly once per FetchFeed request. Exactly one
// of Feed and Err is set.
type FeedResult struct {
	Feed *model.Feed
	Err  *Failure
}

// ItemsResult is delivered exactly once per FetchItemsForFeed request.
type ItemsResult struct {
	Items []model.Item
	Err   *Failure
}

// FlagsResult is delivered exactly once per SetItemFlags request.
type FlagsResult struct {
	Err *Failure
}

// classify maps a wrapped error from the transport, parser, or store onto
// the caller-facing failure taxonomy.
func classify(err error) *Failure {
	switch {
	case errors.Is(err, transport.ErrInvalidURL):
		return &Failure{Kind: KindInvalidURL, Message: "the feed address is not a valid URL"}
	case errors.Is(err, transport.ErrNetwork):
		return &Failure{Kind: KindNetwork, Message: "the feed could not be downloaded"}
	case errors.Is(err, parser.ErrMalformedFeed):
		return &Failure{Kind: KindMalformedFeed, Message: "the document is not a readable feed"}
	default:
		return &Failure{Kind: KindUnknown, Message: "something went wrong while loading the feed"}
	}
}
