// Package transport opens HTTP byte streams for remote feed documents.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxBodySize caps how much of a feed document will ever be read.
const maxBodySize = 5 * 1024 * 1024

// defaultUserAgent identifies the reader to feed servers.
const defaultUserAgent = "rssreader/1.0"

// Failure classification sentinels. Callers match with errors.Is.
var (
	// ErrInvalidURL marks a syntactically invalid feed URL. No I/O was
	// attempted when this is returned.
	ErrInvalidURL = errors.New("invalid feed URL")
	// ErrNetwork marks any connection, read, or HTTP status failure.
	ErrNetwork = errors.New("network failure")
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client opens readable byte streams for remote feeds.
type Client struct {
	http      HTTPClient
	userAgent string
}

// New creates a Client with the given HTTP client.
func New(client HTTPClient) *Client {
	return &Client{
		http:      client,
		userAgent: defaultUserAgent,
	}
}

// SetUserAgent overrides the default User-Agent header.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// Open validates rawURL, performs a GET request, and returns the response
// body as a byte stream capped at 5 MiB. The caller owns the stream and
// must close it. No retries are attempted; a failure is terminal for this
// fetch attempt.
func (c *Client) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http get: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}

	return &cappedBody{
		r:    io.LimitReader(resp.Body, maxBodySize),
		body: resp.Body,
	}, nil
}

// cappedBody limits reads to maxBodySize while still closing the full
// underlying response body.
type cappedBody struct {
	r    io.Reader
	body io.ReadCloser
}

func (c *cappedBody) Read(p []byte) (int, error) {
	return c.r.Read(p)
}

func (c *cappedBody) Close() error {
	return c.body.Close()
}
