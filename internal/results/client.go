package results

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// MaxDocumentBytes bounds the size of an accepted results document.
const MaxDocumentBytes = 16 << 20

// Client fetches the results document from a fixed URL. Overlapping calls
// share one request; nothing is kept once it returns.
type Client struct {
	url        string
	httpClient *http.Client
	stats      *FetchStats
	group      singleflight.Group
}

// NewClient returns a client for url. stats may be nil.
func NewClient(url string, timeout time.Duration, stats *FetchStats) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:   url,
		stats: stats,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

// URL returns the source URL.
func (c *Client) URL() string {
	return c.url
}

// Fetch retrieves and decodes the document. Errors are *FetchError. The
// returned document may be shared with concurrent callers and must not be
// modified.
func (c *Client) Fetch(ctx context.Context) (*Document, error) {
	ch := c.group.DoChan(c.url, func() (any, error) {
		// The shared request outlives any single caller; the client timeout
		// still bounds it.
		return c.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, &FetchError{Kind: KindNetwork, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Document), nil
	}
}

func (c *Client) fetch(ctx context.Context) (doc *Document, err error) {
	start := time.Now()
	defer func() {
		if c.stats != nil {
			c.stats.Record(time.Since(start), err != nil)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &FetchError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > MaxDocumentBytes {
		return nil, &FetchError{Kind: KindDecode, Err: fmt.Errorf("document exceeds %d bytes", MaxDocumentBytes)}
	}

	doc, err = Decode(body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode parses a results document. Malformed JSON is a KindDecode error.
func Decode(body []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &FetchError{Kind: KindDecode, Err: fmt.Errorf("decode document: %w", err)}
	}
	return &doc, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
