package feed

import (
	"context"
	"fmt"
	"io"
	"time"

	resty "gopkg.in/resty.v1"
)

// Downloader fetches a feed archive.
type Downloader interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPDownloader performs a single GET per archive. There are no retries.
type HTTPDownloader struct {
	client *resty.Client
}

// NewHTTPDownloader creates a downloader whose requests time out after
// timeout.
func NewHTTPDownloader(timeout time.Duration) *HTTPDownloader {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(io.Discard)
	return &HTTPDownloader{client: c}
}

// Fetch returns the response body of a successful GET.
func (d *HTTPDownloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}
	return resp.Body(), nil
}
