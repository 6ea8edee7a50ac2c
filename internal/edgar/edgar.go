/*
Package edgar retrieves ticker mappings, filing histories and filing documents
from SEC EDGAR.
*/
package edgar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/config"

	"go.uber.org/zap"
)

var (
	ErrUnexpectedShape  = errors.New("unexpected response shape")
	ErrNoDocumentTable  = errors.New("document format files table not found")
	ErrDocumentNotFound = errors.New("primary document not listed")
)

// StatusError is returned when EDGAR answers with anything but 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received non-OK status code %d from %s", e.StatusCode, e.URL)
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Client issues GET requests to EDGAR. Every request carries the configured
// User-Agent and is preceded by the fixed request delay.
type Client struct {
	httpClient     *http.Client
	userAgent      string
	delay          time.Duration
	tickersURL     string
	submissionsURL string
	archivesURL    string
	log            *zap.Logger

	wait func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg config.EDGAR, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout()},
		userAgent:      cfg.UserAgent,
		delay:          cfg.RequestDelay(),
		tickersURL:     cfg.TickersURL,
		submissionsURL: cfg.SubmissionsURL,
		archivesURL:    cfg.ArchivesURL,
		log:            log,
		wait:           sleep,
	}
}

// Get fetches url and returns its status and body. A non-nil error means the
// request never produced a response.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	if err := c.wait(ctx, c.delay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug("GET", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warn("failed to close response body", zap.String("url", url), zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) getOK(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Snippet: snippet(resp.Body, 200)}
	}
	return resp.Body, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func snippet(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
