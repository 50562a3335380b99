// Package runescape wraps the public RuneScape 3 data endpoints: the
// hiscores lite feed, RuneMetrics profiles and the weirdgloop Grand
// Exchange API. All lookups are read-only and unauthenticated.
package runescape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"wiseoldman/pkg/retrylimit"
)

const (
	hiscoresURL    = "https://secure.runescape.com/m=hiscore/index_lite.ws"
	runemetricsURL = "https://apps.runescape.com/runemetrics/profile/profile"
	exchangeURL    = "https://api.weirdgloop.org/exchange/history/rs/latest"
)

type Client struct {
	hiscoresBase    string
	runemetricsBase string
	exchangeBase    string
	client          *http.Client
	limiter         *retrylimit.AdaptiveLimiter
}

func NewClient() *Client {
	return &Client{
		hiscoresBase:    hiscoresURL,
		runemetricsBase: runemetricsURL,
		exchangeBase:    exchangeURL,
		client:          &http.Client{Timeout: 10 * time.Second},
		limiter:         retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
	}
}

// fetch runs one retried GET and hands the body to parse on 2xx.
func (c *Client) fetch(ctx context.Context, rawURL string, parse func(body []byte) error) error {
	return retrylimit.WithRetryMax(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusNotFound {
			return &retrylimit.FatalError{Err: ErrNotFound}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &httpError{code: resp.StatusCode, body: body}
		}
		return parse(body)
	}, c.limiter, 3)
}

// ErrNotFound means the player or item does not exist upstream.
var ErrNotFound = fmt.Errorf("not found")

type httpError struct {
	code int
	body []byte
}

func (e *httpError) Error() string {
	b := e.body
	if len(b) > 200 {
		b = b[:200]
	}
	return fmt.Sprintf("http %d: %s", e.code, b)
}

func (e *httpError) StatusCode() int { return e.code }
