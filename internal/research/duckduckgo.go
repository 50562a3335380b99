package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"wiseoldman/pkg/retrylimit"
)

const duckDuckGoURL = "https://api.duckduckgo.com/"

// DuckDuckGoProvider queries the Instant Answer API. No key required.
type DuckDuckGoProvider struct {
	baseURL string
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

func NewDuckDuckGoProvider() *DuckDuckGoProvider {
	return &DuckDuckGoProvider{
		baseURL: duckDuckGoURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
	}
}

// Query asks DuckDuckGo for an instant answer, biased to RuneScape 3 the
// way the community expects. Empty string means no abstract was found.
func (p *DuckDuckGoProvider) Query(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("q", text+" runescape 3")
	params.Set("format", "json")
	params.Set("no_redirect", "1")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	var answer string
	err := retrylimit.WithRetryMax(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &httpError{code: resp.StatusCode, body: body}
		}

		var parsed struct {
			AbstractText  string `json:"AbstractText"`
			RelatedTopics []struct {
				Text string `json:"Text"`
			} `json:"RelatedTopics"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return &retrylimit.FatalError{Err: fmt.Errorf("duckduckgo unmarshal: %w", err)}
		}
		if parsed.AbstractText != "" {
			answer = "Here's what I've found in my old scrolls: " + parsed.AbstractText
			return nil
		}
		if len(parsed.RelatedTopics) > 0 && parsed.RelatedTopics[0].Text != "" {
			answer = "A bit of wisdom from my travels: " + parsed.RelatedTopics[0].Text
		}
		return nil
	}, p.limiter, 3)
	if err != nil {
		return "", fmt.Errorf("duckduckgo: %w", err)
	}
	return trimAnswer(answer), nil
}

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
