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

const runescapeWikiURL = "https://runescape.wiki/api.php"

// WikiProvider pulls plain-text intro extracts from the RuneScape Wiki.
// Works best when the query looks like a page title; free-form questions
// usually miss, which is why it sits behind DuckDuckGo in the chain.
type WikiProvider struct {
	baseURL string
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

func NewWikiProvider() *WikiProvider {
	return &WikiProvider{
		baseURL: runescapeWikiURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
	}
}

func (p *WikiProvider) Query(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("exintro", "")
	params.Set("explaintext", "")
	params.Set("titles", text)

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
			Query struct {
				Pages map[string]struct {
					Extract string `json:"extract"`
				} `json:"pages"`
			} `json:"query"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return &retrylimit.FatalError{Err: fmt.Errorf("wiki unmarshal: %w", err)}
		}
		for _, page := range parsed.Query.Pages {
			if page.Extract != "" {
				answer = "From the annals of the RuneScape Wiki:\n" + page.Extract
				break
			}
		}
		return nil
	}, p.limiter, 3)
	if err != nil {
		return "", fmt.Errorf("wiki: %w", err)
	}
	return trimAnswer(answer), nil
}
