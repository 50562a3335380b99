// Package github looks up public repository metadata. Used by the
// "github repo owner/name" chat trigger.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wiseoldman/internal/version"
	"wiseoldman/pkg/retrylimit"
)

const apiURL = "https://api.github.com"

// Repo is the slice of repository metadata the bot reports.
type Repo struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	HTMLURL     string `json:"html_url"`
	Language    string `json:"language"`
}

type Client struct {
	baseURL string
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

func NewClient() *Client {
	return &Client{
		baseURL: apiURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(1, 1, 3, 1, 0.5),
	}
}

// ErrNotFound means the repository does not exist or is private.
var ErrNotFound = fmt.Errorf("repository not found")

// Lookup fetches metadata for owner/name.
func (c *Client) Lookup(ctx context.Context, owner, name string) (*Repo, error) {
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" || name == "" {
		return nil, fmt.Errorf("empty repository reference")
	}

	var repo Repo
	err := retrylimit.WithRetryMax(ctx, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, name)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", version.AppName+"/"+version.Version)

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
		if err := json.Unmarshal(body, &repo); err != nil {
			return &retrylimit.FatalError{Err: fmt.Errorf("github unmarshal: %w", err)}
		}
		return nil
	}, c.limiter, 3)
	if err != nil {
		return nil, fmt.Errorf("github %s/%s: %w", owner, name, err)
	}
	return &repo, nil
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
