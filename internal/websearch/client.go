// Package websearch queries a remote answer endpoint before local retrieval.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config configures the search endpoint client.
type Config struct {
	URL        string
	Timeout    time.Duration
	MaxResults int
}

// Client calls GET {URL}?q={query} and expects {"answers": [...]}.
type Client struct {
	endpoint   string
	maxResults int
	client     *http.Client
}

// NewClient validates cfg and returns a client.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid search url %q", cfg.URL)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Client{
		endpoint:   cfg.URL,
		maxResults: maxResults,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

// Search returns up to MaxResults non-blank answers for query.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	u, _ := url.Parse(c.endpoint)
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search GET %s failed: %s", c.endpoint, resp.Status)
	}
	var out struct {
		Answers []string `json:"answers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	answers := make([]string, 0, len(out.Answers))
	for _, a := range out.Answers {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		answers = append(answers, a)
		if len(answers) == c.maxResults {
			break
		}
	}
	return answers, nil
}
