// Package github talks to the source-host REST API: the public per-user
// event feed, the repository listing, and the contents endpoint used to
// rewrite shared JSON documents.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

// Client is a thin wrapper over the REST API. The token is optional for
// reads (the unauthenticated tier is rate-limited but sufficient) and
// required for contents writes.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithToken sets the bearer token for authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client with default timeout and base URL.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: constants.GitHubAPIBase,
		http:    &http.Client{Timeout: constants.GitHubHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rawEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
}

// UserEvents fetches the most recent public events for a user, newest
// first, as the feed returns them.
func (c *Client) UserEvents(ctx context.Context, user string) ([]models.ActivityEvent, error) {
	if user == "" {
		return nil, fmt.Errorf("user must not be empty")
	}
	endpoint := fmt.Sprintf("%s/users/%s/events/public?per_page=%d",
		c.baseURL, url.PathEscape(user), constants.EventFeedPageSize)

	var raw []rawEvent
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	events := make([]models.ActivityEvent, 0, len(raw))
	for _, e := range raw {
		events = append(events, models.ActivityEvent{
			CreatedAt: e.CreatedAt,
			Kind:      e.Type,
			Repo:      e.Repo.Name,
		})
	}
	return events, nil
}

// UserRepos fetches a user's public repositories sorted by last update.
// Forks are dropped.
func (c *Client) UserRepos(ctx context.Context, user string) ([]models.Repo, error) {
	if user == "" {
		return nil, fmt.Errorf("user must not be empty")
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated", c.baseURL, url.PathEscape(user))

	var raw []models.Repo
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	repos := make([]models.Repo, 0, len(raw))
	for _, r := range raw {
		if r.Fork {
			continue
		}
		repos = append(repos, r)
	}
	return repos, nil
}

type contentsFile struct {
	SHA string `json:"sha"`
}

type contentsUpdate struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// UpdateFile replaces a file in a repository through the contents API:
// fetch the current revision token, then PUT the full new content. This is
// read-modify-write with last-writer-wins; there is no retry on a stale
// token.
func (c *Client) UpdateFile(ctx context.Context, owner, repo, path, message string, content []byte) error {
	if c.token == "" {
		return fmt.Errorf("contents update requires a token")
	}
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), path)

	var current contentsFile
	sha := ""
	if err := c.getJSON(ctx, endpoint, &current); err == nil {
		sha = current.SHA
	}

	body, err := json.Marshal(contentsUpdate{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("failed to encode contents update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("contents update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("contents update failed: %s", resp.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
