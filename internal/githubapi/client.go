// Package githubapi proxies the public GitHub repository listing used on
// profile pages. It is a pass-through: the upstream JSON body is returned
// to the caller unparsed.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoProfile is returned when GitHub answers anything but 200 for the
// username.
var ErrNoProfile = errors.New("no github profile found")

// Client lists a user's repositories. BaseURL is overridable for tests.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      "https://api.github.com",
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(base string) *Client {
	c := NewClient("", "")
	c.baseURL = base
	return c
}

// ListRepos returns the raw JSON body for the user's five most recently
// created repositories.
func (c *Client) ListRepos(ctx context.Context, username string) ([]byte, error) {
	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	u := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devconnect")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoProfile
	}
	return io.ReadAll(resp.Body)
}
