// Package client is a Go client for the site's public JSON API.
//
// Profile, portfolio and article reads go through a sessioncache.Cache, so a
// Client behaves like one browser tab: repeated reads within the TTL are served
// locally and never hit the network.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/pkg/sessioncache"
	"golang.org/x/sync/errgroup"
)

// Cache keys
const (
	ProfileKey       = "profile"
	PortfolioKey     = "portfolio"
	articleKeyPrefix = "article_"
)

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to one site
type Client struct {
	http.Client
	Addr  string
	cache *sessioncache.Cache
}

// New creates a Client for the site at addr.
// A nil cache gets a fresh in-memory session with the default TTL.
func New(addr string, cache *sessioncache.Cache) *Client {
	if cache == nil {
		cache = sessioncache.New(sessioncache.NewMemoryStorage())
	}
	return &Client{
		Addr:  strings.TrimRight(addr, "/"),
		cache: cache,
	}
}

// Profile returns the site profile document
func (c *Client) Profile(ctx context.Context) (json.RawMessage, error) {
	var profile json.RawMessage
	if err := c.fetchJSON(ctx, ProfileKey, "/api/profile", &profile); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return profile, nil
}

// Portfolio returns the portfolio items
func (c *Client) Portfolio(ctx context.Context) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	if err := c.fetchJSON(ctx, PortfolioKey, "/api/portfolio", &items); err != nil {
		return nil, fmt.Errorf("fetch portfolio: %w", err)
	}
	return items, nil
}

// ProfileAndPortfolio fetches both documents in parallel.
// If either fetch fails, neither result is returned.
func (c *Client) ProfileAndPortfolio(ctx context.Context) (json.RawMessage, []models.PortfolioItem, error) {
	var profile json.RawMessage
	var portfolio []models.PortfolioItem

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = c.Profile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		portfolio, err = c.Portfolio(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return profile, portfolio, nil
}

// Article returns one article by id
func (c *Client) Article(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	if err := c.fetchJSON(ctx, articleKeyPrefix+id, "/api/articles/"+url.PathEscape(id), &article); err != nil {
		return nil, fmt.Errorf("fetch article %s: %w", id, err)
	}
	return &article, nil
}

// IncrementViews records one view of the article; it is never cached
func (c *Client) IncrementViews(ctx context.Context, id string) (*models.WriteResult, error) {
	body, err := c.get(ctx, "/api/articles/"+url.PathEscape(id)+"/views")
	if err != nil {
		return nil, fmt.Errorf("increment views %s: %w", id, err)
	}
	var ack models.WriteResult
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("decode write result: %w", err)
	}
	return &ack, nil
}

// ClearCache drops every cached response
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// fetchJSON decodes the cached or fetched body of path into v.
// A body that does not decode is returned as an error and never cached.
func (c *Client) fetchJSON(ctx context.Context, key, path string, v interface{}) error {
	body, err := c.cache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		body, err := c.get(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return body, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return nil, apiErr
	}

	return body, nil
}
