// Package blog talks to the retailer's blog API: a single POST endpoint
// multiplexed by a "job" field. Both operations fail soft so a blog outage
// never breaks a chat turn.
package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

// Client fetches blog posts.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a blog client against baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListPosts returns the blog post list, or an empty slice on any error.
func (c *Client) ListPosts(ctx context.Context) []models.BlogPost {
	var posts []models.BlogPost
	if err := c.call(ctx, map[string]string{"job": "get_blog_list"}, &posts); err != nil {
		log.Warn().Err(err).Msg("blog list fetch failed, continuing without posts")
		return nil
	}
	return posts
}

// GetPostDetail returns the full post including content, or nil on any
// error.
func (c *Client) GetPostDetail(ctx context.Context, id string) *models.BlogPost {
	var post models.BlogPost
	if err := c.call(ctx, map[string]string{"job": "get_blog_details", "id": id}, &post); err != nil {
		log.Warn().Err(err).Str("post_id", id).Msg("blog detail fetch failed")
		return nil
	}
	return &post
}

func (c *Client) call(ctx context.Context, job map[string]string, target interface{}) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding blog request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api.php", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building blog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling blog API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("blog API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding blog response: %w", err)
	}

	return nil
}
