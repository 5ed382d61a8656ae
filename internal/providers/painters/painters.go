// Package painters is the client for the painter-services collaborator.
// It is surfaced by the painter-services panel but not consulted by the
// decision flow.
package painters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

// Client fetches registered painters by city.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a painters client against baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListPainters returns painters registered in the given city. Profile
// photo links arrive relative to the API host and are rewritten to
// absolute URLs before the result leaves this package.
func (c *Client) ListPainters(ctx context.Context, city string) ([]models.Painter, error) {
	body, err := json.Marshal(map[string]string{"job": "get_painter_list", "city": city})
	if err != nil {
		return nil, fmt.Errorf("encoding painters request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api.php", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building painters request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling painters API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("painters API returned status %d", resp.StatusCode)
	}

	var painters []models.Painter
	if err := json.NewDecoder(resp.Body).Decode(&painters); err != nil {
		return nil, fmt.Errorf("decoding painters response: %w", err)
	}

	for i := range painters {
		painters[i].ProfilePhotoLink = c.absolutePhotoLink(painters[i].ProfilePhotoLink)
	}

	return painters, nil
}

func (c *Client) absolutePhotoLink(link string) string {
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return c.baseURL + "/" + strings.TrimPrefix(link, "/")
}
