// Package projects is the client for the projects collaborator: a plain
// REST endpoint serving the full portfolio list. The list is small and
// unpaginated; every call returns everything.
package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

// Client fetches portfolio projects.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a projects client against baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches the full project list. Callers treat a failure as "no
// projects context available" and continue the turn.
func (c *Client) List(ctx context.Context) ([]models.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("building projects request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("projects endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Projects []models.Project `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding projects response: %w", err)
	}

	return payload.Projects, nil
}
