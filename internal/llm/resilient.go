package llm

import (
	"context"

	"github.com/ferhatural/paint-assistant/internal/retry"
)

// ResilientClient wraps a Client with retry and backoff. Parse-level
// fallbacks live with the callers; this layer only retries transport and
// provider errors.
type ResilientClient struct {
	inner Client
	cfg   retry.Config
}

// NewResilientClient wraps client with the given retry configuration.
func NewResilientClient(client Client, cfg retry.Config) *ResilientClient {
	return &ResilientClient{inner: client, cfg: cfg}
}

// NewResilientClientWithDefaults wraps client with the LLM-tuned retry
// configuration.
func NewResilientClientWithDefaults(client Client) *ResilientClient {
	return NewResilientClient(client, retry.ModelCallConfig())
}

func (rc *ResilientClient) Name() string {
	return rc.inner.Name()
}

func (rc *ResilientClient) Propose(ctx context.Context, req ProposeRequest) (string, error) {
	var response string

	err := retry.Do(ctx, rc.cfg, func() error {
		var callErr error
		response, callErr = rc.inner.Propose(ctx, req)
		return callErr
	})
	if err != nil {
		return "", err
	}

	return response, nil
}
