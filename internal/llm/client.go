package llm

import "context"

// ProposeRequest is one model call: a system prompt carrying the behavioral
// contract, the user's text, and a temperature. No streaming is needed;
// replies are expected to be a single JSON object.
type ProposeRequest struct {
	System      string
	User        string
	Temperature float64
}

// Client is the capability interface over a language model. Implementations
// must be safe for concurrent use. Tests substitute deterministic fakes.
type Client interface {
	Propose(ctx context.Context, req ProposeRequest) (string, error)
	Name() string
}
