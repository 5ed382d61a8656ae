package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

// Provider represents an AI provider type
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// ConnectorOptions contains options for creating a connector
type ConnectorOptions struct {
	Provider          Provider `json:"provider"`
	APIKey            string   `json:"api_key"`
	BaseURL           string   `json:"base_url,omitempty"`
	Model             string   `json:"model,omitempty"`
	RequestsPerSecond float64  `json:"requests_per_second,omitempty"`
}

// Connector is a Client backed by a langchaingo model. A shared rate
// limiter keeps the classifier and the decision engine from exceeding the
// provider's request quota between them.
type Connector struct {
	provider Provider
	model    llms.Model
	limiter  *rate.Limiter
}

// NewConnector creates a new connector for the specified provider
func NewConnector(ctx context.Context, options ConnectorOptions) (*Connector, error) {
	var model llms.Model
	var err error

	log.Debug().
		Str("provider", string(options.Provider)).
		Str("model", options.Model).
		Msg("Creating model connector")

	switch options.Provider {
	case ProviderOpenAI:
		model, err = createOpenAIModel(options)
	case ProviderGemini:
		model, err = createGeminiModel(ctx, options)
	case ProviderOllama:
		model, err = createOllamaModel(options)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", options.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create model for provider %s: %w", options.Provider, err)
	}

	rps := options.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	return &Connector{
		provider: options.Provider,
		model:    model,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

func (c *Connector) Name() string {
	return string(c.provider)
}

// Propose issues one model call and returns the raw reply text.
func (c *Connector) Propose(ctx context.Context, req ProposeRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.User),
	}

	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(req.Temperature))
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	return resp.Choices[0].Content, nil
}

func createOpenAIModel(options ConnectorOptions) (llms.Model, error) {
	opts := []openai.Option{openai.WithToken(options.APIKey)}
	if options.Model != "" {
		opts = append(opts, openai.WithModel(options.Model))
	}
	if options.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(options.BaseURL))
	}
	return openai.New(opts...)
}

func createGeminiModel(ctx context.Context, options ConnectorOptions) (llms.Model, error) {
	opts := []googleai.Option{googleai.WithAPIKey(options.APIKey)}
	if options.Model != "" {
		opts = append(opts, googleai.WithDefaultModel(options.Model))
	}
	return googleai.New(ctx, opts...)
}

func createOllamaModel(options ConnectorOptions) (llms.Model, error) {
	opts := []ollama.Option{}
	if options.Model != "" {
		opts = append(opts, ollama.WithModel(options.Model))
	}
	if options.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(options.BaseURL))
	}
	return ollama.New(opts...)
}
