package assistant

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ferhatural/paint-assistant/internal/llm"
	"github.com/ferhatural/paint-assistant/pkg/models"
)

const intentSystemPrompt = `You are a query router for a paint retailer's assistant.
Decide which datasets are relevant to the user's query.

Return ONLY a JSON object of this exact shape, nothing else:
{"needsProjects": true|false, "needsColors": true|false, "needsBlog": true|false}

- needsProjects: the query is about portfolio projects, references, clients, or a specific project.
- needsColors: the query is about colors, shades, paint tones, or the color catalog.
- needsBlog: the query asks for ideas, inspiration, or decoration tips.`

// Keyword fallback lists, Turkish and English. Matching is lower-cased
// substring containment.
var (
	projectKeywords = []string{"project", "proje"}
	colorKeywords   = []string{"color", "colour", "renk", "boya", "paint"}
	blogKeywords    = []string{"idea", "fikir", "blog", "ilham", "inspiration"}
)

// Classifier maps a raw query to coarse relevance flags. The model path is
// preferred; a pure keyword fallback guarantees the pipeline always gets
// some flags, so Classify never returns an error.
type Classifier struct {
	llm         llm.Client
	temperature float64
}

// NewClassifier creates a classifier over the given model client. The
// temperature is pinned to zero for deterministic routing.
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{llm: client, temperature: 0}
}

// Classify returns the relevance flags for query.
func (c *Classifier) Classify(ctx context.Context, query string) models.IntentFlags {
	reply, err := c.llm.Propose(ctx, llm.ProposeRequest{
		System:      intentSystemPrompt,
		User:        query,
		Temperature: c.temperature,
	})
	if err != nil {
		log.Warn().Err(err).Msg("intent model call failed, using keyword fallback")
		return keywordFlags(query)
	}

	var flags models.IntentFlags
	if _, err := llm.DecodeInto(reply, &flags); err != nil {
		log.Warn().Err(err).Msg("intent reply unparseable, using keyword fallback")
		return keywordFlags(query)
	}

	return flags
}

// keywordFlags is the pure fallback: no I/O, always terminates, always
// returns a valid flags value.
func keywordFlags(query string) models.IntentFlags {
	q := strings.ToLower(query)
	return models.IntentFlags{
		NeedsProjects: containsAny(q, projectKeywords),
		NeedsColors:   containsAny(q, colorKeywords),
		NeedsBlog:     containsAny(q, blogKeywords),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
