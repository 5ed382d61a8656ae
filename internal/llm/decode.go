package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ExtractJSON pulls the JSON object out of a model reply. It handles
// replies wrapped in markdown code fences and replies with explanatory
// text around the object. Returns "" when no object can be located.
func ExtractJSON(response string) string {
	trimmed := strings.TrimSpace(response)

	// Strip a ```json (or plain ```) fence if present.
	if idx := strings.Index(trimmed, "```"); idx != -1 {
		rest := trimmed[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end != -1 {
			rest = rest[:end]
		}
		trimmed = strings.TrimSpace(rest)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 {
		return ""
	}
	if end <= start {
		// A truncated reply may miss the closing brace. Take everything
		// from the first brace and let the repair pass close it.
		return trimmed[start:]
	}

	return trimmed[start : end+1]
}

// DecodeInto extracts, repairs, and unmarshals a model reply into target.
// The returned stats tell the caller whether repair was needed, which is
// worth a log line but never an error by itself.
func DecodeInto(response string, target interface{}) (RepairStats, error) {
	var stats RepairStats

	jsonStr := ExtractJSON(response)
	if jsonStr == "" {
		return stats, fmt.Errorf("no JSON object found in model reply")
	}

	repaired, stats, err := Repair(jsonStr)
	if err != nil {
		return stats, fmt.Errorf("model reply is not repairable JSON: %w", err)
	}

	if stats.WasRepaired {
		log.Debug().
			Strs("strategies", stats.Strategies).
			Msg("repaired malformed model reply")
	}

	if err := json.Unmarshal([]byte(repaired), target); err != nil {
		return stats, fmt.Errorf("failed to parse model reply: %w", err)
	}

	return stats, nil
}
