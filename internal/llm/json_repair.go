package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// RepairStats records what it took to turn a model reply into valid JSON.
type RepairStats struct {
	WasRepaired bool     `json:"was_repaired"`
	Strategies  []string `json:"strategies,omitempty"`
}

type repairStrategy struct {
	name  string
	apply func(string) string
}

// Repair strategies are cheap regex/scan passes tried in order before
// falling back to the jsonrepair library. Each pass must be a no-op on
// already-valid JSON.
var repairStrategies = []repairStrategy{
	{"trailing_commas", stripTrailingCommas},
	{"close_open_scopes", closeOpenScopes},
	{"bare_keys", quoteBareKeys},
	{"single_quotes", normalizeQuotes},
}

// Repair attempts to turn malformed JSON into valid JSON. It returns the
// repaired text, stats about the applied strategies, and a non-nil error
// only when every strategy (including the library fallback) fails.
func Repair(raw string) (string, RepairStats, error) {
	var stats RepairStats

	if json.Valid([]byte(raw)) {
		return raw, stats, nil
	}

	stats.WasRepaired = true
	repaired := raw

	for _, s := range repairStrategies {
		next := s.apply(repaired)
		if next != repaired {
			stats.Strategies = append(stats.Strategies, s.name)
			repaired = next
		}
		if json.Valid([]byte(repaired)) {
			return repaired, stats, nil
		}
	}

	// Library fallback handles the cases the cheap passes cannot.
	libRepaired, err := jsonrepair.JSONRepair(repaired)
	if err == nil && json.Valid([]byte(libRepaired)) {
		stats.Strategies = append(stats.Strategies, "jsonrepair_library")
		return libRepaired, stats, nil
	}

	return repaired, stats, &RepairError{Strategies: stats.Strategies}
}

// RepairError reports that no repair strategy produced valid JSON.
type RepairError struct {
	Strategies []string
}

func (e *RepairError) Error() string {
	if len(e.Strategies) == 0 {
		return "json repair failed: no strategy applied"
	}
	return "json repair failed after strategies: " + strings.Join(e.Strategies, ", ")
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	singleQuotedRe  = regexp.MustCompile(`'([^']*)'`)
)

func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// closeOpenScopes appends the closing braces/brackets a truncated reply is
// missing, last-opened first.
func closeOpenScopes(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				stack = append(stack, '}')
			}
		case '[':
			if !inString {
				stack = append(stack, ']')
			}
		case '}', ']':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return s
	}

	out := []byte(strings.TrimRight(s, " \t\n,"))
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, stack[i])
	}
	return string(out)
}

func quoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2"$3`)
}

func normalizeQuotes(s string) string {
	if !singleQuotedRe.MatchString(s) {
		return s
	}
	return singleQuotedRe.ReplaceAllString(s, `"$1"`)
}
