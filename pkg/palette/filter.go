// ABOUTME: Builds a Selector from doublestar glob patterns over "group/key" paths.
// ABOUTME: Patterns that match nothing get fuzzy "did you mean" suggestions.

package palette

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// Unmatched describes a pattern that selected no slot.
type Unmatched struct {
	Pattern     string
	Suggestions []string
}

// Filter compiles patterns such as "primary/*" or "indexed/1?" into a
// Selector over t. No patterns selects everything. Invalid patterns are
// an error; valid patterns that select nothing are reported in Unmatched.
func Filter(t Table, patterns []string) (Selector, []Unmatched, error) {
	if len(patterns) == 0 {
		return nil, nil, nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, nil, fmt.Errorf("invalid slot pattern %q", p)
		}
	}

	paths := t.Paths()
	selected := make(map[string]bool, len(paths))
	var unmatched []Unmatched
	for _, p := range patterns {
		hits := 0
		for _, path := range paths {
			if ok, _ := doublestar.Match(p, path); ok {
				selected[path] = true
				hits++
			}
		}
		if hits == 0 {
			unmatched = append(unmatched, Unmatched{Pattern: p, Suggestions: suggest(p, paths)})
		}
	}

	return func(path string) bool { return selected[path] }, unmatched, nil
}

func suggest(pattern string, paths []string) []string {
	matches := fuzzy.Find(pattern, paths)
	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].Str)
	}
	return out
}
