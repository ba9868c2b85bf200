package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/bookit/internal/model"
)

// SearchResult represents a fuzzy match against a bookmark name.
type SearchResult struct {
	Name           string
	MatchedIndexes []int
	Score          int
}

// FuzzySearchNames matches query against all bookmark names.
// Returns results sorted by match score (best first).
func FuzzySearchNames(c *model.Collection, query string) []SearchResult {
	if query == "" {
		return nil
	}

	names := c.Names()
	matches := fuzzy.Find(query, names)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Name:           m.Str,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Suggest returns at most limit names that resemble name, best first.
// name itself is never suggested.
func Suggest(c *model.Collection, name string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	var suggestions []string
	for _, r := range FuzzySearchNames(c, name) {
		if r.Name == name {
			continue
		}
		suggestions = append(suggestions, r.Name)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions
}
