// Package search implements simple fuzzy matching over strings,
// used by the vendors directory search. Matching is case-insensitive;
// exact matches rank above prefix matches, prefix above substring,
// substring above in-order subsequence.
package search

import (
	"sort"
	"strings"
)

const (
	scoreExact       = 100
	scorePrefix      = 75
	scoreSubstring   = 50
	scoreSubsequence = 25
)

// Score rates how well query matches target. Zero means no match.
func Score(query, target string) int {
	query = strings.ToLower(strings.TrimSpace(query))
	target = strings.ToLower(target)

	if query == "" {
		return 0
	}

	switch {
	case target == query:
		return scoreExact
	case strings.HasPrefix(target, query):
		return scorePrefix
	case strings.Contains(target, query):
		return scoreSubstring
	case isSubsequence(query, target):
		return scoreSubsequence
	default:
		return 0
	}
}

// isSubsequence reports whether all runes of query appear in target
// in the same order, not necessarily adjacent.
func isSubsequence(query, target string) bool {
	targetRunes := []rune(target)
	i := 0
	for _, q := range query {
		for i < len(targetRunes) && targetRunes[i] != q {
			i++
		}
		if i == len(targetRunes) {
			return false
		}
		i++
	}
	return true
}

// Match pairs a matched item index with its score.
type Match struct {
	Index int
	Score int
}

// Rank scores every target against the query and returns matches
// sorted by score descending. Ties keep the original item order,
// so ranking is stable across calls.
func Rank(query string, targets []string) []Match {
	var matches []Match
	for i, target := range targets {
		if score := Score(query, target); score > 0 {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
