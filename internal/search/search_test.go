package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		query    string
		target   string
		expected int
	}{
		{"pizza", "pizza", scoreExact},
		{"PIZZA", "pizza", scoreExact},
		{"piz", "pizza", scorePrefix},
		{"zza", "pizza", scoreSubstring},
		{"pza", "pizza", scoreSubsequence},
		{"xyz", "pizza", 0},
		{"", "pizza", 0},
		{"  piz  ", "pizza", scorePrefix},
		// hebrew
		{"פיצה", "פיצה השכונה", scorePrefix},
		{"שכונה", "פיצה השכונה", scoreSubstring},
		// cyrillic
		{"автобус", "Автобусы Шарон", scorePrefix},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Score(tc.query, tc.target), "query=%q target=%q", tc.query, tc.target)
	}
}

func TestRank(t *testing.T) {
	targets := []string{
		"pizza hut",       // prefix
		"la pizza",        // substring
		"pizza",           // exact
		"shawarma place",  // no match
		"pasta n' pizzas", // substring, after la pizza (stable)
	}

	matches := Rank("pizza", targets)
	assert.Len(t, matches, 4)
	assert.Equal(t, 2, matches[0].Index)
	assert.Equal(t, 0, matches[1].Index)
	assert.Equal(t, 1, matches[2].Index)
	assert.Equal(t, 4, matches[3].Index)
}

func TestRank_NoMatches(t *testing.T) {
	matches := Rank("sushi", []string{"pizza", "falafel"})
	assert.Empty(t, matches)
}
