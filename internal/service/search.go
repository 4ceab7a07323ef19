package service

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// noMatch ranks results whose title does not match the query at all
const noMatch = 1 << 30

// rankResults applies fuzzy ranking to search results.
// Results that do not match keep their API order at the end.
func rankResults(results []domain.SearchResult, query string) []domain.SearchResult {
	if len(results) == 0 {
		return results
	}

	query = strings.ToLower(strings.TrimSpace(query))

	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = strings.ToLower(r.Title())
	}

	// Fuzzy distance for every title containing the query's characters in order
	distances := make(map[int]int, len(results))
	for _, rank := range fuzzy.RankFindFold(query, titles) {
		distances[rank.OriginalIndex] = rank.Distance
	}

	type rankedResult struct {
		result   domain.SearchResult
		score    int
		distance int
	}

	ranked := make([]rankedResult, len(results))
	for i, r := range results {
		ranked[i] = rankedResult{
			result:   r,
			score:    calculateMatchScore(titles[i], query, distances, i),
			distance: fuzzy.LevenshteinDistance(query, titles[i]),
		}
	}

	// Sort by score, then edit distance (lower is better)
	slices.SortStableFunc(ranked, func(a, b rankedResult) int {
		if a.score != b.score {
			return a.score - b.score
		}
		if a.score == noMatch {
			return 0
		}
		return a.distance - b.distance
	})

	out := make([]domain.SearchResult, len(ranked))
	for i, r := range ranked {
		out[i] = r.result
	}
	return out
}

// calculateMatchScore calculates a match score for ranking.
// Lower score = better match
func calculateMatchScore(title, query string, distances map[int]int, index int) int {
	// Exact match is best
	if title == query {
		return 0
	}

	// Prefix match is very good
	if strings.HasPrefix(title, query) {
		return 10
	}

	// Contains match is good
	if strings.Contains(title, query) {
		return 50
	}

	if distance, ok := distances[index]; ok {
		return 100 + distance
	}
	return noMatch
}
