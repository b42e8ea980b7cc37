package blockpalettes

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

type BlockMatch struct {
	Name       string
	Similarity float64
}

// RankBlocks orders `candidates` by how closely they resemble `query`, most
// similar first. Comparison ignores case and treats underscores as spaces so
// that "oak log" ranks "oak_log" first. Candidates with equal similarity keep
// their original order.
func RankBlocks(query string, candidates []string) []BlockMatch {
	normalizedQuery := normalizeBlockName(query)

	matches := make([]BlockMatch, len(candidates))
	for i, candidate := range candidates {
		similarity := 1.0
		if candidate != query {
			similarity = matchr.JaroWinkler(normalizedQuery, normalizeBlockName(candidate), false)
		}
		matches[i] = BlockMatch{Name: candidate, Similarity: similarity}
	}

	slices.SortStableFunc(matches, func(a, b BlockMatch) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})
	return matches
}

func normalizeBlockName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", " ")
}
