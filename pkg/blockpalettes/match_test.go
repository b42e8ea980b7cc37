package blockpalettes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func names(matches []BlockMatch) []string {
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Name
	}
	return out
}

func TestRankBlocks(t *testing.T) {
	candidates := []string{"spruce_planks", "oak_log", "stone", "oak_planks"}

	matches := RankBlocks("oak log", candidates)
	require.Len(t, matches, len(candidates))
	require.Equal(t, "oak_log", matches[0].Name)
	require.InDelta(t, 1.0, matches[0].Similarity, 1e-9)

	for i := 1; i < len(matches); i++ {
		require.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity)
	}

	exact := RankBlocks("stone", candidates)
	require.Equal(t, "stone", exact[0].Name)
	require.Equal(t, 1.0, exact[0].Similarity)
}

func TestRankBlocksStableTies(t *testing.T) {
	matches := RankBlocks("Stone", []string{"STONE", "stone", "sTone"})
	require.Equal(t, []string{"STONE", "stone", "sTone"}, names(matches))
}

func TestRankBlocksEmpty(t *testing.T) {
	require.Empty(t, RankBlocks("stone", nil))
}
