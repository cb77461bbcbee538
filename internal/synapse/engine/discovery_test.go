package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
)

// titleOnly gives scores that are exactly the PartialRatio of the titles,
// which keeps the expected values in these tests easy to reason about.
func titleOnly(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(Weights{Title: 1}, nil)
}

func TestFindConnections(t *testing.T) {
	eng := titleOnly(t)

	t.Run("empty candidate list", func(t *testing.T) {
		matches, diags := eng.FindConnections(domain.Artifact{ID: 1, Title: "x"}, nil, 50)
		assert.Empty(t, matches)
		assert.Empty(t, diags)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		target := domain.Artifact{ID: 1, Title: "abcd"}
		candidates := []domain.Artifact{
			{ID: 2, Title: "abcd"}, // 100
			{ID: 3, Title: "abzd"}, // 75
			{ID: 4, Title: "azzd"}, // 50
		}

		matches, diags := eng.FindConnections(target, candidates, 75)
		require.Empty(t, diags)
		require.Len(t, matches, 2)
		assert.Equal(t, int64(2), matches[0].Artifact.ID)
		assert.Equal(t, 100.0, matches[0].Score)
		assert.Equal(t, int64(3), matches[1].Artifact.ID)
		assert.InDelta(t, 75.0, matches[1].Score, 0.001)
	})

	t.Run("equal scores break ties by ascending id", func(t *testing.T) {
		target := domain.Artifact{ID: 1, Title: "abcd"}
		candidates := []domain.Artifact{
			{ID: 9, Title: "abcd"},
			{ID: 3, Title: "abcd"},
			{ID: 5, Title: "abcd"},
		}

		matches, _ := eng.FindConnections(target, candidates, 50)
		require.Len(t, matches, 3)
		assert.Equal(t, int64(3), matches[0].Artifact.ID)
		assert.Equal(t, int64(5), matches[1].Artifact.ID)
		assert.Equal(t, int64(9), matches[2].Artifact.ID)
	})

	t.Run("target and zero-id candidates are skipped silently", func(t *testing.T) {
		target := domain.Artifact{ID: 1, Title: "abcd"}
		candidates := []domain.Artifact{
			{ID: 1, Title: "abcd"}, // the target itself
			{ID: 0, Title: "abcd"}, // unsaved
			{ID: 2, Title: "abcd"},
		}

		matches, diags := eng.FindConnections(target, candidates, 50)
		assert.Empty(t, diags)
		require.Len(t, matches, 1)
		assert.Equal(t, int64(2), matches[0].Artifact.ID)
	})

	t.Run("deterministic across repeated runs", func(t *testing.T) {
		target := domain.Artifact{ID: 1, Title: "abcd"}
		candidates := []domain.Artifact{
			{ID: 7, Title: "abcd"},
			{ID: 2, Title: "abzd"},
			{ID: 4, Title: "abcd"},
		}

		first, _ := eng.FindConnections(target, candidates, 50)
		for i := 0; i < 5; i++ {
			again, _ := eng.FindConnections(target, candidates, 50)
			assert.Equal(t, first, again)
		}
	})
}
