package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSimilarity(t *testing.T) {
	t.Run("empty sets score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, TagSimilarity(nil, []string{"go"}))
		assert.Equal(t, 0.0, TagSimilarity([]string{"go"}, nil))
		assert.Equal(t, 0.0, TagSimilarity(nil, nil))
	})

	t.Run("case insensitive jaccard", func(t *testing.T) {
		// intersection {alpha}, union {alpha, beta, gamma}
		got := TagSimilarity([]string{"Alpha", "Beta"}, []string{"alpha", "Gamma"})
		assert.InDelta(t, 100.0/3.0, got, 0.001)
	})

	t.Run("identical sets score 100", func(t *testing.T) {
		got := TagSimilarity([]string{"GO", "redis"}, []string{"go", "Redis"})
		assert.Equal(t, 100.0, got)
	})

	t.Run("disjoint sets score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, TagSimilarity([]string{"a"}, []string{"b"}))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		got := TagSimilarity([]string{"go", "Go", "GO"}, []string{"go"})
		assert.Equal(t, 100.0, got)
	})
}
