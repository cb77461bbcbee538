package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
)

func TestWeightsNormalization(t *testing.T) {
	t.Run("scaled weights are equivalent", func(t *testing.T) {
		a := NewEngine(Weights{Title: 1, Description: 1, Content: 1, Tags: 1}, nil)
		b := NewEngine(Weights{Title: 2, Description: 2, Content: 2, Tags: 2}, nil)
		assert.Equal(t, a.Weights(), b.Weights())
	})

	t.Run("normalized weights sum to one", func(t *testing.T) {
		w := NewEngine(DefaultWeights(), nil).Weights()
		assert.InDelta(t, 1.0, w.Title+w.Description+w.Content+w.Tags, 1e-9)
		assert.InDelta(t, 0.4/1.3, w.Title, 1e-9)
	})

	t.Run("all-zero falls back to equal split", func(t *testing.T) {
		w := NewEngine(Weights{}, nil).Weights()
		assert.Equal(t, Weights{Title: 0.25, Description: 0.25, Content: 0.25, Tags: 0.25}, w)
	})
}

func TestEngineScore(t *testing.T) {
	eng := NewEngine(DefaultWeights(), nil)

	t.Run("same id scores zero", func(t *testing.T) {
		a := domain.Artifact{ID: 1, Title: "same", Description: "same", Content: "same"}
		assert.Equal(t, 0.0, eng.Score(a, a))
	})

	t.Run("all attributes empty scores zero", func(t *testing.T) {
		a := domain.Artifact{ID: 1}
		b := domain.Artifact{ID: 2}
		assert.Equal(t, 0.0, eng.Score(a, b))
	})

	t.Run("identical attributes score 100", func(t *testing.T) {
		a := domain.Artifact{ID: 1, Title: "t", Description: "d", Content: "c", Tags: []string{"x"}}
		b := domain.Artifact{ID: 2, Title: "t", Description: "d", Content: "c", Tags: []string{"x"}}
		assert.InDelta(t, 100.0, eng.Score(a, b), 1e-9)
	})

	t.Run("score is symmetric for distinct ids", func(t *testing.T) {
		a := domain.Artifact{ID: 1, Title: "graph databases", Content: "neo4j and friends"}
		b := domain.Artifact{ID: 2, Title: "graph db overview", Content: "neo4j"}
		assert.InDelta(t, eng.Score(a, b), eng.Score(b, a), 1e-9)
	})

	t.Run("title weight dominates with default weights", func(t *testing.T) {
		target := domain.Artifact{ID: 1, Title: "shared title"}
		titleMatch := domain.Artifact{ID: 2, Title: "shared title"}
		descMatch := domain.Artifact{ID: 3, Description: "shared title"}
		assert.Greater(t, eng.Score(target, titleMatch), eng.Score(target, descMatch))
	})
}
