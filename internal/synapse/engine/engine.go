package engine

import (
	"log"

	"github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
)

// Logger is the sink the engine reports warnings and per-candidate failures
// to. *log.Logger satisfies it; components receive it injected rather than
// writing to a process-wide default.
type Logger interface {
	Printf(format string, args ...any)
}

// Engine computes weighted fuzzy similarity between artifacts. Weights are
// normalized once at construction; building a new Engine is the only way to
// change them.
type Engine struct {
	weights Weights
	log     Logger
}

func NewEngine(w Weights, logger Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{weights: w.normalized(), log: logger}
}

// Weights returns the normalized weights the engine was constructed with.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score returns the weighted similarity of two artifacts on a 0-100 scale.
// An artifact is never similar to itself for connection purposes, so two
// equal ids score 0. Pure function of the inputs and the configured weights.
func (e *Engine) Score(a, b domain.Artifact) float64 {
	if a.ID == b.ID {
		return 0
	}

	titleSim := PartialRatio(a.Title, b.Title)
	descSim := PartialRatio(a.Description, b.Description)
	contentSim := PartialRatio(a.Content, b.Content)
	tagSim := TagSimilarity(a.Tags, b.Tags)

	return e.weights.Title*titleSim +
		e.weights.Description*descSim +
		e.weights.Content*contentSim +
		e.weights.Tags*tagSim
}
