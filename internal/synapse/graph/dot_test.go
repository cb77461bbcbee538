package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	artdomain "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
	reldomain "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/domain"
)

func TestToDOT(t *testing.T) {
	arts := []artdomain.Artifact{
		{ID: 1, Title: `Mood "board"`, Tags: []string{"design"}},
		{ID: 2, Title: "Launch plan"},
	}
	rels := []reldomain.Relationship{
		{ArtifactID1: 1, ArtifactID2: 2, Kind: reldomain.KindSynapse, Score: 85},
	}

	g, diags := Build(arts, rels)
	out := ToDOT(g.Snapshot(diags), "Projeto Criativo")

	assert.True(t, strings.HasPrefix(out, "graph G {"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `label="Projeto Criativo"`)
	assert.Contains(t, out, "1 -- 2")
	assert.Contains(t, out, "synapse (85)")
	// quotes in titles must be escaped
	assert.Contains(t, out, `Mood \"board\"`)
	assert.NotContains(t, out, "->")
	// tagged vs plain node fill
	assert.Contains(t, out, "#ffe0a3")
	assert.Contains(t, out, "#d5f5d5")
}

func TestToDOTEmptyGraph(t *testing.T) {
	out := ToDOT(Snapshot{}, "")
	assert.Contains(t, out, "graph G {")
	assert.NotContains(t, out, "--")
	assert.NotContains(t, out, "label=\"\"; ")
}
