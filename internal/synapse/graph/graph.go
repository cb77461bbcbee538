package graph

import (
	"sort"

	artdomain "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
	reldomain "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/domain"
)

// Node carries the display metadata a renderer needs to draw an artifact.
// Kind only drives presentation (node color); it has no graph semantics.
type Node struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// Edge is an undirected connection between two known nodes.
type Edge struct {
	From  int64   `json:"from"`
	To    int64   `json:"to"`
	Kind  string  `json:"kind"`
	Score float64 `json:"score"`
	Note  string  `json:"note,omitempty"`
}

// Diagnostic records a relationship that was dropped because one of its
// endpoints is not part of the current node set (e.g. the other artifact
// lives outside the requested project scope). Never fatal.
type Diagnostic struct {
	ArtifactID1 int64  `json:"artifact_id_1"`
	ArtifactID2 int64  `json:"artifact_id_2"`
	Reason      string `json:"reason"`
}

// Graph is an in-memory view over artifacts and relationships, rebuilt from
// scratch on every Build call. Every edge endpoint is guaranteed to be a
// known node.
type Graph struct {
	nodes map[int64]Node
	edges []Edge
	adj   map[int64][]int // node id -> indexes into edges
}

// Build assembles a graph from the given artifacts and relationships.
// Relationships referencing an artifact outside the node set are dropped and
// reported as diagnostics.
func Build(arts []artdomain.Artifact, rels []reldomain.Relationship) (*Graph, []Diagnostic) {
	g := &Graph{
		nodes: make(map[int64]Node, len(arts)),
		edges: make([]Edge, 0, len(rels)),
		adj:   make(map[int64][]int),
	}

	for _, a := range arts {
		g.nodes[a.ID] = Node{
			ID:          a.ID,
			Title:       a.Title,
			Kind:        nodeKind(a),
			Description: a.Description,
		}
	}

	var diags []Diagnostic
	for _, r := range rels {
		_, ok1 := g.nodes[r.ArtifactID1]
		_, ok2 := g.nodes[r.ArtifactID2]
		if !ok1 || !ok2 {
			diags = append(diags, Diagnostic{
				ArtifactID1: r.ArtifactID1,
				ArtifactID2: r.ArtifactID2,
				Reason:      "relationship endpoint not in node set",
			})
			continue
		}

		idx := len(g.edges)
		g.edges = append(g.edges, Edge{
			From:  r.ArtifactID1,
			To:    r.ArtifactID2,
			Kind:  r.Kind,
			Score: r.Score,
			Note:  r.Note,
		})
		g.adj[r.ArtifactID1] = append(g.adj[r.ArtifactID1], idx)
		g.adj[r.ArtifactID2] = append(g.adj[r.ArtifactID2], idx)
	}

	return g, diags
}

func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given id, if present.
func (g *Graph) Node(id int64) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes ordered by id so iteration is deterministic.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the edges touching the given node.
func (g *Graph) Neighbors(id int64) []Edge {
	idxs := g.adj[id]
	out := make([]Edge, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.edges[i])
	}
	return out
}

// Snapshot is the serializable form of a built graph, used for caching and
// as the JSON payload handed to the visualization side.
type Snapshot struct {
	Nodes       []Node       `json:"nodes"`
	Edges       []Edge       `json:"edges"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Snapshot flattens the graph together with the build diagnostics.
func (g *Graph) Snapshot(diags []Diagnostic) Snapshot {
	return Snapshot{Nodes: g.Nodes(), Edges: g.Edges(), Diagnostics: diags}
}

// nodeKind classifies an artifact for presentation. Untagged artifacts fall
// back to a generic kind.
func nodeKind(a artdomain.Artifact) string {
	if len(a.Tags) > 0 {
		return "tagged"
	}
	return "artifact"
}
