package graph

import (
	"fmt"
	"strings"
)

// ToDOT renders a graph snapshot as Graphviz DOT text for the visualization
// side. Edges are undirected. Layout is left entirely to the renderer.
func ToDOT(s Snapshot, title string) string {
	var b strings.Builder
	b.WriteString("graph G {\n  layout=neato;\n  node [shape=box, style=rounded];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label="%s"; fontname="Helvetica";`, escape(title)))
		b.WriteString("\n")
	}

	for _, n := range s.Nodes {
		style := `style="rounded,filled",fillcolor="#d5f5d5"`
		if n.Kind == "tagged" {
			style = `style="rounded,filled",fillcolor="#ffe0a3"`
		}
		b.WriteString(fmt.Sprintf("  %d [label=\"%s\", %s];\n", n.ID, escape(n.Title), style))
	}

	for i, e := range s.Edges {
		lbl := e.Kind
		if e.Score > 0 {
			lbl = fmt.Sprintf("%s (%.0f)", lbl, e.Score)
		}
		b.WriteString(fmt.Sprintf("  %d -- %d [label=\"%s\", tooltip=\"edge#%d\"];\n",
			e.From, e.To, escape(lbl), i))
	}

	b.WriteString("}\n")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
