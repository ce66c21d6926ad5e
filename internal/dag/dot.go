package dag

import (
	"bufio"
	"fmt"
	"io"
)

var dotNodeStyle = map[NodeKind]string{
	ConfigNode: `shape=note, style=filled, fillcolor="#fff2cc"`,
	OutputNode: `shape=ellipse, style=filled, fillcolor="#dae8fc"`,
	StepNode:   `shape=box, style="rounded,filled", fillcolor="#f5f5f5"`,
}

// WriteDOT renders the graph in Graphviz DOT format. Steps that are part of
// plan are drawn with a bold green outline; plan may be nil.
func WriteDOT(w io.Writer, g *Graph, plan *Plan) error {
	planned := make(map[string]int)
	if plan != nil {
		for i, s := range plan.Steps {
			planned[StepID(s.Name())] = i + 1
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph pipeline {")
	fmt.Fprintln(bw, "  rankdir=LR;")
	fmt.Fprintln(bw, `  node [fontname="Helvetica", fontsize=11];`)

	fmt.Fprintln(bw, "  subgraph cluster_legend {")
	fmt.Fprintln(bw, `    label="legend";`)
	for _, kind := range []NodeKind{ConfigNode, OutputNode, StepNode} {
		fmt.Fprintf(bw, "    %q [label=%q, %s];\n", "legend."+kind.String(), kind.String(), dotNodeStyle[kind])
	}
	fmt.Fprintln(bw, "  }")

	ids := g.NodeIDs()
	for _, id := range ids {
		name, kind, _ := g.Node(id)
		attrs := dotNodeStyle[kind]
		label := name
		if order, ok := planned[id]; ok {
			label = fmt.Sprintf("%d. %s", order, name)
			attrs += `, color="#2e7d32", penwidth=2`
		}
		fmt.Fprintf(bw, "  %q [label=%q, %s];\n", id, label, attrs)
	}

	for _, id := range ids {
		dependents, err := g.Dependents(id)
		if err != nil {
			return err
		}
		for _, dep := range dependents {
			fmt.Fprintf(bw, "  %q -> %q;\n", id, dep)
		}
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
