package graph

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer provides methods to visualize the dependency graph
type Visualizer struct {
	graph *DependencyGraph
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer(graph *DependencyGraph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format. Nodes at the same
// dependency depth share a rank; a cyclic graph is written unranked.
func (v *Visualizer) WriteDOT(w io.Writer) error {
	v.graph.CalculateDepths()

	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	nodeIDs := make(map[any]string, len(v.graph.order))
	for i, key := range v.graph.order {
		node := v.graph.nodes[key]
		nodeID := fmt.Sprintf("n%d", i)
		nodeIDs[key] = nodeID

		fmt.Fprintf(&b, "  %s [label=%q, fillcolor=%q, style=filled];\n",
			nodeID, v.formatNodeLabel(node), v.getNodeColor(node))
	}

	for _, key := range v.graph.order {
		for _, dep := range v.graph.nodes[key].Dependencies {
			fmt.Fprintf(&b, "  %s -> %s;\n", nodeIDs[key], nodeIDs[dep])
		}
	}

	for _, rank := range v.ranks() {
		if len(rank) < 2 {
			continue
		}
		ids := make([]string, len(rank))
		for i, key := range rank {
			ids[i] = nodeIDs[key]
		}
		fmt.Fprintf(&b, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ranks groups node keys by depth, shallowest first. Callers hold the read
// lock.
func (v *Visualizer) ranks() [][]any {
	var ranks [][]any
	for _, key := range v.graph.order {
		depth := v.graph.nodes[key].Depth
		if depth < 0 {
			return nil
		}
		for len(ranks) <= depth {
			ranks = append(ranks, nil)
		}
		ranks[depth] = append(ranks[depth], key)
	}
	return ranks
}

// formatNodeLabel creates a label for a node
func (v *Visualizer) formatNodeLabel(node *Node) string {
	if !node.Registered() {
		return v.graph.label(node.Key) + "\nmissing"
	}
	return v.graph.label(node.Key) + "\n" + node.Scope
}

// getNodeColor determines the color for a node based on its scope
func (v *Visualizer) getNodeColor(node *Node) string {
	switch node.Scope {
	case "":
		return "lightgray" // Missing provider
	case "Singleton":
		return "lightblue"
	case "Transient":
		return "lightyellow"
	default:
		return "white"
	}
}
