// Package graph holds a static view of declared dependencies between tokens.
// It backs eager validation, eager construction and visualization. Lazy
// resolution never consults it.
package graph

import (
	"fmt"
	"sync"
)

// DependencyGraph manages the dependency relationships between tokens.
// It provides cycle detection, topological sorting, and depth ranking.
//
// Keys are compared with ==, so any comparable token works. Iteration follows
// insertion order, which keeps reports deterministic.
type DependencyGraph struct {
	mu    sync.RWMutex
	nodes map[any]*Node
	order []any
	label func(any) string
}

// Node represents a token in the dependency graph
type Node struct {
	Key any

	// Scope is the scope name of the provider behind the node, or empty when
	// the token is only referenced as a dependency.
	Scope string

	// Depth is the length of the longest dependency chain below the node,
	// set by CalculateDepths.
	Depth int

	Dependencies []any // tokens this node depends on
	Dependents   []any // tokens that depend on this node
}

// Registered reports whether a provider was added for the node.
func (n *Node) Registered() bool {
	return n.Scope != ""
}

// New creates an empty graph. label renders keys in errors and output; nil
// uses fmt's %v.
func New(label func(any) string) *DependencyGraph {
	if label == nil {
		label = func(k any) string { return fmt.Sprintf("%v", k) }
	}

	return &DependencyGraph{
		nodes: make(map[any]*Node),
		label: label,
	}
}

// Add records a provider for key with the given scope and dependencies,
// replacing any earlier record for key. Duplicate dependencies collapse into
// one edge.
func (g *DependencyGraph) Add(key any, scope string, deps []any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	node := g.ensure(key)
	node.Scope = scope

	for _, old := range node.Dependencies {
		if dep := g.nodes[old]; dep != nil {
			dep.Dependents = remove(dep.Dependents, key)
		}
	}

	node.Dependencies = node.Dependencies[:0]
	seen := make(map[any]bool, len(deps))
	for _, d := range deps {
		if seen[d] {
			continue
		}
		seen[d] = true

		dep := g.ensure(d)
		dep.Dependents = append(dep.Dependents, key)
		node.Dependencies = append(node.Dependencies, d)
	}
}

func (g *DependencyGraph) ensure(key any) *Node {
	node, ok := g.nodes[key]
	if !ok {
		node = &Node{Key: key}
		g.nodes[key] = node
		g.order = append(g.order, key)
	}
	return node
}

func remove(list []any, key any) []any {
	out := list[:0]
	for _, k := range list {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// TopologicalSort returns nodes in dependency order (dependencies first).
func (g *DependencyGraph) TopologicalSort() ([]*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Kahn's algorithm over remaining dependency counts
	remaining := make(map[any]int, len(g.nodes))
	queue := make([]any, 0)
	for _, key := range g.order {
		n := len(g.nodes[key].Dependencies)
		remaining[key] = n
		if n == 0 {
			queue = append(queue, key)
		}
	}

	result := make([]*Node, 0, len(g.nodes))
	for len(queue) > 0 {
		current := g.nodes[queue[0]]
		queue = queue[1:]
		result = append(result, current)

		for _, dependent := range current.Dependents {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, fmt.Errorf("circular dependency detected: graph contains %d nodes but only %d could be sorted",
			len(g.nodes), len(result))
	}

	return result, nil
}

// DetectCycles returns a *CycleError for the first cycle found, walking
// nodes in insertion order.
func (g *DependencyGraph) DetectCycles() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[any]int, len(g.nodes))
	var path []any

	var visit func(key any) []any
	visit = func(key any) []any {
		state[key] = visiting
		path = append(path, key)

		for _, dep := range g.nodes[key].Dependencies {
			switch state[dep] {
			case visiting:
				// Cut the path at the first occurrence of dep.
				for i, k := range path {
					if k == dep {
						cycle := make([]any, 0, len(path)-i+1)
						cycle = append(cycle, path[i:]...)
						return append(cycle, dep)
					}
				}
			case unvisited:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		state[key] = done
		return nil
	}

	for _, key := range g.order {
		if state[key] != unvisited {
			continue
		}
		if cycle := visit(key); cycle != nil {
			return &CycleError{Path: cycle, label: g.label}
		}
	}

	return nil
}

// Edge is a declared dependency From -> To.
type Edge struct {
	From any
	To   any
}

// Missing returns the edges that point at tokens without a provider, in
// insertion order.
func (g *DependencyGraph) Missing() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for _, key := range g.order {
		node := g.nodes[key]
		for _, dep := range node.Dependencies {
			if !g.nodes[dep].Registered() {
				out = append(out, Edge{From: key, To: dep})
			}
		}
	}
	return out
}

// Size returns the number of nodes in the graph
func (g *DependencyGraph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// CalculateDepths assigns each node the length of its longest dependency
// chain. Leaves have depth 0. If the graph has a cycle every node keeps
// depth -1.
func (g *DependencyGraph) CalculateDepths() {
	sorted, _ := g.TopologicalSort()

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, node := range g.nodes {
		node.Depth = -1
	}

	if sorted == nil {
		return
	}

	for _, node := range sorted {
		depth := 0
		for _, dep := range node.Dependencies {
			if d := g.nodes[dep].Depth + 1; d > depth {
				depth = d
			}
		}
		node.Depth = depth
	}
}
