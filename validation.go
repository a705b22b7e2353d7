package tokendi

import (
	"io"

	"github.com/junioryono/tokendi/internal/graph"
	"go.uber.org/zap"
)

// Validate checks the providers visible from c without constructing
// anything. A declared dependency that is not a usable token is reported
// first. After that comes the first constructor cycle, as a
// [CircularDependencyError], and then the first declared dependency with no
// provider, as a [ResolutionError] wrapping a [ProviderNotFoundError].
//
// Validation sees only declared constructor and factory dependencies.
// Property injections are resolved lazily and are not checked. A container
// that fails validation can still resolve every token whose graph is
// complete.
func (c *Container) Validate() error {
	if c.disposed.Load() {
		return ErrContainerDisposed
	}

	g, err := c.dependencyGraph()
	if err != nil {
		return err
	}
	if err := checkGraph(g); err != nil {
		return err
	}

	c.logger.Debug("container validated", zap.Int("tokens", g.Size()))
	return nil
}

// Build validates c and then constructs every singleton visible from it,
// dependencies first, caching each in c. Construction failures surface here
// instead of on first use. Transient providers are not constructed.
//
// Because dependencies are built first, [Container.Close] disposes
// dependents before the instances they depend on.
func (c *Container) Build() error {
	if c.disposed.Load() {
		return ErrContainerDisposed
	}

	g, err := c.dependencyGraph()
	if err != nil {
		return err
	}
	if err := checkGraph(g); err != nil {
		return err
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		return err
	}

	built := 0
	for _, node := range sorted {
		if node.Scope != Singleton.String() {
			continue
		}
		if _, err := c.resolve(node.Key, nil, 0); err != nil {
			return err
		}
		built++
	}

	c.logger.Debug("container built", zap.Int("singletons", built))
	return nil
}

// checkGraph reports the first cycle in g, then the first dependency without
// a provider.
func checkGraph(g *graph.DependencyGraph) error {
	if err := g.DetectCycles(); err != nil {
		if cycle, ok := err.(*graph.CycleError); ok {
			return &CircularDependencyError{Chain: cycle.Path}
		}
		return err
	}

	if missing := g.Missing(); len(missing) > 0 {
		edge := missing[0]
		return &ResolutionError{Token: edge.From, Cause: &ProviderNotFoundError{Token: edge.To}}
	}

	return nil
}

// WriteDOT writes the providers visible from c, and the dependencies they
// declare, in Graphviz DOT format. Tokens without a provider are drawn in
// gray.
func (c *Container) WriteDOT(w io.Writer) error {
	g, err := c.dependencyGraph()
	if err != nil {
		return err
	}
	return graph.NewVisualizer(g).WriteDOT(w)
}

// dependencyGraph builds the static dependency graph of every token that
// can be looked up from c. Ancestors are visited root first so that nearer
// containers shadow them. A declared dependency that cannot key a map is
// reported as a [ResolutionError] against its dependent.
func (c *Container) dependencyGraph() (*graph.DependencyGraph, error) {
	var chain []*Container
	for current := c; current != nil; current = current.parent {
		chain = append(chain, current)
	}

	g := graph.New(FormatToken)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, token := range chain[i].Tokens() {
			p, ok := chain[i].localProvider(token)
			if !ok {
				continue
			}
			deps := declaredDeps(p)
			for _, dep := range deps {
				if validToken(dep) == ErrTokenNotComparable {
					return nil, &ResolutionError{Token: token, Cause: ErrTokenNotComparable}
				}
			}
			g.Add(token, p.ProviderScope().String(), deps)
		}
	}

	return g, nil
}

// declaredDeps returns the dependency tokens of p.
func declaredDeps(p Provider) []Token {
	switch p := p.(type) {
	case *ClassProvider:
		return p.Class.deps
	case *FactoryProvider:
		return p.Deps
	default:
		return nil
	}
}
