// Package digbridge connects a tokendi container with a go.uber.org/dig
// container, so an application can move between the two one component at a
// time.
//
// [Provide] makes a value built by dig resolvable from a tokendi container.
// [Export] makes a tokendi token available to dig constructors by type.
package digbridge

import (
	"github.com/junioryono/tokendi"
	"go.uber.org/dig"
)

// Provide registers a factory provider for token on c that extracts a T from
// dc. dig builds the value, and caches it, the first time it is needed.
//
// With the default [tokendi.Singleton] scope the tokendi container also
// caches the extracted value. Opts are applied to the factory provider.
//
//	dc := dig.New()
//	dc.Provide(NewDatabase)
//	digbridge.Provide[*Database](c, DatabaseToken, dc)
func Provide[T any](c *tokendi.Container, token tokendi.Token, dc *dig.Container, opts ...tokendi.ProviderOption) error {
	return c.Register(tokendi.UseFactory(token, Extract[T](dc), nil, opts...))
}

// Extract returns a factory that invokes dc and returns its T.
func Extract[T any](dc *dig.Container) tokendi.ConstructorFunc {
	return func(...any) (any, error) {
		var out T
		if err := dc.Invoke(func(v T) { out = v }); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Export provides T to dc by resolving token from c whenever dig needs it.
// dig calls the constructor at most once per dig container, so Export reads
// the token once regardless of its tokendi scope.
//
//	digbridge.Export[Logger](dc, c, LoggerToken)
//	dc.Invoke(func(l Logger) { ... })
func Export[T any](dc *dig.Container, c *tokendi.Container, token tokendi.Token, opts ...dig.ProvideOption) error {
	return dc.Provide(func() (T, error) {
		return tokendi.Resolve[T](c, token)
	}, opts...)
}
