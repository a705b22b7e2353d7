// Package tokendi provides a token-keyed dependency injection container for Go
// applications.
//
// # Overview
//
// A [Container] maps tokens to providers and builds object graphs on demand:
//   - Tokens are strings, unique [Symbol] values, or [Class] recipes
//   - Providers build a class, return a fixed value, or call a factory
//   - Two scopes: Singleton (cached per container) and Transient
//   - Cycles in constructor dependencies are reported with the full chain
//   - Properties can be injected after construction
//   - Values implementing [Initializer] are initialized after injection
//   - Child containers inherit providers but keep their own singletons
//   - Modules group registrations
//
// # Basic Usage
//
// Declare tokens, register providers, resolve:
//
//	var LoggerToken = tokendi.NewSymbol("Logger")
//
//	var Greeter = tokendi.NewClass("Greeter", func(args ...any) (any, error) {
//	    return &greeter{logger: args[0].(Logger)}, nil
//	}, LoggerToken)
//
//	c := tokendi.New()
//	defer c.Close()
//
//	err := c.Register(
//	    tokendi.UseValue(LoggerToken, NewConsoleLogger()),
//	    tokendi.UseClass(Greeter),
//	)
//
//	g, err := tokendi.Resolve[*greeter](c, Greeter)
//
// # Providers
//
// [UseClass] builds values from a [Class], which is also the token;
// [BindClass] registers a class under another token. [UseValue] returns a
// value as is. [UseFactory] calls a function with
// its resolved dependencies:
//
//	tokendi.UseFactory("clock", func(args ...any) (any, error) {
//	    return NewClock(args[0].(Logger)), nil
//	}, []tokendi.Token{LoggerToken})
//
// Dependencies are passed positionally, in the order they are declared.
//
// # Scopes
//
// [Singleton] is the default. The first resolution builds the value and
// caches it in the container that resolved it; later resolutions return the
// cached value without resolving its dependencies again. [Transient]
// values are rebuilt on every resolution:
//
//	tokendi.UseClass(Request, tokendi.AsTransient())
//
// # Child Containers
//
// [Container.CreateChild] returns a container that falls back to its parent
// for providers it does not have itself. Singletons are never shared along
// the chain: a child resolving a singleton declared in its parent builds and
// caches its own instance.
//
//	child, err := c.CreateChild()
//	child.Register(tokendi.UseValue("user", currentUser))
//
// Lookups never go downward; a token registered only on the child is not
// visible from the parent.
//
// # Property Injection
//
// Property declarations live in a [PropertyRegistry], keyed by the dynamic
// type of the built value and independent of any container:
//
//	func init() {
//	    tokendi.InjectProperty[greeter]("Clock", ClockToken)
//	}
//
// After a value is built, each declared field is set to the value resolved
// for its token. Properties are resolved with a fresh resolution chain, so
// a cycle through a property is not reported as a circular dependency; the
// depth limit set by [WithMaxDepth] stops it instead.
//
// # Modules
//
// Organize registrations into reusable modules:
//
//	var DataModule = tokendi.NewModule("data",
//	    tokendi.Provide(tokendi.UseClass(Database)),
//	    tokendi.Provide(tokendi.UseClass(UserRepository)),
//	)
//
//	err := c.Load(DataModule)
//
// # Validation
//
// Resolution is lazy, so a missing provider or a cycle surfaces only when
// the affected token is resolved. [Container.Validate] checks the declared
// dependencies of every visible provider up front:
//
//	if err := c.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// [Container.Build] validates and then constructs every singleton,
// dependencies first, so constructor failures surface at startup.
// [Container.WriteDOT] renders the same graph for Graphviz.
//
// # Error Handling
//
// Resolution fails with one of three error kinds:
//   - ProviderNotFoundError: no provider for the token in the container chain
//   - CircularDependencyError: a token was requested while being resolved
//   - ResolutionError: the provider itself is malformed
//
// Constructor failures are wrapped in ConstructorError or
// ConstructorPanicError, and Init failures in InitializationError.
// Failures propagate unchanged through nested resolutions; nothing is
// cached for a resolution that failed.
//
// # Disposal
//
// [Container.Close] closes the cached singletons that implement
// [Disposable], newest first, and releases the cache.
package tokendi
