package tokendi

import (
	"fmt"
	"reflect"
	"runtime/debug"

	"go.uber.org/zap"
)

// Resolve returns the value for token.
//
// The provider is looked up in this container and then its ancestors. For a
// [Singleton] provider the instance is cached in this container, even when
// the provider was registered in an ancestor, and later calls return the
// cached instance without touching its dependencies again. A [Transient]
// provider builds a new instance on every call.
//
// A freshly built instance has its declared properties injected and, if it
// implements [Initializer], is initialized before it is cached and returned.
//
// Errors from nested resolutions are returned unchanged, so the cause of a
// failure deep in the graph can be matched with errors.Is and errors.As.
func (c *Container) Resolve(token Token) (any, error) {
	if c.disposed.Load() {
		return nil, ErrContainerDisposed
	}

	return c.resolve(token, nil, 0)
}

// resolve implements Resolve. stack holds the tokens on the current
// constructor chain and is never mutated; depth counts every nested resolve
// including property injection.
func (c *Container) resolve(token Token, stack []Token, depth int) (any, error) {
	if validToken(token) == ErrTokenNotComparable {
		return nil, &ResolutionError{Token: token, Cause: ErrTokenNotComparable}
	}

	for _, t := range stack {
		if t == token {
			chain := make([]Token, len(stack)+1)
			copy(chain, stack)
			chain[len(stack)] = token
			return nil, &CircularDependencyError{Chain: chain}
		}
	}

	if depth > c.maxDepth {
		return nil, &ResolutionError{Token: token, Cause: fmt.Errorf("%w (%d)", ErrMaxDepthExceeded, c.maxDepth)}
	}

	p, ok := c.Lookup(token)
	if !ok {
		return nil, &ProviderNotFoundError{Token: token}
	}

	scope := p.ProviderScope()
	key := p.ProviderToken()

	if scope == Singleton {
		if instance, ok := c.singletons.get(key); ok {
			if ce := c.logger.Check(zap.DebugLevel, "singleton cache hit"); ce != nil {
				ce.Write(zap.String("token", FormatToken(key)))
			}
			return instance, nil
		}
	}

	next := make([]Token, len(stack)+1)
	copy(next, stack)
	next[len(stack)] = token

	instance, err := c.instantiate(p, next, depth)
	if err != nil {
		return nil, err
	}

	if err := c.injectProperties(key, instance, depth); err != nil {
		return nil, err
	}

	if initializer, ok := instance.(Initializer); ok {
		if err := initializer.Init(); err != nil {
			return nil, &InitializationError{Token: key, Cause: err}
		}
	}

	if scope == Singleton {
		c.singletons.set(key, instance)
		if _, external := p.(*ValueProvider); !external {
			c.lifecycle.track(key, instance)
		}
	}

	c.logger.Debug("instance constructed",
		zap.String("token", FormatToken(key)),
		zap.Stringer("scope", scope),
		zap.Int("depth", depth),
	)

	return instance, nil
}

// instantiate dispatches on the provider variant. stack already ends with
// the token being resolved.
func (c *Container) instantiate(p Provider, stack []Token, depth int) (any, error) {
	switch p := p.(type) {
	case *ClassProvider:
		args, err := c.resolveArgs(p.Class.deps, stack, depth)
		if err != nil {
			return nil, err
		}
		return invoke(p.Token, p.Class.construct, args)

	case *FactoryProvider:
		args, err := c.resolveArgs(p.Deps, stack, depth)
		if err != nil {
			return nil, err
		}
		return invoke(p.Token, p.Factory, args)

	case *ValueProvider:
		return p.Value, nil

	default:
		return nil, &ResolutionError{
			Token: p.ProviderToken(),
			Cause: fmt.Errorf("%w: %T", ErrUnknownProviderType, p),
		}
	}
}

// resolveArgs resolves deps in order. Every dependency starts from the same
// stack, so siblings do not see each other's branches.
func (c *Container) resolveArgs(deps []Token, stack []Token, depth int) ([]any, error) {
	args := make([]any, len(deps))
	for i, dep := range deps {
		arg, err := c.resolve(dep, stack, depth+1)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

// invoke calls fn, converting a returned error or a panic into a typed error.
func invoke(token Token, fn ConstructorFunc, args []any) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = &ConstructorPanicError{Token: token, Panic: r, Stack: debug.Stack()}
		}
	}()

	instance, err = fn(args...)
	if err != nil {
		return nil, &ConstructorError{Token: token, Cause: err}
	}

	return instance, nil
}

// injectProperties assigns every declared property of instance. Each
// property is resolved against c with a fresh stack.
func (c *Container) injectProperties(token Token, instance any, depth int) error {
	if instance == nil || c.properties == nil {
		return nil
	}

	for _, prop := range c.properties.lookup(reflect.TypeOf(instance)) {
		value, err := c.resolve(prop.Token, nil, depth+1)
		if err != nil {
			return err
		}

		if err := assignProperty(instance, prop.Field, value); err != nil {
			return &ResolutionError{Token: token, Cause: err}
		}
	}

	return nil
}

// Resolve resolves token from c and asserts the result to T.
//
// Example:
//
//	greeter, err := tokendi.Resolve[*Greeter](c, GreeterClass)
func Resolve[T any](c *Container, token Token) (T, error) {
	var zero T

	if c == nil {
		return zero, ErrContainerNil
	}

	value, err := c.Resolve(token)
	if err != nil {
		return zero, err
	}

	result, ok := value.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Token:    token,
			Expected: reflect.TypeOf((*T)(nil)).Elem(),
			Actual:   reflect.TypeOf(value),
		}
	}

	return result, nil
}

// MustResolve resolves token from c and asserts the result to T.
// It panics if the value cannot be resolved. This is useful for
// application initialization where missing services are fatal.
func MustResolve[T any](c *Container, token Token) T {
	value, err := Resolve[T](c, token)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", FormatToken(token), err))
	}

	return value
}
