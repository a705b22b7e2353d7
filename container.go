package tokendi

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Container maps tokens to providers and resolves object graphs from them.
//
// A container owns its provider table and its singleton cache. A child
// created with [Container.CreateChild] looks up providers in its own table
// first and then in its ancestors, but always caches singletons in itself:
// a child never shares singleton instances with its parent.
//
// Container is safe for concurrent use, but resolution is not coordinated
// across goroutines. Two overlapping resolutions of the same uncached
// singleton may both construct it; the last one to finish is cached.
type Container struct {
	id         string
	parent     *Container
	baseLogger *zap.Logger
	logger     *zap.Logger
	properties *PropertyRegistry
	maxDepth   int

	mu        sync.RWMutex
	providers map[Token]Provider

	singletons *instanceCache
	lifecycle  *lifecycleManager

	disposed atomic.Bool
}

// New creates an empty root container.
//
// Example:
//
//	c := tokendi.New(tokendi.WithLogger(logger))
//	defer c.Close()
func New(opts ...Option) *Container {
	o := &options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyOption(o)
	}

	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.properties == nil {
		o.properties = DefaultPropertyRegistry()
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}

	return newContainer(o.id, nil, o.logger, o.properties, o.maxDepth)
}

func newContainer(id string, parent *Container, logger *zap.Logger, properties *PropertyRegistry, maxDepth int) *Container {
	fields := []zap.Field{zap.String("container", id)}
	if parent != nil {
		fields = append(fields, zap.String("parent", parent.id))
	}

	return &Container{
		id:         id,
		parent:     parent,
		baseLogger: logger,
		logger:     logger.With(fields...),
		properties: properties,
		maxDepth:   maxDepth,
		providers:  make(map[Token]Provider),
		singletons: newInstanceCache(),
		lifecycle:  newLifecycleManager(),
	}
}

// ID returns the unique identifier of the container.
func (c *Container) ID() string {
	return c.id
}

// Parent returns the parent container, or nil for a root container.
func (c *Container) Parent() *Container {
	return c.parent
}

// IsDisposed reports whether [Container.Close] has been called.
func (c *Container) IsDisposed() bool {
	return c.disposed.Load()
}

// Register validates each provider and stores it under its token, replacing
// any provider previously registered for that token in this container.
// Providers in ancestors are not consulted; shadowing them is allowed.
//
// Providers are processed in order. If one is invalid, Register returns a
// [ResolutionError] and the providers before it stay registered.
func (c *Container) Register(providers ...Provider) error {
	if c.disposed.Load() {
		return ErrContainerDisposed
	}

	for _, p := range providers {
		if err := validateProvider(p); err != nil {
			return err
		}

		token := p.ProviderToken()

		c.mu.Lock()
		_, replaced := c.providers[token]
		c.providers[token] = p
		c.mu.Unlock()

		c.logger.Debug("provider registered",
			zap.String("token", FormatToken(token)),
			zap.Stringer("scope", p.ProviderScope()),
			zap.Bool("replaced", replaced),
		)
	}

	return nil
}

// MustRegister is like [Container.Register] but panics on error. It returns
// the container so registrations can be chained:
//
//	c := tokendi.New().
//	    MustRegister(tokendi.UseValue("name", "world")).
//	    MustRegister(tokendi.UseClass(Greeter))
func (c *Container) MustRegister(providers ...Provider) *Container {
	if err := c.Register(providers...); err != nil {
		panic(err)
	}
	return c
}

// CreateChild returns a new container whose parent is c. The child starts
// with an empty provider table and an empty singleton cache, and shares c's
// logger, property registry and depth limit.
func (c *Container) CreateChild() (*Container, error) {
	if c.disposed.Load() {
		return nil, ErrContainerDisposed
	}

	child := newContainer(uuid.NewString(), c, c.baseLogger, c.properties, c.maxDepth)
	c.logger.Debug("child container created", zap.String("child", child.id))
	return child, nil
}

// Lookup returns the provider for token from this container or, failing
// that, from the nearest ancestor that has one.
func (c *Container) Lookup(token Token) (Provider, bool) {
	if validToken(token) == ErrTokenNotComparable {
		return nil, false
	}

	for current := c; current != nil; current = current.parent {
		if p, ok := current.localProvider(token); ok {
			return p, true
		}
	}

	return nil, false
}

// Has reports whether token can be looked up from this container.
func (c *Container) Has(token Token) bool {
	_, ok := c.Lookup(token)
	return ok
}

// HasLocal reports whether token is registered in this container itself.
func (c *Container) HasLocal(token Token) bool {
	if validToken(token) == ErrTokenNotComparable {
		return false
	}
	_, ok := c.localProvider(token)
	return ok
}

func (c *Container) localProvider(token Token) (Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.providers[token]
	return p, ok
}

// Tokens returns the tokens registered in this container itself, sorted by
// their formatted form.
func (c *Container) Tokens() []Token {
	c.mu.RLock()
	tokens := make([]Token, 0, len(c.providers))
	for token := range c.providers {
		tokens = append(tokens, token)
	}
	c.mu.RUnlock()

	sort.SliceStable(tokens, func(i, j int) bool {
		return FormatToken(tokens[i]) < FormatToken(tokens[j])
	})
	return tokens
}

// Load applies modules to the container in order. See [ContainerModule.Load].
func (c *Container) Load(modules ...*ContainerModule) error {
	for _, m := range modules {
		if m == nil {
			continue
		}
		if err := m.Load(c); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the singleton cache and closes every cached singleton
// that implements [Disposable], most recently created first. Values
// supplied with [UseValue] are owned by the caller and are not closed.
//
// Close does not touch the parent or any child. It is idempotent: calls
// after the first return nil. After Close, Register, Resolve and
// CreateChild return [ErrContainerDisposed].
func (c *Container) Close() error {
	if !c.disposed.CompareAndSwap(false, true) {
		return nil
	}

	tracked := c.lifecycle.count()
	errs := c.lifecycle.dispose()
	cached := c.singletons.len()
	c.singletons.clear()

	for _, err := range errs {
		c.logger.Warn("disposal failed", zap.Error(err))
	}
	c.logger.Debug("container closed",
		zap.Int("singletons", cached),
		zap.Int("disposed", tracked),
	)

	if len(errs) > 0 {
		return &DisposalError{Context: "container", Errors: errs}
	}

	return nil
}
