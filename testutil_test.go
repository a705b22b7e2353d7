package tokendi_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/junioryono/tokendi"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// TLogger is a dependency-free service.
type TLogger struct {
	Prefix string
}

// TClock depends on TLogger.
type TClock struct {
	Logger *TLogger
}

// TGreeter depends on TLogger through its constructor and may receive a
// TClock through property injection.
type TGreeter struct {
	Logger *TLogger
	Clock  *TClock

	// ClockAtConstruction records Clock as seen inside the constructor.
	ClockAtConstruction *TClock
}

// TInitializable counts Init calls.
type TInitializable struct {
	inits   atomic.Int32
	initErr error
}

func (s *TInitializable) Init() error {
	s.inits.Add(1)
	return s.initErr
}

func (s *TInitializable) Inits() int {
	return int(s.inits.Load())
}

// TDisposable implements tokendi.Disposable.
type TDisposable struct {
	Name     string
	closed   atomic.Bool
	closeErr error
	order    *closeOrder
}

func (d *TDisposable) Close() error {
	if d.closed.Swap(true) {
		return errors.New("already closed")
	}
	if d.order != nil {
		d.order.add(d.Name)
	}
	return d.closeErr
}

func (d *TDisposable) IsClosed() bool {
	return d.closed.Load()
}

// closeOrder records the order in which disposables are closed.
type closeOrder struct {
	mu    sync.Mutex
	names []string
}

func (o *closeOrder) add(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.names = append(o.names, name)
}

func (o *closeOrder) get() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.names...)
}

// counter counts constructor invocations.
type counter struct {
	n atomic.Int32
}

func (c *counter) inc() int {
	return int(c.n.Add(1))
}

func (c *counter) get() int {
	return int(c.n.Load())
}

// ============================================================================
// Tokens and classes
// ============================================================================

var (
	LoggerToken = tokendi.NewSymbol("Logger")
	ClockToken  = tokendi.NewSymbol("Clock")
)

func newLoggerFactory(calls *counter) tokendi.ConstructorFunc {
	return func(args ...any) (any, error) {
		if calls != nil {
			calls.inc()
		}
		return &TLogger{Prefix: "test"}, nil
	}
}

func newClockFactory(args ...any) (any, error) {
	return &TClock{Logger: args[0].(*TLogger)}, nil
}

// newGreeterClass declares a Greeter class that depends on LoggerToken.
func newGreeterClass(calls *counter) *tokendi.Class {
	return tokendi.NewClass("Greeter", func(args ...any) (any, error) {
		if calls != nil {
			calls.inc()
		}
		g := &TGreeter{Logger: args[0].(*TLogger)}
		g.ClockAtConstruction = g.Clock
		return g, nil
	}, LoggerToken)
}

// ============================================================================
// Helpers
// ============================================================================

// newTestContainer creates a container with a test logger and its own
// property registry, so parallel tests do not share declarations.
func newTestContainer(t *testing.T, opts ...tokendi.Option) *tokendi.Container {
	t.Helper()

	base := []tokendi.Option{
		tokendi.WithLogger(zaptest.NewLogger(t)),
		tokendi.WithPropertyRegistry(tokendi.NewPropertyRegistry()),
	}

	c := tokendi.New(append(base, opts...)...)
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

// newChild creates a child of c and fails the test on error.
func newChild(t *testing.T, c *tokendi.Container) *tokendi.Container {
	t.Helper()

	child, err := c.CreateChild()
	require.NoError(t, err)
	require.NotNil(t, child)
	return child
}

// mustResolve resolves token and fails the test on error.
func mustResolve[T any](t *testing.T, c *tokendi.Container, token tokendi.Token) T {
	t.Helper()

	v, err := tokendi.Resolve[T](c, token)
	require.NoError(t, err, "failed to resolve %s", tokendi.FormatToken(token))
	return v
}
