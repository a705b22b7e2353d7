package tokendi

import (
	"go.uber.org/zap"
)

// DefaultMaxDepth is the default limit on nested resolutions, see
// [WithMaxDepth].
const DefaultMaxDepth = 1000

// Option configures a [Container] created with [New].
type Option interface {
	applyOption(*options)
}

// options holds container configuration.
type options struct {
	id         string
	logger     *zap.Logger
	properties *PropertyRegistry
	maxDepth   int
}

// optionFunc adapts a function to Option.
type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// WithLogger sets the logger used for registration, resolution and
// disposal events. Events are logged at debug level, disposal failures at
// warn level. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *options) {
		opts.logger = logger
	})
}

// WithPropertyRegistry sets the registry consulted for property injection.
// The default is [DefaultPropertyRegistry] at the time [New] is called.
// Children created with [Container.CreateChild] share their parent's
// registry.
func WithPropertyRegistry(registry *PropertyRegistry) Option {
	return optionFunc(func(opts *options) {
		opts.properties = registry
	})
}

// WithID sets the container ID. The default is a random UUID.
func WithID(id string) Option {
	return optionFunc(func(opts *options) {
		opts.id = id
	})
}

// WithMaxDepth limits how many resolutions may be nested inside one call to
// [Container.Resolve], counting property injections. Constructor cycles are
// reported as [CircularDependencyError] long before the limit; the limit
// stops cycles that pass through property injection, which the resolution
// stack does not see. Exceeding it fails with [ErrMaxDepthExceeded].
func WithMaxDepth(depth int) Option {
	return optionFunc(func(opts *options) {
		opts.maxDepth = depth
	})
}
