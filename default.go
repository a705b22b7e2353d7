package tokendi

import "sync/atomic"

// defaultProperties holds the process-wide PropertyRegistry.
var defaultProperties atomic.Pointer[PropertyRegistry]

func init() {
	defaultProperties.Store(NewPropertyRegistry())
}

// SetDefaultPropertyRegistry replaces the registry used by [InjectProperty]
// and by containers created without [WithPropertyRegistry]. This is similar
// to slog.SetDefault. Passing nil installs a fresh empty registry.
//
// Containers capture the default when they are created; replacing it later
// does not affect existing containers.
func SetDefaultPropertyRegistry(registry *PropertyRegistry) {
	if registry == nil {
		registry = NewPropertyRegistry()
	}
	defaultProperties.Store(registry)
}

// DefaultPropertyRegistry returns the process-wide PropertyRegistry.
func DefaultPropertyRegistry() *PropertyRegistry {
	return defaultProperties.Load()
}
