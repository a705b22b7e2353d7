package tokendi_test

import (
	"testing"

	"github.com/junioryono/tokendi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPropertyRegistry(t *testing.T) {
	// Save original default to restore after tests
	originalDefault := tokendi.DefaultPropertyRegistry()
	t.Cleanup(func() {
		tokendi.SetDefaultPropertyRegistry(originalDefault)
	})

	t.Run("initially set", func(t *testing.T) {
		assert.NotNil(t, originalDefault)
	})

	t.Run("set and get", func(t *testing.T) {
		registry := tokendi.NewPropertyRegistry()
		tokendi.SetDefaultPropertyRegistry(registry)

		assert.Same(t, registry, tokendi.DefaultPropertyRegistry())
	})

	t.Run("nil installs an empty registry", func(t *testing.T) {
		tokendi.SetDefaultPropertyRegistry(nil)

		registry := tokendi.DefaultPropertyRegistry()
		require.NotNil(t, registry)
		assert.Empty(t, registry.Properties((*TGreeter)(nil)))
	})

	t.Run("containers capture the default at creation", func(t *testing.T) {
		first := tokendi.NewPropertyRegistry()
		require.NoError(t, first.Register((*TClock)(nil), "Logger", LoggerToken))
		tokendi.SetDefaultPropertyRegistry(first)

		c := tokendi.New()
		t.Cleanup(func() { _ = c.Close() })

		tokendi.SetDefaultPropertyRegistry(tokendi.NewPropertyRegistry())

		c.MustRegister(
			tokendi.UseValue(LoggerToken, &TLogger{Prefix: "captured"}),
			tokendi.UseFactory(ClockToken, func(...any) (any, error) { return &TClock{}, nil }, nil),
		)

		clock := mustResolve[*TClock](t, c, ClockToken)
		require.NotNil(t, clock.Logger)
		assert.Equal(t, "captured", clock.Logger.Prefix)
	})

	t.Run("explicit registry takes precedence", func(t *testing.T) {
		def := tokendi.NewPropertyRegistry()
		require.NoError(t, def.Register((*TClock)(nil), "Logger", LoggerToken))
		tokendi.SetDefaultPropertyRegistry(def)

		c := newTestContainer(t)
		c.MustRegister(
			tokendi.UseValue(LoggerToken, &TLogger{}),
			tokendi.UseFactory(ClockToken, func(...any) (any, error) { return &TClock{}, nil }, nil),
		)

		assert.Nil(t, mustResolve[*TClock](t, c, ClockToken).Logger)
	})
}
