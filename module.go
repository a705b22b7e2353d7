package tokendi

import "go.uber.org/zap"

// Loader registers providers into a container. Loaders are the building
// blocks of a [ContainerModule].
type Loader func(*Container) error

// ContainerModule is a named, ordered batch of loaders. Modules let large
// registration sets be split by feature and applied to any container.
type ContainerModule struct {
	name    string
	loaders []Loader
}

// NewModule creates a new module with the given name and loaders.
//
// Example:
//
//	var LoggingModule = tokendi.NewModule("logging",
//	    tokendi.Provide(tokendi.UseValue(LevelToken, "info")),
//	    tokendi.Provide(tokendi.UseClass(ConsoleLogger)),
//	)
//
//	var AppModule = tokendi.NewModule("app",
//	    LoggingModule.Loader(),
//	    tokendi.Provide(tokendi.UseClass(Greeter, tokendi.AsTransient())),
//	)
//
//	err := AppModule.Load(c)
func NewModule(name string, loaders ...Loader) *ContainerModule {
	return &ContainerModule{
		name:    name,
		loaders: loaders,
	}
}

// Name returns the module name.
func (m *ContainerModule) Name() string {
	return m.name
}

// Load runs every loader against c, in order. Nil loaders are skipped.
//
// Loading is not transactional: if a loader fails, the registrations made
// by the loaders before it stay in c. The failure is returned wrapped in a
// [ModuleError].
func (m *ContainerModule) Load(c *Container) error {
	if c == nil {
		return &ModuleError{Module: m.name, Cause: ErrContainerNil}
	}

	for _, loader := range m.loaders {
		if loader == nil {
			continue
		}

		if err := loader(c); err != nil {
			return &ModuleError{Module: m.name, Cause: err}
		}
	}

	c.logger.Debug("module loaded",
		zap.String("module", m.name),
		zap.Int("loaders", len(m.loaders)),
	)

	return nil
}

// Loader returns the module as a Loader so it can be nested in another
// module.
func (m *ContainerModule) Loader() Loader {
	return m.Load
}

// Provide creates a Loader that registers providers.
func Provide(providers ...Provider) Loader {
	return func(c *Container) error {
		return c.Register(providers...)
	}
}
