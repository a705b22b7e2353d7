package tokendi

// Provider describes how a [Container] produces the value for a token.
//
// Provider is a closed sum type with three variants, built with [UseClass],
// [UseValue] and [UseFactory]. The container dispatches on the concrete
// variant; any other implementation is rejected with [ErrUnknownProviderType]
// when it is resolved.
type Provider interface {
	// ProviderToken returns the token the provider is registered under.
	ProviderToken() Token

	// ProviderScope returns the scope of values produced by the provider.
	ProviderScope() Scope

	validate() error
}

var (
	_ Provider = (*ClassProvider)(nil)
	_ Provider = (*ValueProvider)(nil)
	_ Provider = (*FactoryProvider)(nil)
)

// ClassProvider builds values with a [Class]. [UseClass] registers the class
// under itself; [BindClass] registers it under another token.
type ClassProvider struct {
	Token Token
	Class *Class
	Scope Scope
}

// ValueProvider returns a precomputed value verbatim.
type ValueProvider struct {
	Token Token
	Value any
	Scope Scope
}

// FactoryProvider calls Factory with its resolved Deps, in order.
type FactoryProvider struct {
	Token   Token
	Factory ConstructorFunc
	Deps    []Token
	Scope   Scope
}

// ProviderToken returns the provider's token.
func (p *ClassProvider) ProviderToken() Token {
	if p == nil {
		return nil
	}
	return p.Token
}

// ProviderScope returns the provider's scope.
func (p *ClassProvider) ProviderScope() Scope {
	if p == nil {
		return Singleton
	}
	return p.Scope
}

func (p *ClassProvider) validate() error {
	if p.Class == nil {
		return ErrNilClass
	}
	if p.Class.construct == nil {
		return ErrNilConstructor
	}
	return nil
}

// ProviderToken returns the provider's token.
func (p *ValueProvider) ProviderToken() Token {
	if p == nil {
		return nil
	}
	return p.Token
}

// ProviderScope returns the provider's scope.
func (p *ValueProvider) ProviderScope() Scope {
	if p == nil {
		return Singleton
	}
	return p.Scope
}

func (p *ValueProvider) validate() error {
	if p.Value == nil {
		return ErrNilValue
	}
	return nil
}

// ProviderToken returns the provider's token.
func (p *FactoryProvider) ProviderToken() Token {
	if p == nil {
		return nil
	}
	return p.Token
}

// ProviderScope returns the provider's scope.
func (p *FactoryProvider) ProviderScope() Scope {
	if p == nil {
		return Singleton
	}
	return p.Scope
}

func (p *FactoryProvider) validate() error {
	if p.Factory == nil {
		return ErrNilFactory
	}
	return nil
}

// ProviderOption configures a provider built with [UseClass], [UseValue] or
// [UseFactory].
type ProviderOption interface {
	applyProviderOption(*providerOptions)
}

type providerOptions struct {
	scope Scope
}

type providerOptionFunc func(*providerOptions)

func (f providerOptionFunc) applyProviderOption(opts *providerOptions) {
	f(opts)
}

// WithScope sets the [Scope] of the provider. The default is [Singleton].
func WithScope(scope Scope) ProviderOption {
	return providerOptionFunc(func(opts *providerOptions) {
		opts.scope = scope
	})
}

// AsTransient is shorthand for WithScope(Transient).
func AsTransient() ProviderOption {
	return WithScope(Transient)
}

// AsSingleton is shorthand for WithScope(Singleton).
func AsSingleton() ProviderOption {
	return WithScope(Singleton)
}

func buildProviderOptions(opts []ProviderOption) providerOptions {
	var o providerOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyProviderOption(&o)
	}
	return o
}

// UseClass creates a provider that builds values with class.
//
// Example:
//
//	c.Register(tokendi.UseClass(Greeter, tokendi.AsTransient()))
func UseClass(class *Class, opts ...ProviderOption) *ClassProvider {
	o := buildProviderOptions(opts)
	p := &ClassProvider{Class: class, Scope: o.scope}
	if class != nil {
		p.Token = class
	}
	return p
}

// BindClass creates a provider that builds values with class and registers
// them under token instead of the class itself.
//
// Example:
//
//	c.Register(tokendi.BindClass(LoggerToken, ConsoleLogger))
func BindClass(token Token, class *Class, opts ...ProviderOption) *ClassProvider {
	o := buildProviderOptions(opts)
	return &ClassProvider{Token: token, Class: class, Scope: o.scope}
}

// UseValue creates a provider that always returns value.
//
// Example:
//
//	c.Register(tokendi.UseValue("greeting", "hello"))
func UseValue(token Token, value any, opts ...ProviderOption) *ValueProvider {
	o := buildProviderOptions(opts)
	return &ValueProvider{Token: token, Value: value, Scope: o.scope}
}

// UseFactory creates a provider that calls factory with the resolved deps.
//
// Example:
//
//	c.Register(tokendi.UseFactory(ClockToken, func(args ...any) (any, error) {
//	    return NewClock(args[0].(Logger)), nil
//	}, []tokendi.Token{LoggerToken}))
func UseFactory(token Token, factory ConstructorFunc, deps []Token, opts ...ProviderOption) *FactoryProvider {
	o := buildProviderOptions(opts)
	return &FactoryProvider{Token: token, Factory: factory, Deps: deps, Scope: o.scope}
}

// validateProvider checks a provider before it is inserted into a table.
func validateProvider(p Provider) error {
	if p == nil {
		return &ResolutionError{Cause: ErrNilProvider}
	}

	token := p.ProviderToken()
	if err := validToken(token); err != nil {
		if err == ErrMissingToken {
			token = nil
		}
		return &ResolutionError{Token: token, Cause: err}
	}

	if !p.ProviderScope().IsValid() {
		return &ResolutionError{Token: token, Cause: &ScopeError{Value: int(p.ProviderScope())}}
	}

	if err := p.validate(); err != nil {
		return &ResolutionError{Token: token, Cause: err}
	}

	return nil
}
