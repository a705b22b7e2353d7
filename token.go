package tokendi

import (
	"fmt"
	"reflect"
)

// Token identifies a dependency inside a [Container].
//
// Any comparable value can be used as a token. Three forms are expected in
// practice:
//   - a *[Symbol] created with [NewSymbol], unique for the life of the process
//   - a plain string name
//   - a *[Class], which doubles as its own construction recipe
//
// Tokens are compared with ==, so two symbols with the same description are
// still distinct tokens while two equal strings are the same token.
type Token = any

// Symbol is a process-wide unique token. Its description is only used in
// diagnostics.
//
// Example:
//
//	var LoggerToken = tokendi.NewSymbol("Logger")
type Symbol struct {
	description string
}

// NewSymbol creates a new unique symbol with an optional description.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

// Description returns the label the symbol was created with.
func (s *Symbol) Description() string {
	return s.description
}

// String returns "Symbol(description)".
func (s *Symbol) String() string {
	return "Symbol(" + s.description + ")"
}

// ConstructorFunc builds an instance from positionally resolved dependencies.
// args has exactly one entry per declared dependency token, in order.
type ConstructorFunc func(args ...any) (any, error)

// Class is a construction recipe that is also usable as a token. It declares
// the ordered list of tokens its constructor needs.
//
// Example:
//
//	var Greeter = tokendi.NewClass("Greeter", func(args ...any) (any, error) {
//	    return &greeter{logger: args[0].(Logger)}, nil
//	}, LoggerToken)
type Class struct {
	name      string
	construct ConstructorFunc
	deps      []Token
}

// NewClass declares a class named name built by construct from deps.
// An empty name renders as [AnonymousClass] in error messages.
func NewClass(name string, construct ConstructorFunc, deps ...Token) *Class {
	return &Class{
		name:      name,
		construct: construct,
		deps:      deps,
	}
}

// Name returns the class name, which may be empty.
func (c *Class) Name() string {
	return c.name
}

// Deps returns a copy of the declared constructor dependencies.
func (c *Class) Deps() []Token {
	deps := make([]Token, len(c.deps))
	copy(deps, c.deps)
	return deps
}

// String returns the class name or [AnonymousClass].
func (c *Class) String() string {
	if c.name == "" {
		return anonymousClass
	}
	return c.name
}

const anonymousClass = "[AnonymousClass]"

// FormatToken renders a token for error messages. It never participates in
// lookup.
func FormatToken(token Token) string {
	switch t := token.(type) {
	case nil:
		return "<nil>"
	case string:
		return t
	case *Symbol:
		if t == nil {
			return "<nil>"
		}
		if t.description == "" {
			return "Symbol()"
		}
		return t.description
	case *Class:
		if t == nil {
			return "<nil>"
		}
		return t.String()
	case fmt.Stringer:
		if v := reflect.ValueOf(t); v.Kind() == reflect.Pointer && v.IsNil() {
			return fmt.Sprintf("<nil> (%s)", formatType(v.Type()))
		}
		return t.String()
	default:
		return fmt.Sprintf("%v (%s)", t, formatType(reflect.TypeOf(t)))
	}
}

// formatChain joins a resolution stack with " -> ".
func formatChain(chain []Token) string {
	var b []byte
	for i, token := range chain {
		if i > 0 {
			b = append(b, " -> "...)
		}
		b = append(b, FormatToken(token)...)
	}
	return string(b)
}

// validToken reports why token cannot key a provider table, if it can't.
func validToken(token Token) error {
	switch t := token.(type) {
	case nil:
		return ErrMissingToken
	case string:
		if t == "" {
			return ErrMissingToken
		}
		return nil
	case *Symbol:
		if t == nil {
			return ErrMissingToken
		}
		return nil
	case *Class:
		if t == nil {
			return ErrMissingToken
		}
		return nil
	}

	// A comparable type can still hold an unhashable value, such as an
	// interface field carrying a slice.
	if !reflect.ValueOf(token).Comparable() {
		return ErrTokenNotComparable
	}
	return nil
}
