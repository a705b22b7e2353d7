package tokendi

import (
	"fmt"
	"reflect"
	"sync"
)

// PropertyInjection declares that Field of an instance is filled with the
// value resolved for Token after the instance is constructed.
type PropertyInjection struct {
	Field string
	Token Token
}

// PropertyRegistry associates instance types with the properties injected
// into them. It is populated independently of any container, usually from
// package init or main, and read by every container that uses it.
//
// Declarations are keyed by the dynamic type of the resolved instance, so a
// registration for *Greeter applies whether the *Greeter came from a class,
// a factory or a value provider.
type PropertyRegistry struct {
	mu    sync.RWMutex
	props map[reflect.Type][]PropertyInjection
}

// NewPropertyRegistry creates an empty registry.
func NewPropertyRegistry() *PropertyRegistry {
	return &PropertyRegistry{
		props: make(map[reflect.Type][]PropertyInjection),
	}
}

// Register declares that field of values with the dynamic type of target
// receives the value resolved for token. target must be a pointer to a
// struct with an exported field named field; a nil pointer of the right type
// is enough:
//
//	registry.Register((*Greeter)(nil), "Clock", ClockToken)
//
// Registering the same field twice replaces the earlier token.
func (r *PropertyRegistry) Register(target any, field string, token Token) error {
	return r.register(reflect.TypeOf(target), field, token)
}

func (r *PropertyRegistry) register(t reflect.Type, field string, token Token) error {
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return &ResolutionError{Token: token, Cause: fmt.Errorf("%w: got %s", ErrInvalidInjectField, formatType(t))}
	}

	if err := validToken(token); err != nil {
		return &ResolutionError{Token: token, Cause: err}
	}

	sf, ok := t.Elem().FieldByName(field)
	if !ok {
		return &ResolutionError{Token: token, Cause: fmt.Errorf("%w: %s.%s", ErrFieldNotFound, formatType(t), field)}
	}
	if !sf.IsExported() {
		return &ResolutionError{Token: token, Cause: fmt.Errorf("%w: %s.%s is unexported", ErrFieldNotSettable, formatType(t), field)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.props[t]
	for i := range list {
		if list[i].Field == field {
			list[i].Token = token
			return nil
		}
	}
	r.props[t] = append(list, PropertyInjection{Field: field, Token: token})
	return nil
}

// Properties returns the declarations for the dynamic type of target, in
// registration order.
func (r *PropertyRegistry) Properties(target any) []PropertyInjection {
	return r.lookup(reflect.TypeOf(target))
}

func (r *PropertyRegistry) lookup(t reflect.Type) []PropertyInjection {
	if t == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.props[t]
	if len(list) == 0 {
		return nil
	}

	out := make([]PropertyInjection, len(list))
	copy(out, list)
	return out
}

// Reset removes every declaration.
func (r *PropertyRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props = make(map[reflect.Type][]PropertyInjection)
}

// InjectProperty declares a property injection for *T on the default
// registry. It panics on an invalid declaration, which makes it suitable for
// package-level var blocks and init functions.
//
//	func init() {
//	    tokendi.InjectProperty[Greeter]("Clock", ClockToken)
//	}
func InjectProperty[T any](field string, token Token) {
	t := reflect.TypeOf((*T)(nil))
	if err := DefaultPropertyRegistry().register(t, field, token); err != nil {
		panic(err)
	}
}

// assignProperty sets field on instance to value.
func assignProperty(instance any, field string, value any) error {
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %s", ErrInvalidInjectField, formatType(v.Type()))
	}

	f := v.Elem().FieldByName(field)
	if !f.IsValid() {
		return fmt.Errorf("%w: %s.%s", ErrFieldNotFound, formatType(v.Type()), field)
	}
	if !f.CanSet() {
		return fmt.Errorf("%w: %s.%s", ErrFieldNotSettable, formatType(v.Type()), field)
	}

	if value == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}

	val := reflect.ValueOf(value)
	if !val.Type().AssignableTo(f.Type()) {
		return fmt.Errorf("%w: %s is not assignable to %s.%s (%s)",
			ErrFieldTypeMismatch, formatType(val.Type()), formatType(v.Type()), field, formatType(f.Type()))
	}

	f.Set(val)
	return nil
}
