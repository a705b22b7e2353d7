package tokendi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors that are wrapped in typed errors when returned.
// Match them with errors.Is.

var (
	// Resolution errors.
	ErrProviderNotFound    = errors.New("provider not found")
	ErrCircularDependency  = errors.New("circular dependency detected")
	ErrUnknownProviderType = errors.New("unknown provider type")
	ErrMaxDepthExceeded    = errors.New("maximum resolution depth exceeded")

	// Registration errors.
	ErrMissingToken       = errors.New("missing token")
	ErrTokenNotComparable = errors.New("token is not comparable")
	ErrNilProvider        = errors.New("provider cannot be nil")
	ErrNilClass           = errors.New("class provider has no class")
	ErrNilConstructor     = errors.New("class has no constructor")
	ErrNilValue           = errors.New("value provider has no value")
	ErrNilFactory         = errors.New("factory provider has no factory")
	ErrInvalidScope       = errors.New("invalid scope")

	// Property injection errors.
	ErrFieldNotFound      = errors.New("field not found")
	ErrFieldNotSettable   = errors.New("field is not settable")
	ErrFieldTypeMismatch  = errors.New("value is not assignable to field")
	ErrInvalidInjectField = errors.New("property target must be a pointer to a struct")

	// Lifecycle errors.
	ErrContainerDisposed = errors.New("container has been disposed")
	ErrContainerNil      = errors.New("container cannot be nil")
)

var (
	_ error = ScopeError{}
	_ error = ProviderNotFoundError{}
	_ error = CircularDependencyError{}
	_ error = ResolutionError{}
	_ error = ConstructorError{}
	_ error = ConstructorPanicError{}
	_ error = InitializationError{}
	_ error = TypeMismatchError{}
	_ error = ModuleError{}
	_ error = DisposalError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// ScopeError indicates an invalid scope value.
type ScopeError struct {
	Value any
}

func (e ScopeError) Error() string {
	return fmt.Sprintf("invalid scope: %v", e.Value)
}

func (e ScopeError) Unwrap() error {
	return ErrInvalidScope
}

// ProviderNotFoundError indicates that no provider is registered for a token
// anywhere in the container chain.
type ProviderNotFoundError struct {
	Token Token
}

func (e ProviderNotFoundError) Error() string {
	return fmt.Sprintf("no provider found for %s", FormatToken(e.Token))
}

func (e ProviderNotFoundError) Unwrap() error {
	return ErrProviderNotFound
}

// CircularDependencyError indicates a token was requested again while it
// was still being resolved. Chain lists the tokens in visit order and ends
// with the repeated token.
type CircularDependencyError struct {
	Chain []Token
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected: ")
	b.WriteString(formatChain(e.Chain))

	b.WriteString("\n\nTo resolve this:\n")
	b.WriteString("  • Use a factory provider to resolve one side lazily\n")
	b.WriteString("  • Move one dependency to property injection\n")
	b.WriteString("  • Restructure to remove the circular relationship")

	return b.String()
}

func (e CircularDependencyError) Unwrap() error {
	return ErrCircularDependency
}

// ResolutionError indicates a structural problem with a provider: a missing
// token at registration time, or a provider shape the container does not
// know how to instantiate.
type ResolutionError struct {
	Token Token
	Cause error
}

func (e ResolutionError) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("resolution error: %v", e.Cause)
	}
	return fmt.Sprintf("resolution error for %s: %v", FormatToken(e.Token), e.Cause)
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// ConstructorError wraps an error returned by a class constructor or a
// factory function.
type ConstructorError struct {
	Token Token
	Cause error
}

func (e ConstructorError) Error() string {
	return fmt.Sprintf("failed to construct %s: %v", FormatToken(e.Token), e.Cause)
}

func (e ConstructorError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError indicates a constructor or factory panicked.
// It captures the panic value and stack trace for debugging.
type ConstructorPanicError struct {
	Token Token
	Panic any
	Stack []byte
}

func (e ConstructorPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("constructor for %s panicked: %v\n", FormatToken(e.Token), e.Panic))

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Check the number and order of declared dependencies\n")
	b.WriteString("  • Check type assertions on constructor arguments\n")

	if len(e.Stack) > 0 {
		b.WriteString("\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// InitializationError wraps an error returned by [Initializer.Init].
type InitializationError struct {
	Token Token
	Cause error
}

func (e InitializationError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", FormatToken(e.Token), e.Cause)
}

func (e InitializationError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a type assertion on a resolved value failed.
type TypeMismatchError struct {
	Token    Token
	Expected reflect.Type
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type assertion for %s: expected %s, got %s",
		FormatToken(e.Token), formatType(e.Expected), formatType(e.Actual))
}

// ModuleError wraps errors from module loading.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// DisposalError aggregates disposal errors.
type DisposalError struct {
	Context string
	Errors  []error
}

func (e DisposalError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s disposal failed: %v", e.Context, e.Errors[0])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s disposal failed with %d errors:", e.Context, len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
	}
	return sb.String()
}

func (e DisposalError) Unwrap() []error {
	return e.Errors
}

// IsNotFound reports whether err is, or wraps, a missing-provider error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProviderNotFound)
}

// IsCircularDependency reports whether err is, or wraps, a cycle error.
func IsCircularDependency(err error) bool {
	return errors.Is(err, ErrCircularDependency)
}

// IsResolutionError reports whether err is, or wraps, a [ResolutionError].
func IsResolutionError(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
