package tokendi

import (
	"encoding/json"
	"fmt"
)

// Scope specifies how long a resolved value lives inside a [Container].
type Scope int

const (
	// Singleton specifies that at most one instance exists per container and
	// token. The instance is built on first resolution and cached in the
	// resolving container. Singleton is the zero value, so a provider without
	// an explicit scope is a singleton.
	Singleton Scope = iota

	// Transient specifies that a new instance is built on every resolution.
	// Transient instances are never cached.
	Transient
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	switch s {
	case Singleton:
		return "Singleton"
	case Transient:
		return "Transient"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the scope is one of the known values.
func (s Scope) IsValid() bool {
	return s >= Singleton && s <= Transient
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Singleton", "singleton":
		*s = Singleton
	case "Transient", "transient":
		*s = Transient
	default:
		return &ScopeError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(str))
}
