package graph

import (
	"strings"
)

// CycleError reports a dependency cycle. Path starts and ends with the same
// key.
type CycleError struct {
	Path  []any
	label func(any) string
}

func (e *CycleError) Error() string {
	var b strings.Builder
	b.WriteString("dependency cycle: ")
	for i, key := range e.Path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(e.label(key))
	}
	return b.String()
}
