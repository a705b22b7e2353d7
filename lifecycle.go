package tokendi

import (
	"fmt"
	"sync"
)

// lifecycleManager manages the lifecycle of disposable instances
type lifecycleManager struct {
	disposables []trackedDisposable
	mu          sync.Mutex
}

type trackedDisposable struct {
	token      Token
	disposable Disposable
}

// newLifecycleManager creates a new lifecycle manager
func newLifecycleManager() *lifecycleManager {
	return &lifecycleManager{
		disposables: make([]trackedDisposable, 0),
	}
}

// track adds a disposable instance to be managed
func (m *lifecycleManager) track(token Token, instance any) {
	if d, ok := instance.(Disposable); ok {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.disposables = append(m.disposables, trackedDisposable{token: token, disposable: d})
	}
}

// dispose disposes all tracked instances in reverse order
func (m *lifecycleManager) dispose() []error {
	m.mu.Lock()
	disposables := m.disposables
	m.disposables = nil
	m.mu.Unlock()

	var errs []error

	// Dispose in reverse order (LIFO)
	for i := len(disposables) - 1; i >= 0; i-- {
		if err := disposables[i].disposable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", FormatToken(disposables[i].token), err))
		}
	}

	return errs
}

// count returns the number of tracked instances
func (m *lifecycleManager) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.disposables)
}
