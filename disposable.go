package tokendi

// Disposable is implemented by singletons that hold resources. When a
// [Container] is closed, every singleton it cached that implements
// Disposable is closed, most recently created first.
//
// Example:
//
//	type DatabaseConnection struct {
//	    conn *sql.DB
//	}
//
//	func (dc *DatabaseConnection) Close() error {
//	    return dc.conn.Close()
//	}
type Disposable interface {
	Close() error
}

// Initializer is implemented by values that need a setup step after
// construction and property injection. Init runs once per constructed
// instance; a singleton returned from the cache is not initialized again.
// An error from Init fails the resolution and nothing is cached.
type Initializer interface {
	Init() error
}
