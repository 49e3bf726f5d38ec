package remote

import (
	"testing"
)

// NewTestStore creates an in-memory store for testing. The store is
// automatically closed when the test completes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    rs := remote.NewTestStore(t)
//	    rs.Seed(...)
//	    // use rs...
//	}
func NewTestStore(t testing.TB) *Memory {
	t.Helper()

	m := NewMemory()
	t.Cleanup(func() {
		_ = m.Close()
	})

	return m
}
