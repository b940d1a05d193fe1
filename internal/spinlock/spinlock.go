// Package spinlock provides a spinlock mutex.
package spinlock

import (
	"runtime"
	"sync"
	"sync/atomic"
)

var _ sync.Locker = (*Mutex)(nil)

// Mutex represents a spinlock. The zero value is an unlocked mutex.
//
// Critical sections guarded by a Mutex are expected to be a handful of map
// operations; anything that blocks belongs behind a sync.Mutex.
type Mutex struct {
	state atomic.Int32
}

// Lock locks the mutex busy waiting (spinlock).
func (m *Mutex) Lock() {
	for !m.TryLock() {
		runtime.Gosched()
	}
}

// TryLock tries to lock the mutex and reports whether it succeeded.
func (m *Mutex) TryLock() bool { return m.state.CompareAndSwap(0, 1) }

// Unlock unlocks the mutex.
func (m *Mutex) Unlock() { m.state.Store(0) }
