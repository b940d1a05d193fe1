// Package intern provides a partitioned table mapping values to their canonical instance.
package intern

import (
	"hash/maphash"

	"github.com/go-ricrob/reshuffle/internal/spinlock"
)

// DefaultNumPart is the number of partitions used by tables of the stack and
// configuration stores.
const DefaultNumPart = 64

type part[K comparable, V any] struct {
	mu spinlock.Mutex
	m  map[K]V // key to canonical value
}

// Table maps structural keys to canonical values. Entries are never removed.
//
// A Table is safe for concurrent use.
type Table[K comparable, V any] struct {
	numPart uint64
	seed    maphash.Seed
	parts   []*part[K, V]
}

// New returns an empty table split into numPart partitions.
func New[K comparable, V any](numPart uint64) *Table[K, V] {
	if numPart == 0 {
		numPart = 1
	}
	t := &Table[K, V]{
		numPart: numPart,
		seed:    maphash.MakeSeed(),
		parts:   make([]*part[K, V], numPart),
	}
	for i := range t.parts {
		t.parts[i] = &part[K, V]{m: make(map[K]V)}
	}
	return t
}

func (t *Table[K, V]) part(k K) *part[K, V] {
	return t.parts[maphash.Comparable(t.seed, k)%t.numPart]
}

// Intern returns the canonical value stored for k. If k is unknown, mk is
// called once with the partition locked and its result is stored as the
// canonical value; stored reports whether that happened.
//
// The first caller to intern k wins: later callers get the value built by
// the first one and their mk is not called. mk must not call back into t.
func (t *Table[K, V]) Intern(k K, mk func() V) (v V, stored bool) {
	part := t.part(k)
	part.mu.Lock()
	if v, ok := part.m[k]; ok {
		part.mu.Unlock()
		return v, false
	}
	v = mk()
	part.m[k] = v
	part.mu.Unlock()
	return v, true
}

// Load returns the canonical value stored for k.
func (t *Table[K, V]) Load(k K) (V, bool) {
	part := t.part(k)
	part.mu.Lock()
	v, ok := part.m[k]
	part.mu.Unlock()
	return v, ok
}

// Len returns the number of canonical values.
func (t *Table[K, V]) Len() int {
	size := 0
	for _, part := range t.parts {
		part.mu.Lock()
		size += len(part.m)
		part.mu.Unlock()
	}
	return size
}

// NumPart returns the number of partitions.
func (t *Table[K, V]) NumPart() int { return int(t.numPart) }
