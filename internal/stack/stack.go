// Package stack implements persistent, hash-consed stacks.
//
// Stacks are immutable. Push and Pop share the frames below the top, and
// every stack is interned in a process wide store per item type, so two
// stacks holding the same items in the same order are the same *Stack.
// Canonical stacks may therefore be compared with ==.
package stack

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-ricrob/reshuffle/internal/intern"
)

// ErrEmptyStack is returned by Pop on an empty stack.
var ErrEmptyStack = errors.New("pop of empty stack")

// key identifies a stack structurally: its top item and the canonical stack below.
type key[T comparable] struct {
	item  T
	below *Stack[T]
}

type store[T comparable] struct {
	table  *intern.Table[key[T], *Stack[T]]
	empty  *Stack[T]
	nextID atomic.Uint32
}

var stores sync.Map // reflect.Type -> *store[T]

func storeFor[T comparable]() *store[T] {
	typ := reflect.TypeFor[T]()
	if st, ok := stores.Load(typ); ok {
		return st.(*store[T])
	}
	st := &store[T]{table: intern.New[key[T], *Stack[T]](intern.DefaultNumPart)}
	st.empty = &Stack[T]{store: st}
	actual, _ := stores.LoadOrStore(typ, st)
	return actual.(*store[T])
}

// Stack is a canonical persistent stack. A stack is its top frame: the top
// item, the stack below and the cached item count.
type Stack[T comparable] struct {
	top   T
	below *Stack[T]
	count int
	id    uint32 // 0 is the empty stack
	store *store[T]
}

// Empty returns the empty stack of item type T.
func Empty[T comparable]() *Stack[T] { return storeFor[T]().empty }

// FromSlice returns the stack holding items, items[0] at the bottom.
func FromSlice[T comparable](items []T) *Stack[T] {
	s := Empty[T]()
	for _, item := range items {
		s = s.Push(item)
	}
	return s
}

// Push returns the stack with item on top of s. s is unaffected.
func (s *Stack[T]) Push(item T) *Stack[T] {
	st := s.store
	top, _ := st.table.Intern(key[T]{item: item, below: s}, func() *Stack[T] {
		return &Stack[T]{top: item, below: s, count: s.count + 1, id: st.nextID.Add(1), store: st}
	})
	return top
}

// Pop returns the top item and the stack below it.
func (s *Stack[T]) Pop() (T, *Stack[T], error) {
	if s.count == 0 {
		var zero T
		return zero, s, ErrEmptyStack
	}
	return s.top, s.below, nil
}

// Top returns the top item. ok is false for the empty stack.
func (s *Stack[T]) Top() (item T, ok bool) { return s.top, s.count != 0 }

// Count returns the number of items.
func (s *Stack[T]) Count() int { return s.count }

// IsEmpty reports whether s holds no items.
func (s *Stack[T]) IsEmpty() bool { return s.count == 0 }

// ID returns the process unique ID of s within its item type.
func (s *Stack[T]) ID() uint32 { return s.id }

// Equal reports whether s and o hold the same items in the same order.
func (s *Stack[T]) Equal(o *Stack[T]) bool { return s == o }

// Items yields the items from top to bottom.
func (s *Stack[T]) Items() iter.Seq[T] {
	return func(yield func(T) bool) {
		for f := s; f.count != 0; f = f.below {
			if !yield(f.top) {
				return
			}
		}
	}
}

// Slice returns the items in a new slice, bottom first.
func (s *Stack[T]) Slice() []T {
	items := make([]T, s.count)
	i := s.count
	for item := range s.Items() {
		i--
		items[i] = item
	}
	return items
}

func (s *Stack[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range s.Slice() {
		if i != 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, item)
	}
	b.WriteByte(']')
	return b.String()
}

// Len returns the number of non-empty canonical stacks of item type T
// created so far.
func Len[T comparable]() int { return storeFor[T]().table.Len() }
