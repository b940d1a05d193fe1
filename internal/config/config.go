// Package config implements configurations: ordered collections of stacks
// describing one state of a reshuffling search.
package config

import (
	"fmt"
	"iter"
	"strings"

	"github.com/go-ricrob/reshuffle/internal/intern"
	"github.com/go-ricrob/reshuffle/internal/packed"
	"github.com/go-ricrob/reshuffle/internal/stack"
	"golang.org/x/exp/slices"
)

// Space interns the configurations of one search. Configurations created in
// the same space with equal stacks are the same *Configuration.
//
// The back-pointer of a configuration is fixed by whoever creates it first, so
// a space should not outlive the search owning its back-pointers.
type Space[T comparable] struct {
	table *intern.Table[packed.Key, *Configuration[T]]
}

// NewSpace returns an empty space.
func NewSpace[T comparable]() *Space[T] {
	return &Space[T]{table: intern.New[packed.Key, *Configuration[T]](intern.DefaultNumPart)}
}

// Create returns the canonical configuration holding stacks. previous is
// recorded only if the configuration is new to the space.
func (sp *Space[T]) Create(stacks []*stack.Stack[T], previous *Configuration[T]) *Configuration[T] {
	return sp.intern(stacks, previous)
}

// FromSlices returns the configuration with one stack per element of stacks,
// each listed bottom first.
func (sp *Space[T]) FromSlices(stacks [][]T) *Configuration[T] {
	s := make([]*stack.Stack[T], len(stacks))
	for i, items := range stacks {
		s[i] = stack.FromSlice(items)
	}
	return sp.intern(s, nil)
}

// Len returns the number of configurations created in the space.
func (sp *Space[T]) Len() int { return sp.table.Len() }

// intern does not retain stacks: callers may reuse the slice.
func (sp *Space[T]) intern(stacks []*stack.Stack[T], previous *Configuration[T]) *Configuration[T] {
	k := packed.Pack(stacks)
	c, _ := sp.table.Intern(k, func() *Configuration[T] {
		return &Configuration[T]{stacks: slices.Clone(stacks), key: k, previous: previous, space: sp}
	})
	return c
}

// Configuration is a canonical, immutable assignment of items to stack slots.
type Configuration[T comparable] struct {
	stacks   []*stack.Stack[T]
	key      packed.Key
	previous *Configuration[T]
	space    *Space[T]
}

// StackCount returns the number of stack slots.
func (c *Configuration[T]) StackCount() int { return len(c.stacks) }

// Stack returns the stack in slot i.
func (c *Configuration[T]) Stack(i int) *stack.Stack[T] { return c.stacks[i] }

// Stacks returns a copy of the stacks, slot order.
func (c *Configuration[T]) Stacks() []*stack.Stack[T] { return slices.Clone(c.stacks) }

// Previous returns the configuration c was first derived from, nil for roots.
func (c *Configuration[T]) Previous() *Configuration[T] { return c.previous }

// Equal reports whether c and o hold the same stacks. Back-pointers are ignored.
func (c *Configuration[T]) Equal(o *Configuration[T]) bool { return c.key == o.key }

// NumItems returns the number of items over all stacks.
func (c *Configuration[T]) NumItems() int {
	n := 0
	for _, s := range c.stacks {
		n += s.Count()
	}
	return n
}

// NextMoves yields every configuration reachable by moving the top item of
// one stack onto another, source slot major, target slot minor. Successors new
// to the space get c as their previous configuration.
func (c *Configuration[T]) NextMoves() iter.Seq[*Configuration[T]] {
	return func(yield func(*Configuration[T]) bool) {
		next := make([]*stack.Stack[T], len(c.stacks))
		for src, from := range c.stacks {
			if from.IsEmpty() {
				continue
			}
			item, rest, err := from.Pop()
			if err != nil {
				panic(fmt.Sprintf("slot %d: %v", src, err)) // should never happen
			}
			for dst, to := range c.stacks {
				if dst == src {
					continue
				}
				copy(next, c.stacks)
				next[src] = rest
				next[dst] = to.Push(item)
				if !yield(c.space.intern(next, c)) {
					return
				}
			}
		}
	}
}

// StackedItems yields the items of all stacks, slot order, each stack top to bottom.
func (c *Configuration[T]) StackedItems() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, s := range c.stacks {
			for item := range s.Items() {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// MoveTo returns the move turning c into next: item was popped from slot
// from and pushed onto slot to. ok is false if next is not exactly one move
// away from c.
func (c *Configuration[T]) MoveTo(next *Configuration[T]) (item T, from, to int, ok bool) {
	if len(c.stacks) != len(next.stacks) {
		return item, 0, 0, false
	}
	from, to = -1, -1
	for i := range c.stacks {
		if c.stacks[i] == next.stacks[i] {
			continue
		}
		switch {
		case next.stacks[i].Count() == c.stacks[i].Count()-1 && from == -1:
			from = i
		case next.stacks[i].Count() == c.stacks[i].Count()+1 && to == -1:
			to = i
		default:
			return item, 0, 0, false
		}
	}
	if from == -1 || to == -1 {
		return item, 0, 0, false
	}
	item, rest, err := c.stacks[from].Pop()
	if err != nil || rest != next.stacks[from] || c.stacks[to].Push(item) != next.stacks[to] {
		var zero T
		return zero, 0, 0, false
	}
	return item, from, to, true
}

// String renders the stacks as tab separated columns, tops first and bottoms
// aligned on the last row.
func (c *Configuration[T]) String() string {
	if len(c.stacks) == 0 {
		return "<empty>"
	}
	height := 0
	for _, s := range c.stacks {
		height = max(height, s.Count())
	}
	columns := make([][]string, len(c.stacks))
	for i, s := range c.stacks {
		col := make([]string, height-s.Count(), height)
		for item := range s.Items() {
			col = append(col, fmt.Sprint(item))
		}
		columns[i] = col
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		for _, col := range columns {
			b.WriteString(col[row])
			b.WriteByte('\t')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
