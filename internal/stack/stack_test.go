package stack

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	e := Empty[string]()
	assert.Same(t, e, Empty[string]())
	assert.Equal(t, 0, e.Count())
	assert.True(t, e.IsEmpty())
	assert.Zero(t, e.ID())

	_, ok := e.Top()
	assert.False(t, ok)

	_, below, err := e.Pop()
	assert.ErrorIs(t, err, ErrEmptyStack)
	assert.Same(t, e, below)
}

func TestEmptyPerItemType(t *testing.T) {
	type label string

	s := Empty[string]().Push("A")
	l := Empty[label]().Push("A")
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 1, l.Count())
	assert.Equal(t, "[A]", s.String())
	assert.Equal(t, "[A]", l.String())
}

func TestPushPop(t *testing.T) {
	stacks := []*Stack[string]{
		Empty[string](),
		FromSlice([]string{"A"}),
		FromSlice([]string{"A", "B", "C"}),
		FromSlice([]string{"C", "B", "A", "D"}),
	}

	for _, s := range stacks {
		for _, x := range []string{"A", "X"} {
			pushed := s.Push(x)
			assert.Equal(t, s.Count()+1, pushed.Count())

			item, below, err := pushed.Pop()
			require.NoError(t, err)
			assert.Equal(t, x, item)
			assert.Same(t, s, below, "pop of %v.Push(%s)", s, x)
		}
	}
}

func TestCanonical(t *testing.T) {
	a := Empty[string]().Push("A").Push("B").Push("C")
	b := FromSlice([]string{"A", "B", "C"})
	assert.Same(t, a, b)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.ID(), b.ID())

	// reached by popping a longer stack
	_, c, err := FromSlice([]string{"A", "B", "C", "D"}).Pop()
	require.NoError(t, err)
	assert.Same(t, a, c)

	d := FromSlice([]string{"B", "A", "C"})
	assert.False(t, a.Equal(d))
	assert.NotEqual(t, a.ID(), d.ID())
}

func TestSharing(t *testing.T) {
	base := FromSlice([]string{"A", "B"})
	left := base.Push("L")
	right := base.Push("R")

	_, lb, _ := left.Pop()
	_, rb, _ := right.Pop()
	assert.Same(t, lb, rb)
	assert.Equal(t, []string{"A", "B"}, base.Slice(), "push leaves original untouched")
}

func TestItems(t *testing.T) {
	s := FromSlice([]string{"A", "B", "C"})

	assert.Equal(t, []string{"C", "B", "A"}, slices.Collect(s.Items()))
	assert.Equal(t, []string{"C", "B", "A"}, slices.Collect(s.Items()), "restartable")
	assert.Empty(t, slices.Collect(Empty[string]().Items()))

	var first []string
	for item := range s.Items() {
		first = append(first, item)
		break
	}
	assert.Equal(t, []string{"C"}, first)

	assert.Equal(t, []string{"A", "B", "C"}, s.Slice())
	assert.Equal(t, "[A B C]", s.String())
}

func TestLen(t *testing.T) {
	type token int

	FromSlice([]token{1, 2, 3})
	FromSlice([]token{1, 2, 3})
	FromSlice([]token{1, 2})
	assert.Equal(t, 3, Len[token]())
}
