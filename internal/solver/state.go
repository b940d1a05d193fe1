package solver

import (
	"errors"

	"github.com/go-ricrob/reshuffle/internal/config"
	"golang.org/x/exp/slices"
)

var errInconsistentState = errors.New("inconsistent state")

type direction int

const (
	forward direction = iota // from start
	backward                 // from goal
)

var directions = [...]direction{forward, backward}

func (d direction) String() string {
	if d == forward {
		return "forward"
	}
	return "backward"
}

// frontier is one layer of a search direction. list keeps discovery order
// so expansion is reproducible.
type frontier[T comparable] struct {
	list []*config.Configuration[T]
	set  map[*config.Configuration[T]]struct{}
}

func newFrontier[T comparable](cs ...*config.Configuration[T]) *frontier[T] {
	f := &frontier[T]{set: make(map[*config.Configuration[T]]struct{}, len(cs))}
	for _, c := range cs {
		f.add(c)
	}
	return f
}

func (f *frontier[T]) add(c *config.Configuration[T]) {
	f.list = append(f.list, c)
	f.set[c] = struct{}{}
}

func (f *frontier[T]) contains(c *config.Configuration[T]) bool {
	_, ok := f.set[c]
	return ok
}

func (f *frontier[T]) len() int { return len(f.list) }

type states[T comparable] struct {
	visited   map[*config.Configuration[T]]struct{}
	frontiers [2]*frontier[T]
	levels    [2]int
}

func newStates[T comparable](start, goal *config.Configuration[T]) *states[T] {
	return &states[T]{
		visited: map[*config.Configuration[T]]struct{}{start: {}, goal: {}},
		frontiers: [2]*frontier[T]{
			forward:  newFrontier(start),
			backward: newFrontier(goal),
		},
	}
}

// expand replaces the frontier of direction d by its next layer. If a
// successor lies in the opposite frontier, expansion stops and the meeting
// pair is returned: f reached from the start, b reached from the goal.
func (m *states[T]) expand(d direction) (f, b *config.Configuration[T], found bool) {
	opposite := m.frontiers[1-d]
	target := newFrontier[T]()

	for _, c := range m.frontiers[d].list {
		for next := range c.NextMoves() {
			if opposite.contains(next) {
				if d == forward {
					return c, next, true
				}
				return next, c, true
			}
			if _, ok := m.visited[next]; ok {
				continue
			}
			m.visited[next] = struct{}{}
			target.add(next)
		}
	}

	m.frontiers[d] = target
	m.levels[d]++
	return nil, nil, false
}

func (m *states[T]) result(path []*config.Configuration[T]) *Result[T] {
	return &Result[T]{Path: path, Visited: len(m.visited)}
}

// path joins the chain from the start to f with the chain from b to the goal.
func path[T comparable](f, b *config.Configuration[T]) []*config.Configuration[T] {
	var p []*config.Configuration[T]
	for c := f; c != nil; c = c.Previous() {
		p = slices.Insert(p, 0, c)
	}
	for c := b; c != nil; c = c.Previous() {
		p = append(p, c)
	}
	return p
}

// Move is a transfer of the top item of stack From onto stack To.
type Move[T comparable] struct {
	Item     T
	From, To int
}

// Result is the outcome of a search.
type Result[T comparable] struct {
	// Path holds the configurations from start to goal, both included.
	// It is nil if no solution was found.
	Path []*config.Configuration[T]
	// Visited is the number of distinct configurations discovered.
	Visited int
}

// NumMoves returns the number of moves of the solution.
func (r *Result[T]) NumMoves() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Moves returns the moves of the solution.
func (r *Result[T]) Moves() ([]Move[T], error) {
	moves := make([]Move[T], 0, r.NumMoves())
	for i := 1; i < len(r.Path); i++ {
		item, from, to, ok := r.Path[i-1].MoveTo(r.Path[i])
		if !ok {
			return nil, errInconsistentState
		}
		moves = append(moves, Move[T]{Item: item, From: from, To: to})
	}
	return moves, nil
}
