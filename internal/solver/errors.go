package solver

import (
	"errors"
	"fmt"
)

// ErrUnreachable is returned by Run when the goal cannot be reached from the start.
var ErrUnreachable = errors.New("goal is not reachable from start")

// A ShapeMismatchError is returned when start and goal differ in their
// number of stack slots.
type ShapeMismatchError struct {
	Start, Goal int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("stack count mismatch: start has %d stacks, goal has %d", e.Start, e.Goal)
}

// An ItemMultisetMismatchError is returned when start and goal do not hold
// the same items.
type ItemMultisetMismatchError[T comparable] struct {
	Missing []T // in start, not in goal
	Extra   []T // in goal, not in start
}

func (e *ItemMultisetMismatchError[T]) Error() string {
	return fmt.Sprintf("stack item mismatch: missing in goal %v, extra in goal %v", e.Missing, e.Extra)
}

// A DuplicateItemError is returned when an item appears more than once in
// one configuration. Stack is the slot holding the second occurrence.
type DuplicateItemError[T comparable] struct {
	Item  T
	Stack int
}

func (e *DuplicateItemError[T]) Error() string {
	return fmt.Sprintf("duplicate item %v in stack %d", e.Item, e.Stack)
}
