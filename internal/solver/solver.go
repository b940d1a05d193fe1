// Package solver implements a bidirectional breadth-first search for the
// shortest sequence of moves reshuffling one configuration of stacks into
// another.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-ricrob/reshuffle/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slices"
)

var tracer = otel.Tracer("github.com/go-ricrob/reshuffle/internal/solver")

// Runner runs a search.
type Runner[T comparable] interface {
	Run(ctx context.Context) (*Result[T], error)
}

var (
	_ Runner[string] = (*Solver[string])(nil)
	_ Runner[int]    = (*Solver[int])(nil)
)

type options struct {
	logger *slog.Logger
}

// Option configures a Solver.
type Option func(*options)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Solver searches the shortest reshuffling of start into goal.
type Solver[T comparable] struct {
	start, goal [][]T
	numItems    int
	logger      *slog.Logger
}

// New returns a solver for start and goal, each given as stacks listed
// bottom first. It fails with a *ShapeMismatchError, *DuplicateItemError[T]
// or *ItemMultisetMismatchError[T] if no search can connect them.
func New[T comparable](start, goal [][]T, opts ...Option) (*Solver[T], error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	space := config.NewSpace[T]()
	s, g := space.FromSlices(start), space.FromSlices(goal)
	if err := validate(s, g); err != nil {
		return nil, err
	}

	return &Solver[T]{
		start:    cloneStacks(start),
		goal:     cloneStacks(goal),
		numItems: s.NumItems(),
		logger:   o.logger,
	}, nil
}

func cloneStacks[T comparable](stacks [][]T) [][]T {
	c := make([][]T, len(stacks))
	for i, items := range stacks {
		c[i] = slices.Clone(items)
	}
	return c
}

func validate[T comparable](start, goal *config.Configuration[T]) error {
	if start.StackCount() != goal.StackCount() {
		return &ShapeMismatchError{Start: start.StackCount(), Goal: goal.StackCount()}
	}
	for _, c := range []*config.Configuration[T]{start, goal} {
		if err := checkDuplicates(c); err != nil {
			return err
		}
	}

	counts := map[T]int{}
	for item := range start.StackedItems() {
		counts[item]++
	}
	var missing, extra []T
	for item := range goal.StackedItems() {
		if counts[item] == 0 {
			extra = append(extra, item)
			continue
		}
		counts[item]--
	}
	for item := range start.StackedItems() {
		if counts[item] > 0 {
			missing = append(missing, item)
			counts[item]--
		}
	}
	if len(missing) != 0 || len(extra) != 0 {
		return &ItemMultisetMismatchError[T]{Missing: missing, Extra: extra}
	}
	return nil
}

func checkDuplicates[T comparable](c *config.Configuration[T]) error {
	seen := map[T]bool{}
	for i := 0; i < c.StackCount(); i++ {
		for _, item := range c.Stack(i).Slice() {
			if seen[item] {
				return &DuplicateItemError[T]{Item: item, Stack: i}
			}
			seen[item] = true
		}
	}
	return nil
}

// Run searches a shortest solution. Every call runs a fresh search.
//
// If the goal cannot be reached Run returns ErrUnreachable. If ctx is done
// between two levels the search stops with the context error. In both cases
// the returned result has no path but still reports the visited count.
func (s *Solver[T]) Run(ctx context.Context) (*Result[T], error) {
	ctx, span := tracer.Start(ctx, "solver.Run", trace.WithAttributes(
		attribute.Int("reshuffle.stacks", len(s.start)),
		attribute.Int("reshuffle.items", s.numItems),
	))
	defer span.End()

	began := time.Now()
	result, err := s.run(ctx, span)
	searchDuration.Observe(time.Since(began).Seconds())
	searchVisited.Observe(float64(result.Visited))
	span.SetAttributes(attribute.Int("reshuffle.visited", result.Visited))

	switch {
	case err == nil:
		searchTotal.WithLabelValues(resultSolved).Inc()
		solutionMoves.Observe(float64(result.NumMoves()))
		span.SetAttributes(attribute.Int("reshuffle.moves", result.NumMoves()))
		s.logger.Info("solution found", "moves", result.NumMoves(), "visited", result.Visited)
	case errors.Is(err, ErrUnreachable):
		searchTotal.WithLabelValues(resultUnreachable).Inc()
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("no solution", "visited", result.Visited)
	default:
		searchTotal.WithLabelValues(resultAborted).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("search aborted", "error", err, "visited", result.Visited)
	}
	return result, err
}

func (s *Solver[T]) run(ctx context.Context, span trace.Span) (*Result[T], error) {
	space := config.NewSpace[T]()
	start, goal := space.FromSlices(s.start), space.FromSlices(s.goal)
	if start == goal {
		return &Result[T]{Path: []*config.Configuration[T]{start}, Visited: 1}, nil
	}

	states := newStates(start, goal)
	for {
		for _, d := range directions {
			if err := ctx.Err(); err != nil {
				return states.result(nil), fmt.Errorf("search aborted at %s level %d: %w", d, states.levels[d], err)
			}

			if f, b, ok := states.expand(d); ok {
				return states.result(path(f, b)), nil
			}

			frontier := states.frontiers[d].len()
			s.logger.Debug("level expanded", "direction", d, "level", states.levels[d], "frontier", frontier, "visited", len(states.visited))
			span.AddEvent("level", trace.WithAttributes(
				attribute.String("direction", d.String()),
				attribute.Int("level", states.levels[d]),
				attribute.Int("frontier", frontier),
			))

			// an exhausted direction has seen every configuration it can reach
			if frontier == 0 {
				return states.result(nil), ErrUnreachable
			}
		}
	}
}
