// Command reshuffle finds a shortest sequence of moves turning one set of
// stacks into another, one top item at a time.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-ricrob/reshuffle/internal/config"
	"github.com/go-ricrob/reshuffle/internal/puzzle"
	"github.com/go-ricrob/reshuffle/internal/solver"
	"github.com/spf13/cobra"
)

type flags struct {
	stacks  []string
	goals   []string
	file    string
	timeout time.Duration
	verbose bool
	quiet   bool
}

func (f *flags) puzzle() (*puzzle.Puzzle, error) {
	if f.file != "" {
		if len(f.stacks) != 0 || len(f.goals) != 0 {
			return nil, errors.New("--file cannot be combined with --stack or --goal")
		}
		fh, err := os.Open(f.file)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		return puzzle.Load(fh)
	}

	if len(f.stacks) == 0 {
		return nil, errors.New("no stacks given")
	}
	start, err := puzzle.ParseStacks(f.stacks)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	goal, err := puzzle.ParseStacks(f.goals)
	if err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	p := &puzzle.Puzzle{Start: start, Goal: goal}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *flags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func render(w io.Writer, names []string, c *config.Configuration[string]) {
	fmt.Fprintln(w, strings.Join(names, "\t")+"\t")
	fmt.Fprint(w, c.String())
}

func solve(ctx context.Context, w io.Writer, f *flags, p *puzzle.Puzzle, logger *slog.Logger) error {
	names := p.Names()
	start, goal := p.Stacks()

	s, err := solver.New(start, goal, solver.WithLogger(logger))
	if err != nil {
		return err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	began := time.Now()
	result, err := s.Run(ctx)
	elapsed := time.Since(began)

	fmt.Fprintf(w, "Elapsed: %s\n", elapsed)
	fmt.Fprintf(w, "Considered: %d\n", result.Visited)
	if err != nil {
		return err
	}

	moves, err := result.Moves()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Moves: %d\n", len(moves))
	for i, move := range moves {
		fmt.Fprintf(w, "\n%d: %s from %s to %s\n", i+1, move.Item, names[move.From], names[move.To])
		if !f.quiet {
			render(w, names, result.Path[i+1])
		}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	f := new(flags)

	root := &cobra.Command{
		Use:   "reshuffle",
		Short: "Find the shortest reshuffling of stacks",
		Long: `Find a shortest sequence of moves turning the start stacks into the goal
stacks. A move takes the top item of one stack and puts it on another.

Stacks are given as name:bottom,...,top, an empty stack as name:.
Goal stacks are matched to start stacks by name.`,
		Example: `  reshuffle -s a:1,2,3 -s b:4,5,6 -s c: -s d: -g a:6,5,4,3,2,1 -g b: -g c: -g d:
  reshuffle -f puzzle.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := f.puzzle()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !f.quiet {
				start, goal := p.Stacks()
				sp := config.NewSpace[string]()
				fmt.Fprintln(w, "Start:")
				render(w, p.Names(), sp.FromSlices(start))
				fmt.Fprintln(w, "Goal:")
				render(w, p.Names(), sp.FromSlices(goal))
			}
			return solve(cmd.Context(), w, f, p, f.logger(cmd.ErrOrStderr()))
		},
	}
	root.PersistentFlags().StringArrayVarP(&f.stacks, "stack", "s", nil, "start stack name:bottom,...,top (repeatable)")
	root.PersistentFlags().StringArrayVarP(&f.goals, "goal", "g", nil, "goal stack name:bottom,...,top (repeatable)")
	root.Flags().StringVarP(&f.file, "file", "f", "", "read start and goal from a YAML puzzle file")
	root.Flags().DurationVar(&f.timeout, "timeout", 0, "abort the search after this duration (0: no limit)")
	root.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log every search level")
	root.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "print moves only, no stack diagrams")

	root.AddCommand(&cobra.Command{
		Use:   "puzzle",
		Short: "Print the puzzle given by --stack and --goal as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := f.puzzle()
			if err != nil {
				return err
			}
			return p.Write(cmd.OutOrStdout())
		},
	})
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
