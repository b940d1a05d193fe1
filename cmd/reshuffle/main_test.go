package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-ricrob/reshuffle/internal/puzzle"
	"github.com/go-ricrob/reshuffle/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestSolve(t *testing.T) {
	out, err := run("-s", "a:", "-s", "b:", "-s", "c:A,B", "-g", "a:B", "-g", "b:", "-g", "c:A")
	require.NoError(t, err)

	assert.Contains(t, out, "Start:\na\tb\tc\t\n\t\tB\t\n\t\tA\t\n")
	assert.Contains(t, out, "Goal:\na\tb\tc\t\n")
	assert.Contains(t, out, "Moves: 1\n")
	assert.Contains(t, out, "1: B from c to a\n")
	assert.Contains(t, out, "Considered: ")
}

func TestSolveQuiet(t *testing.T) {
	out, err := run("-q", "-s", "a:x,y", "-s", "b:", "-s", "c:", "-g", "c:", "-g", "b:", "-g", "a:y,x")
	require.NoError(t, err)

	assert.NotContains(t, out, "Start:")
	assert.Contains(t, out, "Moves: 4\n")
}

func TestSolveFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long running solves")
	}

	file := filepath.Join(t.TempDir(), "puzzle.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
start:
  - {name: a, items: [1, 2, 3]}
  - {name: b, items: [4, 5, 6]}
  - {name: c}
  - {name: d}
goal:
  - {name: a, items: [6, 5, 4, 3, 2, 1]}
  - {name: b}
  - {name: c}
  - {name: d}
`), 0o644))

	out, err := run("-q", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Moves: ")
}

func TestSolveErrors(t *testing.T) {
	_, err := run()
	assert.EqualError(t, err, "no stacks given")

	_, err = run("-s", "a:1", "-s", "b:", "-g", "a:", "-g", "b:2")
	var itemErr *solver.ItemMultisetMismatchError[string]
	assert.ErrorAs(t, err, &itemErr)

	_, err = run("-s", "a:1", "-s", "b:", "-g", "a:1")
	assert.ErrorIs(t, err, puzzle.ErrMissingStack)

	_, err = run("-s", "a1")
	assert.ErrorIs(t, err, puzzle.ErrMalformedStack)

	_, err = run("-s", "a:1,1", "-g", "a:1,1")
	var dupErr *solver.DuplicateItemError[string]
	assert.ErrorAs(t, err, &dupErr)

	_, err = run("-f", "puzzle.yaml", "-s", "a:")
	assert.Error(t, err)

	out, err := run("-q", "-s", "a:1,2", "-s", "b:", "-g", "a:2,1", "-g", "b:")
	assert.ErrorIs(t, err, solver.ErrUnreachable)
	assert.Contains(t, out, "Considered: 6\n")
}

func TestPuzzleCommand(t *testing.T) {
	out, err := run("puzzle", "-s", "a:1,2", "-s", "b:", "-g", "b:2,1", "-g", "a:")
	require.NoError(t, err)

	p, err := puzzle.Load(bytes.NewBufferString(out))
	require.NoError(t, err)
	start, goal := p.Stacks()
	assert.Equal(t, [][]string{{"1", "2"}, {}}, start)
	assert.Equal(t, [][]string{{}, {"2", "1"}}, goal)
}
