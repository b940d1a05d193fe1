// Package puzzle reads named stacks from command line arguments and YAML files.
package puzzle

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-ricrob/reshuffle/internal/solver"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedStack is returned for arguments not of the form name:bottom,...,top.
	ErrMalformedStack = errors.New("expected stacks of the form name:bottom,...,top")
	// ErrDuplicateName is returned if two stacks of one side share a name.
	ErrDuplicateName = errors.New("duplicate stack name")
	// ErrUnknownStack is returned if the goal names a stack the start lacks.
	ErrUnknownStack = errors.New("unknown stack")
	// ErrMissingStack is returned if the goal omits a stack of the start.
	ErrMissingStack = errors.New("missing stack")
)

// NamedStack is a stack of item labels, bottom first.
type NamedStack struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items,flow"`
}

func (s NamedStack) String() string { return s.Name + ":" + strings.Join(s.Items, ",") }

// Puzzle is a start and a goal configuration.
type Puzzle struct {
	Start []NamedStack `yaml:"start"`
	Goal  []NamedStack `yaml:"goal"`
}

// ParseStack parses name:bottom,...,top. Items are trimmed and empty items
// dropped, so "name:" is an empty stack.
func ParseStack(arg string) (NamedStack, error) {
	name, items, ok := strings.Cut(arg, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.Contains(items, ":") {
		return NamedStack{}, fmt.Errorf("%q: %w", arg, ErrMalformedStack)
	}
	s := NamedStack{Name: name, Items: []string{}}
	for _, item := range strings.Split(items, ",") {
		if item = strings.TrimSpace(item); item != "" {
			s.Items = append(s.Items, item)
		}
	}
	return s, nil
}

// ParseStacks parses every argument with ParseStack and checks the result
// with CheckStacks.
func ParseStacks(args []string) ([]NamedStack, error) {
	stacks := make([]NamedStack, 0, len(args))
	for _, arg := range args {
		s, err := ParseStack(arg)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, s)
	}
	if err := CheckStacks(stacks); err != nil {
		return nil, err
	}
	return stacks, nil
}

// CheckStacks fails if stack names or item labels repeat. Repeated labels
// are reported as a *solver.DuplicateItemError[string].
func CheckStacks(stacks []NamedStack) error {
	names := map[string]bool{}
	items := map[string]bool{}
	for i, s := range stacks {
		if names[s.Name] {
			return fmt.Errorf("%q: %w", s.Name, ErrDuplicateName)
		}
		names[s.Name] = true
		for _, item := range s.Items {
			if items[item] {
				return fmt.Errorf("stack %q: %w", s.Name, &solver.DuplicateItemError[string]{Item: item, Stack: i})
			}
			items[item] = true
		}
	}
	return nil
}

// Load reads a puzzle in YAML and checks it.
func Load(r io.Reader) (*Puzzle, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	p := new(Puzzle)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	for _, side := range [][]NamedStack{p.Start, p.Goal} {
		for i := range side {
			if side[i].Items == nil {
				side[i].Items = []string{}
			}
		}
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

// Write writes p in YAML.
func (p *Puzzle) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

// Check checks both sides with CheckStacks and that the goal names exactly
// the stacks of the start.
func (p *Puzzle) Check() error {
	if err := CheckStacks(p.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := CheckStacks(p.Goal); err != nil {
		return fmt.Errorf("goal: %w", err)
	}

	names := map[string]bool{}
	for _, s := range p.Start {
		names[s.Name] = true
	}
	for _, s := range p.Goal {
		if !names[s.Name] {
			return fmt.Errorf("goal: %q: %w", s.Name, ErrUnknownStack)
		}
		delete(names, s.Name)
	}
	for _, s := range p.Start {
		if names[s.Name] {
			return fmt.Errorf("goal: %q: %w", s.Name, ErrMissingStack)
		}
	}
	return nil
}

// Names returns the stack names in slot order.
func (p *Puzzle) Names() []string {
	names := make([]string, len(p.Start))
	for i, s := range p.Start {
		names[i] = s.Name
	}
	return names
}

// Stacks returns the item labels of start and goal in slot order. Goal
// stacks are placed in the slot of the start stack with the same name.
// p must have been checked.
func (p *Puzzle) Stacks() (start, goal [][]string) {
	slot := make(map[string]int, len(p.Start))
	start = make([][]string, len(p.Start))
	for i, s := range p.Start {
		slot[s.Name] = i
		start[i] = s.Items
	}
	goal = make([][]string, len(p.Start))
	for i := range goal {
		goal[i] = []string{}
	}
	for _, s := range p.Goal {
		goal[slot[s.Name]] = s.Items
	}
	return start, goal
}
