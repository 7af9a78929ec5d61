// Package planner defines the strategy contract for interchangeable motion
// planner implementations and an explicit registry of variants.
//
// The harness never looks inside a planner: it only binds one to a session,
// solves under a time budget, and clears it between queries. All anytime
// behavior (internal trees, roadmaps, incumbent solutions) is opaque.
package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/roach88/planconf/internal/session"
)

// Planner is one stateful planner instance bound to exactly one session.
//
// Internal search state persists and improves across Solve calls; Clear
// fully resets it. Implementations read the session's objective on every
// Solve and honor its mode.
type Planner interface {
	// Setup prepares internal data structures. Must be called once before
	// the first Solve.
	Setup() error

	// Solve runs for up to the given budget and reports whether a solution
	// was found. On success the solution path is published on the bound
	// session. Solve is expected to return within roughly the budget plus
	// bounded overhead even when unsolved.
	Solve(budget time.Duration) (bool, error)

	// Clear fully resets internal search state between queries.
	Clear()
}

// Factory produces planner instances for a planner variant. Factories are
// stateless; all mutable state lives in the produced instance.
type Factory interface {
	// Name identifies the variant in reports and CLI flags.
	Name() string

	// New binds a fresh planner instance to the session.
	New(s *session.Session) (Planner, error)
}

// Registry holds explicitly registered planner variants.
// No init-time discovery: callers register every variant they want run.
type Registry struct {
	order  []string
	byName map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Factory)}
}

// Register adds a variant. Duplicate names are rejected.
func (r *Registry) Register(f Factory) error {
	name := f.Name()
	if name == "" {
		return fmt.Errorf("planner factory has empty name")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("planner %q already registered", name)
	}
	r.byName[name] = f
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Names returns all registered variant names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Factories returns all registered factories in registration order.
func (r *Registry) Factories() []Factory {
	fs := make([]Factory, 0, len(r.order))
	for _, name := range r.order {
		fs = append(fs, r.byName[name])
	}
	return fs
}

// Select returns the factories for the given names, or all factories in
// registration order when names is empty. Unknown names are reported with
// the available alternatives.
func (r *Registry) Select(names []string) ([]Factory, error) {
	if len(names) == 0 {
		return r.Factories(), nil
	}
	fs := make([]Factory, 0, len(names))
	for _, name := range names {
		f, ok := r.byName[name]
		if !ok {
			known := r.Names()
			sort.Strings(known)
			return nil, fmt.Errorf("unknown planner %q (registered: %v)", name, known)
		}
		fs = append(fs, f)
	}
	return fs, nil
}
