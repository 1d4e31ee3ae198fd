// Package provided records, per module, the dependency coordinates that the
// deployment host supplies and that must therefore stay out of the bundle.
//
// A Registry is populated once while the build graph is materialized and is
// only read afterwards. It is not safe for concurrent use.
package provided

import (
	"sort"

	"github.com/opmodel/shadeplan/internal/coordinate"
	"github.com/opmodel/shadeplan/internal/graph"
	"github.com/opmodel/shadeplan/internal/output"
)

type entry struct {
	coord coordinate.Coordinate

	// literal entries name a module of the build and always compare exactly
	literal bool

	// compiled regex pattern, built on first regex lookup
	pattern *coordinate.Pattern
	invalid bool
}

// Registry maps modules to their provided coordinates.
type Registry struct {
	entries map[graph.ModuleID][]*entry
	seen    map[graph.ModuleID]map[entryKey]struct{}
}

type entryKey struct {
	coord   coordinate.Coordinate
	literal bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[graph.ModuleID][]*entry),
		seen:    make(map[graph.ModuleID]map[entryKey]struct{}),
	}
}

// FromGraph registers every provided declaration in g.
func FromGraph(g *graph.Graph) *Registry {
	r := NewRegistry()
	for _, id := range g.Modules() {
		n, _ := g.Node(id)
		for _, p := range n.Provided {
			r.Register(id, p.Group, p.Artifact, p.Version, p.Mask)
		}
		for _, dep := range n.ProvidedModules {
			r.RegisterModule(id, dep)
		}
	}
	return r
}

// Register records a provided coordinate for module. Fields outside mask are
// stored empty and match anything. Registering the same coordinate twice is a no-op.
func (r *Registry) Register(module graph.ModuleID, group, artifact, version string, mask coordinate.FieldMask) {
	r.add(module, coordinate.New(group, artifact, version, mask), false)
}

// RegisterModule records another module of the build as provided, matching
// any version of it. The module id is compared literally in both match modes.
func (r *Registry) RegisterModule(module, dep graph.ModuleID) {
	r.add(module, coordinate.Coordinate{Group: dep.Group, Artifact: dep.Name}, true)
}

func (r *Registry) add(module graph.ModuleID, c coordinate.Coordinate, literal bool) {
	seen, ok := r.seen[module]
	if !ok {
		seen = make(map[entryKey]struct{})
		r.seen[module] = seen
	}
	key := entryKey{coord: c, literal: literal}
	if _, dup := seen[key]; dup {
		return
	}
	seen[key] = struct{}{}
	r.entries[module] = append(r.entries[module], &entry{coord: c, literal: literal})
}

// ExclusionsFor returns the coordinates registered for module in registration
// order, or nil when none were registered.
func (r *Registry) ExclusionsFor(module graph.ModuleID) []coordinate.Coordinate {
	entries := r.entries[module]
	if len(entries) == 0 {
		return nil
	}
	out := make([]coordinate.Coordinate, len(entries))
	for i, e := range entries {
		out[i] = e.coord
	}
	return out
}

// IsExcluded reports whether candidate matches any coordinate registered for
// module using exact field comparison.
func (r *Registry) IsExcluded(module graph.ModuleID, candidate coordinate.Coordinate) bool {
	return r.Matches(module, candidate, coordinate.MatchExact)
}

// Matches reports whether candidate matches any coordinate registered for
// module under the given mode. Entries whose regex does not compile never match.
func (r *Registry) Matches(module graph.ModuleID, candidate coordinate.Coordinate, mode coordinate.MatchMode) bool {
	for _, e := range r.entries[module] {
		if mode == coordinate.MatchExact || e.literal {
			if coordinate.Matches(e.coord, candidate) {
				return true
			}
			continue
		}
		if e.matchRegex(module, candidate) {
			return true
		}
	}
	return false
}

func (e *entry) matchRegex(module graph.ModuleID, candidate coordinate.Coordinate) bool {
	if e.invalid {
		return false
	}
	if e.pattern == nil {
		p, err := coordinate.Compile(e.coord, coordinate.MatchRegex)
		if err != nil {
			output.Debug("ignoring provided pattern", "module", module.String(), "error", err)
			e.invalid = true
			return false
		}
		e.pattern = p
	}
	return e.pattern.Match(candidate)
}

// Modules returns the modules that have at least one entry, sorted by id.
func (r *Registry) Modules() []graph.ModuleID {
	out := make([]graph.ModuleID, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
