// Package bundle plans the contents of a shaded artifact. Provided coordinates
// are removed first; relocations only ever apply to what remains.
package bundle

import (
	"fmt"

	"github.com/opmodel/shadeplan/internal/coordinate"
	"github.com/opmodel/shadeplan/internal/graph"
	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/provided"
	"github.com/opmodel/shadeplan/internal/relocate"
)

// Entry is a bundle candidate.
type Entry struct {
	Coordinate string `json:"coordinate"`

	// Origin is the module that contributed the candidate.
	Origin string `json:"origin"`

	File string `json:"file,omitempty"`
}

// Relocation is a rule as recorded in a plan.
type Relocation struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Owner string `json:"owner"`
}

// Plan is everything the packaging step needs for one module.
type Plan struct {
	Module      string       `json:"module"`
	Version     string       `json:"version"`
	Artifact    string       `json:"artifact"`
	Included    []Entry      `json:"included"`
	Excluded    []Entry      `json:"excluded"`
	Relocations []Relocation `json:"relocations"`

	rules    []relocate.Rule
	excluded map[coordinate.Coordinate]struct{}
}

// Planner composes the provided registry and the relocation resolver.
type Planner struct {
	Graph    *graph.Graph
	Registry *provided.Registry
	Resolver *relocate.Resolver
}

// NewPlanner builds the registry and resolver for g.
func NewPlanner(g *graph.Graph) *Planner {
	return &Planner{
		Graph:    g,
		Registry: provided.FromGraph(g),
		Resolver: relocate.NewResolver(g),
	}
}

// Plan computes the bundle plan of module at version. Relocation errors abort
// the plan; no partial plan is returned.
func (p *Planner) Plan(module graph.ModuleID, version string) (*Plan, error) {
	rules, err := p.Resolver.ResolveExcluding(module, func(dep graph.ModuleID) bool {
		return p.Registry.Matches(module, moduleCoordinate(dep), coordinate.MatchRegex)
	})
	if err != nil {
		return nil, err
	}

	log := output.ModuleLogger(module.String())
	plan := &Plan{
		Module:      module.String(),
		Version:     version,
		Artifact:    fmt.Sprintf("%s-%s.jar", module.Name, version),
		Included:    []Entry{},
		Excluded:    []Entry{},
		Relocations: make([]Relocation, 0, len(rules)),
		rules:       rules,
		excluded:    make(map[coordinate.Coordinate]struct{}),
	}

	for _, c := range p.candidates(module) {
		entry := Entry{Coordinate: display(c.coord), Origin: c.origin.String(), File: c.file}
		if p.Registry.Matches(module, c.coord, coordinate.MatchRegex) {
			log.Debug("candidate provided by host", "coordinate", entry.Coordinate)
			plan.Excluded = append(plan.Excluded, entry)
			plan.excluded[c.coord] = struct{}{}
			continue
		}
		plan.Included = append(plan.Included, entry)
	}

	for _, r := range rules {
		plan.Relocations = append(plan.Relocations, Relocation{From: r.From, To: r.To, Owner: r.Owner.String()})
	}

	log.Debug("bundle planned",
		"included", len(plan.Included), "excluded", len(plan.Excluded), "relocations", len(plan.Relocations))
	return plan, nil
}

type candidate struct {
	coord  coordinate.Coordinate
	origin graph.ModuleID
	file   string
}

// moduleCoordinate is the candidate coordinate of an embedded module. The
// graph does not record module versions, so the version is left empty and
// only version-less provided entries can match it.
func moduleCoordinate(id graph.ModuleID) coordinate.Coordinate {
	return coordinate.Coordinate{Group: id.Group, Artifact: id.Name}
}

func display(c coordinate.Coordinate) string {
	if c.Version == "" {
		return c.Key()
	}
	return c.String()
}

// candidates lists the module's own bundle entries, then for each embedded
// module in pre-order its own coordinate and bundle entries. An embedded
// module that root's registry excludes contributes only its coordinate; its
// bundle entries and embeds ship with the host. Duplicates keep their first
// origin. The embed graph is known to be acyclic here.
func (p *Planner) candidates(root graph.ModuleID) []candidate {
	var out []candidate
	seenCoord := make(map[coordinate.Coordinate]struct{})
	seenModule := map[graph.ModuleID]struct{}{root: {}}

	add := func(c candidate) {
		if _, ok := seenCoord[c.coord]; ok {
			return
		}
		seenCoord[c.coord] = struct{}{}
		out = append(out, c)
	}
	addBundle := func(n *graph.Node) {
		for _, b := range n.Bundle {
			add(candidate{coord: b.Coordinate, origin: n.ID, file: b.File})
		}
	}

	var walk func(n *graph.Node)
	walk = func(n *graph.Node) {
		for _, dep := range n.Embeds {
			if _, ok := seenModule[dep]; ok {
				continue
			}
			seenModule[dep] = struct{}{}
			child, ok := p.Graph.Node(dep)
			if !ok {
				continue
			}
			coord := moduleCoordinate(dep)
			add(candidate{coord: coord, origin: dep})
			if p.Registry.Matches(root, coord, coordinate.MatchRegex) {
				continue
			}
			addBundle(child)
			walk(child)
		}
	}

	if n, ok := p.Graph.Node(root); ok {
		addBundle(n)
		walk(n)
	}
	return out
}

// IsExcluded reports whether origin was left out as a provided coordinate.
// Embedded modules are recorded without a version and match any origin
// version.
func (p *Plan) IsExcluded(origin coordinate.Coordinate) bool {
	if _, ok := p.excluded[origin]; ok {
		return true
	}
	_, ok := p.excluded[coordinate.Coordinate{Group: origin.Group, Artifact: origin.Artifact}]
	return ok
}

// Rewrite returns the relocated name of a class or package taken from origin.
// Classes from excluded origins are not part of the bundle and report false.
func (p *Plan) Rewrite(origin coordinate.Coordinate, name string) (string, bool) {
	if p.IsExcluded(origin) {
		return "", false
	}
	rewritten, _ := relocate.Apply(p.rules, name)
	return rewritten, true
}
