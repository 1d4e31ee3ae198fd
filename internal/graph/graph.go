package graph

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

// Graph is an arena of modules keyed by ModuleID. Iteration follows insertion order.
type Graph struct {
	nodes  map[ModuleID]*Node
	order  []ModuleID
	byName map[string][]ModuleID

	// Source is the file the graph was loaded from, if any.
	Source string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:  make(map[ModuleID]*Node),
		byName: make(map[string][]ModuleID),
	}
}

// Add inserts a node. Adding the same id twice is an error.
func (g *Graph) Add(n *Node) error {
	if n.ID.Name == "" {
		return oerrors.Wrap(oerrors.ErrValidation, "module without a name")
	}
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("module %q declared twice: %w", n.ID, oerrors.ErrValidation)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	g.byName[n.ID.Name] = append(g.byName[n.ID.Name], n.ID)
	return nil
}

// Node returns the node for id.
func (g *Graph) Node(id ModuleID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of modules.
func (g *Graph) Len() int {
	return len(g.order)
}

// Modules returns module ids in insertion order.
func (g *Graph) Modules() []ModuleID {
	out := make([]ModuleID, len(g.order))
	copy(out, g.order)
	return out
}

// Lookup resolves a reference written as "group:name" or as a bare name.
// A bare name must identify exactly one module.
func (g *Graph) Lookup(ref string) (ModuleID, error) {
	id := ParseModuleID(ref)
	if id.Group != "" {
		if _, ok := g.nodes[id]; ok {
			return id, nil
		}
		return ModuleID{}, oerrors.NewNotFoundError(
			fmt.Sprintf("module %q is not declared in the build graph", ref), g.Source,
			"Run 'shadeplan graph list' to see declared modules")
	}

	candidates := g.byName[id.Name]
	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return ModuleID{}, oerrors.NewNotFoundError(
			fmt.Sprintf("module %q is not declared in the build graph", ref), g.Source,
			"Run 'shadeplan graph list' to see declared modules")
	default:
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.String())
		}
		sort.Strings(names)
		return ModuleID{}, fmt.Errorf("module name %q is ambiguous (%s): %w",
			ref, strings.Join(names, ", "), oerrors.ErrValidation)
	}
}

// Check verifies that every edge points at a declared module.
func (g *Graph) Check() error {
	for _, id := range g.order {
		n := g.nodes[id]
		for _, edges := range [][]ModuleID{n.Embeds, n.Requires, n.ProvidedModules} {
			for _, to := range edges {
				if _, ok := g.nodes[to]; !ok {
					return oerrors.NewNotFoundError(
						fmt.Sprintf("module %q references undeclared module %q", id, to), g.Source, "")
				}
			}
		}
	}
	return nil
}
