// Package graph holds the materialized build graph: modules, their embed and
// compile-only edges, and the provided-dependency and relocation declarations
// attached to each module.
package graph

import (
	"strings"

	"github.com/opmodel/shadeplan/internal/coordinate"
)

// ModuleID identifies a buildable unit.
type ModuleID struct {
	Group string `json:"group,omitempty"`
	Name  string `json:"name"`
}

// ParseModuleID reads "group:name" or a bare "name".
func ParseModuleID(s string) ModuleID {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return ModuleID{Group: s[:i], Name: s[i+1:]}
	}
	return ModuleID{Name: s}
}

// String renders the id as "group:name", or "name" when there is no group.
func (id ModuleID) String() string {
	if id.Group == "" {
		return id.Name
	}
	return id.Group + ":" + id.Name
}

// Provided is a provided-dependency declaration as written in the graph file.
type Provided struct {
	Group    string
	Artifact string
	Version  string
	Mask     coordinate.FieldMask
}

// Coordinate returns the declaration with the mask applied.
func (p Provided) Coordinate() coordinate.Coordinate {
	return coordinate.New(p.Group, p.Artifact, p.Version, p.Mask)
}

// Relocation rewrites a package prefix.
type Relocation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BundleEntry is an external dependency the module would copy into its artifact.
type BundleEntry struct {
	Coordinate coordinate.Coordinate
	// File is the resolved artifact path, empty when the graph does not name one.
	File string
}

// Node is a single module in the graph.
type Node struct {
	ID ModuleID

	// Embeds lists modules whose output is merged into this module's artifact.
	Embeds []ModuleID

	// Requires lists compile-only dependencies. They are never traversed
	// when computing relocations.
	Requires []ModuleID

	Provided        []Provided
	ProvidedModules []ModuleID
	Relocations     []Relocation
	Bundle          []BundleEntry
}
