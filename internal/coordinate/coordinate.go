// Package coordinate models dependency coordinates (group:artifact:version)
// with partial-match semantics.
package coordinate

import (
	"fmt"
	"strings"
)

// FieldMask selects which coordinate fields are significant.
type FieldMask uint8

const (
	// MaskVersion marks the version field as significant.
	MaskVersion FieldMask = 1 << iota
	// MaskArtifact marks the artifact field as significant.
	MaskArtifact
	// MaskGroup marks the group field as significant.
	MaskGroup

	// MaskAll keeps every field.
	MaskAll = MaskGroup | MaskArtifact | MaskVersion

	// MaskDefault keeps group and artifact, wildcarding the version.
	MaskDefault = MaskGroup | MaskArtifact
)

// Has reports whether every bit of f is set in m.
func (m FieldMask) Has(f FieldMask) bool {
	return m&f == f
}

// String renders the mask as a comma separated field list.
func (m FieldMask) String() string {
	var names []string
	if m.Has(MaskGroup) {
		names = append(names, "group")
	}
	if m.Has(MaskArtifact) {
		names = append(names, "artifact")
	}
	if m.Has(MaskVersion) {
		names = append(names, "version")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseFieldMask builds a mask from field names. An empty list yields MaskDefault.
func ParseFieldMask(fields []string) (FieldMask, error) {
	if len(fields) == 0 {
		return MaskDefault, nil
	}
	var m FieldMask
	for _, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "group":
			m |= MaskGroup
		case "artifact", "name":
			m |= MaskArtifact
		case "version":
			m |= MaskVersion
		default:
			return 0, fmt.Errorf("unknown coordinate field %q", f)
		}
	}
	return m, nil
}

// Coordinate identifies a dependency. An empty field matches anything.
type Coordinate struct {
	Group    string `json:"group,omitempty"`
	Artifact string `json:"artifact,omitempty"`
	Version  string `json:"version,omitempty"`
}

// New returns a coordinate with the fields outside mask wildcarded.
func New(group, artifact, version string, mask FieldMask) Coordinate {
	c := Coordinate{}
	if mask.Has(MaskGroup) {
		c.Group = group
	}
	if mask.Has(MaskArtifact) {
		c.Artifact = artifact
	}
	if mask.Has(MaskVersion) {
		c.Version = version
	}
	return c
}

// Parse reads a "group:artifact:version" string. Missing trailing parts are empty.
func Parse(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coordinate{}, fmt.Errorf("empty coordinate")
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return Coordinate{}, fmt.Errorf("coordinate %q has more than three parts", s)
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Coordinate {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the coordinate as "group:artifact:version".
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// IsWildcard reports whether every field is empty, i.e. c matches everything.
func (c Coordinate) IsWildcard() bool {
	return c.Group == "" && c.Artifact == "" && c.Version == ""
}

// Key returns the group:artifact pair used to compare candidates regardless of version.
func (c Coordinate) Key() string {
	return c.Group + ":" + c.Artifact
}
