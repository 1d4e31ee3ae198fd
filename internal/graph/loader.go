package graph

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/shadeplan/internal/coordinate"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/output"
)

// file is the on-disk graph document.
type file struct {
	Modules []moduleSpec `yaml:"modules" toml:"modules"`
}

type moduleSpec struct {
	Name            string           `yaml:"name" toml:"name"`
	Group           string           `yaml:"group" toml:"group"`
	Embeds          []string         `yaml:"embeds" toml:"embeds"`
	Requires        []string         `yaml:"requires" toml:"requires"`
	Provided        []providedSpec   `yaml:"provided" toml:"provided"`
	ProvidedModules []string         `yaml:"providedModules" toml:"providedModules"`
	Relocations     []relocationSpec `yaml:"relocations" toml:"relocations"`
	Bundle          []bundleSpec     `yaml:"bundle" toml:"bundle"`
}

type providedSpec struct {
	Group    string   `yaml:"group" toml:"group"`
	Artifact string   `yaml:"artifact" toml:"artifact"`
	Version  string   `yaml:"version" toml:"version"`
	Fields   []string `yaml:"fields" toml:"fields"`
}

type relocationSpec struct {
	From string `yaml:"from" toml:"from"`
	To   string `yaml:"to" toml:"to"`
}

type bundleSpec struct {
	Coordinate string `yaml:"coordinate" toml:"coordinate"`
	File       string `yaml:"file" toml:"file"`
}

// Format is the encoding of a graph file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadFile reads, validates and links a graph file.
// Bundle file paths are resolved relative to the graph file's directory.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("build graph file does not exist", path,
				"Pass --graph or set 'graph' in the config file")
		}
		return nil, fmt.Errorf("reading build graph: %w", err)
	}

	g, err := Parse(data, FormatFromPath(path), path)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	for _, id := range g.order {
		n := g.nodes[id]
		for i := range n.Bundle {
			if n.Bundle[i].File != "" && !filepath.IsAbs(n.Bundle[i].File) {
				n.Bundle[i].File = filepath.Join(baseDir, n.Bundle[i].File)
			}
		}
	}

	return g, nil
}

// Parse decodes, validates and links graph data. location names the source
// in diagnostics.
func Parse(data []byte, format Format, location string) (*Graph, error) {
	var doc map[string]any
	if err := unmarshal(data, format, &doc); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), location, "", "")
	}
	if doc == nil {
		doc = map[string]any{}
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(doc, location); err != nil {
		return nil, err
	}

	var f file
	if err := unmarshal(data, format, &f); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), location, "", "")
	}

	g, err := build(f, location)
	if err != nil {
		return nil, err
	}

	output.Debug("build graph loaded", "source", location, "modules", g.Len())
	return g, nil
}

func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatTOML:
		return toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	default:
		return yaml.Unmarshal(data, v)
	}
}

// build adds every module first, then resolves references so that modules
// may refer to ones declared later in the file.
func build(f file, location string) (*Graph, error) {
	g := New()
	g.Source = location

	for _, spec := range f.Modules {
		n := &Node{ID: ModuleID{Group: spec.Group, Name: spec.Name}}

		for _, p := range spec.Provided {
			mask, err := coordinate.ParseFieldMask(p.Fields)
			if err != nil {
				return nil, oerrors.NewValidationError(err.Error(), location, "provided.fields", "")
			}
			n.Provided = append(n.Provided, Provided{
				Group: p.Group, Artifact: p.Artifact, Version: p.Version, Mask: mask,
			})
		}

		for _, r := range spec.Relocations {
			n.Relocations = append(n.Relocations, Relocation{From: r.From, To: r.To})
		}

		for _, b := range spec.Bundle {
			c, err := coordinate.Parse(b.Coordinate)
			if err != nil {
				return nil, oerrors.NewValidationError(err.Error(), location, "bundle.coordinate", "")
			}
			n.Bundle = append(n.Bundle, BundleEntry{Coordinate: c, File: b.File})
		}

		if err := g.Add(n); err != nil {
			return nil, err
		}
	}

	for i, spec := range f.Modules {
		n := g.nodes[g.order[i]]
		var err error
		if n.Embeds, err = g.lookupAll(spec.Embeds); err != nil {
			return nil, err
		}
		if n.Requires, err = g.lookupAll(spec.Requires); err != nil {
			return nil, err
		}
		if n.ProvidedModules, err = g.lookupAll(spec.ProvidedModules); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Graph) lookupAll(refs []string) ([]ModuleID, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]ModuleID, 0, len(refs))
	for _, ref := range refs {
		id, err := g.Lookup(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
