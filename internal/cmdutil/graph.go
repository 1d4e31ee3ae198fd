package cmdutil

import (
	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/config"
	"github.com/opmodel/shadeplan/internal/graph"
	"github.com/opmodel/shadeplan/internal/output"
)

// LoadGraph loads the build graph named by the resolved --graph value.
func LoadGraph(gc *cmdtypes.GlobalConfig) (*graph.Graph, error) {
	path, err := config.ExpandPath(gc.GraphPath)
	if err != nil {
		return nil, err
	}
	output.Debug("loading build graph", "path", path)
	return graph.LoadFile(path)
}

// LoadModule loads the graph and resolves a module reference on it.
func LoadModule(gc *cmdtypes.GlobalConfig, ref string) (*graph.Graph, graph.ModuleID, error) {
	g, err := LoadGraph(gc)
	if err != nil {
		return nil, graph.ModuleID{}, err
	}
	id, err := g.Lookup(ref)
	if err != nil {
		return nil, graph.ModuleID{}, err
	}
	return g, id, nil
}
