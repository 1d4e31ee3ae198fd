package bundle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/shadeplan/internal/coordinate"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/graph"
	"github.com/opmodel/shadeplan/internal/testutil"
)

var spigot = graph.ModuleID{Group: "org.example", Name: "spigot"}

func samplePlanner(t *testing.T) *Planner {
	t.Helper()
	g, err := graph.LoadFile(testutil.WriteSampleProject(t))
	require.NoError(t, err)
	return NewPlanner(g)
}

func coords(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Coordinate
	}
	return out
}

func TestPlan_Sample(t *testing.T) {
	plan, err := samplePlanner(t).Plan(spigot, "0.7.0-SNAPSHOT")
	require.NoError(t, err)

	assert.Equal(t, "org.example:spigot", plan.Module)
	assert.Equal(t, "spigot-0.7.0-SNAPSHOT.jar", plan.Artifact)

	assert.Equal(t, []string{
		"io.papermc:paperlib:1.0.8",
		"org.example:core",
		"org.bstats:bstats-base:3.0.0",
	}, coords(plan.Included))

	assert.Equal(t, []string{
		"org.incendo:cloud-core:2.0.0",
		"org.example:api",
	}, coords(plan.Excluded))

	assert.Equal(t, []Relocation{
		{From: "io.papermc.lib", To: "org.example.shadow.paperlib", Owner: "org.example:spigot"},
		{From: "org.bstats", To: "org.example.shadow.bstats", Owner: "org.example:core"},
	}, plan.Relocations)

	assert.Equal(t, "org.example:core", plan.Included[2].Origin)
	assert.NotEmpty(t, plan.Included[2].File)
}

func TestPlan_IncludedNeverExcluded(t *testing.T) {
	p := samplePlanner(t)
	for _, id := range p.Graph.Modules() {
		plan, err := p.Plan(id, "1.0.0")
		require.NoError(t, err)
		for _, e := range plan.Included {
			c := coordinate.MustParse(e.Coordinate)
			assert.False(t, p.Registry.Matches(id, c, coordinate.MatchRegex), "%s includes %s", id, e.Coordinate)
		}
	}
}

func TestPlan_RewriteSkipsExcludedOrigins(t *testing.T) {
	plan, err := samplePlanner(t).Plan(spigot, "1.0.0")
	require.NoError(t, err)

	bstats := coordinate.MustParse("org.bstats:bstats-base:3.0.0")
	got, ok := plan.Rewrite(bstats, "org.bstats.Metrics")
	assert.True(t, ok)
	assert.Equal(t, "org.example.shadow.bstats.Metrics", got)

	got, ok = plan.Rewrite(bstats, "org/bstats/charts/SimplePie")
	assert.True(t, ok)
	assert.Equal(t, "org/example/shadow/bstats/charts/SimplePie", got)

	got, ok = plan.Rewrite(bstats, "com.google.gson.Gson")
	assert.True(t, ok)
	assert.Equal(t, "com.google.gson.Gson", got)

	// org.incendo is provided, so its classes are never relocated even
	// if a rule would match them.
	cloud := coordinate.MustParse("org.incendo:cloud-core:2.0.0")
	assert.True(t, plan.IsExcluded(cloud))
	got, ok = plan.Rewrite(cloud, "org.incendo.cloud.Command")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestPlan_EmbeddedModuleWithoutDeclarations(t *testing.T) {
	g := graph.New()
	app := graph.ModuleID{Name: "app"}
	lib := graph.ModuleID{Name: "lib"}
	require.NoError(t, g.Add(&graph.Node{ID: app, Embeds: []graph.ModuleID{lib}}))
	require.NoError(t, g.Add(&graph.Node{ID: lib}))

	plan, err := NewPlanner(g).Plan(app, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{":lib"}, coords(plan.Included))
	assert.Empty(t, plan.Excluded)
	assert.Empty(t, plan.Relocations)
}

func TestPlan_ResolverErrorAborts(t *testing.T) {
	g := graph.New()
	a := graph.ModuleID{Name: "a"}
	b := graph.ModuleID{Name: "b"}
	require.NoError(t, g.Add(&graph.Node{ID: a, Embeds: []graph.ModuleID{b}}))
	require.NoError(t, g.Add(&graph.Node{ID: b, Embeds: []graph.ModuleID{a}}))

	plan, err := NewPlanner(g).Plan(a, "1.0.0")
	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
}

func TestPlan_UnknownModule(t *testing.T) {
	_, err := samplePlanner(t).Plan(graph.ModuleID{Name: "ghost"}, "1.0.0")
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestPlan_ProvidedEmbeddedModuleIsPruned(t *testing.T) {
	g := graph.New()
	app := graph.ModuleID{Group: "org.ex", Name: "app"}
	lib := graph.ModuleID{Group: "org.ex", Name: "lib"}
	inner := graph.ModuleID{Group: "org.ex", Name: "inner"}
	require.NoError(t, g.Add(&graph.Node{
		ID:              app,
		Embeds:          []graph.ModuleID{lib},
		ProvidedModules: []graph.ModuleID{lib},
		Relocations:     []graph.Relocation{{From: "org.app", To: "app.shadow"}},
	}))
	require.NoError(t, g.Add(&graph.Node{
		ID:          lib,
		Embeds:      []graph.ModuleID{inner},
		Bundle:      []graph.BundleEntry{{Coordinate: coordinate.MustParse("org.yaml:snakeyaml:2.0")}},
		Relocations: []graph.Relocation{{From: "org.yaml", To: "lib.shadow.yaml"}},
	}))
	require.NoError(t, g.Add(&graph.Node{ID: inner}))

	p := NewPlanner(g)
	plan, err := p.Plan(app, "1.0.0")
	require.NoError(t, err)

	assert.Empty(t, plan.Included)
	assert.Equal(t, []string{"org.ex:lib"}, coords(plan.Excluded))
	assert.Equal(t, []Relocation{{From: "org.app", To: "app.shadow", Owner: "org.ex:app"}}, plan.Relocations)
	assert.True(t, plan.IsExcluded(coordinate.MustParse("org.ex:lib:1.0.0")))

	// lib planned on its own still bundles and relocates its library.
	own, err := p.Plan(lib, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"org.yaml:snakeyaml:2.0", "org.ex:inner"}, coords(own.Included))
	assert.Len(t, own.Relocations, 1)
}

func TestPlan_ModuleCandidateIgnoresRootVersion(t *testing.T) {
	tests := []struct {
		name     string
		provided graph.Provided
		excluded bool
	}{
		{
			name:     "version masked entry does not match a module",
			provided: graph.Provided{Group: "org.ex", Artifact: "lib", Version: "1.0.0", Mask: coordinate.MaskAll},
		},
		{
			name:     "version-less entry matches a module",
			provided: graph.Provided{Group: "org.ex", Artifact: "lib", Mask: coordinate.MaskDefault},
			excluded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			app := graph.ModuleID{Group: "org.ex", Name: "app"}
			lib := graph.ModuleID{Group: "org.ex", Name: "lib"}
			require.NoError(t, g.Add(&graph.Node{ID: app, Embeds: []graph.ModuleID{lib}, Provided: []graph.Provided{tt.provided}}))
			require.NoError(t, g.Add(&graph.Node{ID: lib}))

			plan, err := NewPlanner(g).Plan(app, "1.0.0")
			require.NoError(t, err)
			if tt.excluded {
				assert.Equal(t, []string{"org.ex:lib"}, coords(plan.Excluded))
			} else {
				assert.Equal(t, []string{"org.ex:lib"}, coords(plan.Included))
			}
		})
	}
}
