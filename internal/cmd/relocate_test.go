package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/shadeplan/internal/testutil"
)

func TestRelocate(t *testing.T) {
	isolate(t)
	path := testutil.WriteSampleProject(t)

	out, err := execute(t, "relocate", "spigot", "--graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "io.papermc.lib")
	assert.Contains(t, out, "org.example.shadow.bstats")

	out, err = execute(t, "relocate", "common", "--graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "relocates nothing")
}

func TestRelocate_Rewrites(t *testing.T) {
	isolate(t)
	path := testutil.WriteSampleProject(t)

	out, err := execute(t, "relocate", "spigot",
		"org.bstats.bukkit.Metrics", "io/papermc/lib/PaperLib", "org.bstatsx.Other",
		"--graph", path, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"relocated": "org.example.shadow.bstats.bukkit.Metrics"`)
	assert.Contains(t, out, `"relocated": "org/example/shadow/paperlib/PaperLib"`)
	assert.Contains(t, out, `"relocated": "org.bstatsx.Other"`)
}
