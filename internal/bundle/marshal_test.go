package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/shadeplan/internal/output"
)

func TestMarshal(t *testing.T) {
	plan, err := samplePlanner(t).Plan(spigot, "1.0.0")
	require.NoError(t, err)

	t.Run("yaml", func(t *testing.T) {
		data, err := Marshal(plan, output.FormatYAML)
		require.NoError(t, err)
		assert.Contains(t, string(data), "artifact: spigot-1.0.0.jar")
		assert.Contains(t, string(data), "coordinate: org.bstats:bstats-base:3.0.0")

		back, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, plan.Included, back.Included)
		assert.Equal(t, plan.Relocations, back.Relocations)
	})

	t.Run("json", func(t *testing.T) {
		data, err := Marshal(plan, output.FormatJSON)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"artifact": "spigot-1.0.0.jar"`)
	})

	t.Run("table is not an encoding", func(t *testing.T) {
		_, err := Marshal(plan, output.FormatTable)
		assert.Error(t, err)
	})
}
