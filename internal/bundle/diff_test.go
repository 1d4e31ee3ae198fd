package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planV1 = `module: org.example:spigot
version: 1.0.0
artifact: spigot-1.0.0.jar
included:
  - coordinate: org.bstats:bstats-base:3.0.0
    origin: org.example:core
`

const planV2 = `module: org.example:spigot
version: 1.1.0
artifact: spigot-1.1.0.jar
included:
  - coordinate: org.bstats:bstats-base:3.0.0
    origin: org.example:core
`

func TestDiff_Identical(t *testing.T) {
	out, err := Diff([]byte(planV1), []byte(planV1), false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiff_Empty(t *testing.T) {
	out, err := Diff(nil, []byte("  \n"), false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiff_Changed(t *testing.T) {
	out, err := Diff([]byte(planV1), []byte(planV2), false)
	require.NoError(t, err)
	assert.Contains(t, out, "version")
	assert.Contains(t, out, "1.1.0")
}

func TestDiff_JSONAgainstYAML(t *testing.T) {
	asJSON := `{"module":"org.example:spigot","version":"1.0.0","artifact":"spigot-1.0.0.jar",
"included":[{"coordinate":"org.bstats:bstats-base:3.0.0","origin":"org.example:core"}]}`

	out, err := Diff([]byte(planV1), []byte(asJSON), false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiff_Malformed(t *testing.T) {
	_, err := Diff([]byte(planV1), []byte("included: ["), false)
	assert.Error(t, err)
}
