package cmdutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/testutil"
)

func TestLoadModule(t *testing.T) {
	gc := &cmdtypes.GlobalConfig{GraphPath: testutil.WriteSampleProject(t)}

	g, id, err := LoadModule(gc, "core")
	require.NoError(t, err)
	assert.Equal(t, "org.example:core", id.String())
	assert.Equal(t, 4, g.Len())

	_, _, err = LoadModule(gc, "missing")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestLoadGraph_MissingFile(t *testing.T) {
	gc := &cmdtypes.GlobalConfig{GraphPath: t.TempDir() + "/nope.yaml"}
	_, err := LoadGraph(gc)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}
