package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifestsEmptyDirFlag(t *testing.T) {
	manifests, err := LoadManifests("")
	require.NoError(t, err)
	assert.Nil(t, manifests)
}

func TestLoadManifestsReadsYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pulsestar.yaml"), []byte(`
name: pulsestar
num_inputs: 1
num_outputs: 2
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	manifests, err := LoadManifests(dir)
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, 2, manifests["pulsestar"].NumOutputs)
}

func TestLoadManifestsRejectsInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
name: bad
num_inputs: 9
`), 0o644))

	_, err := LoadManifests(dir)
	assert.ErrorContains(t, err, "bad.yaml")
}
