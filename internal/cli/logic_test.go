package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runGated executes the CLI with confirmation required above depth 1.
func runGated(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	c := New("test").WithIO(strings.NewReader(input), &out, &errOut)
	c.warningDepth = 1

	err := c.Execute(args)

	return out.String(), err
}

func TestConfirmedGenerationProceeds(t *testing.T) {
	for _, input := range []string{"y\n", "yes\n", "YES\n"} {
		root := filepath.Join(t.TempDir(), "tree")

		out, err := runGated(t, input, "2", root)
		require.NoError(t, err, input)

		assert.Contains(t, out, "Warning: depth 2 will generate 100 files in 9 directories.")
		assert.Contains(t, out, "Do you want to continue? (y/N): ")
		assert.NotContains(t, out, "Cancelled.")
		assert.Contains(t, out, "Generated tree of depth 2 in "+root)
		assert.FileExists(t, filepath.Join(root, "f9", "f9.js"), input)
	}
}

func TestYesFlagSkipsPrompt(t *testing.T) {
	for _, flag := range []string{"--yes", "-y"} {
		root := filepath.Join(t.TempDir(), "tree")

		out, err := runGated(t, "", flag, "2", root)
		require.NoError(t, err, flag)

		assert.Contains(t, out, "Warning: depth 2 will generate 100 files")
		assert.NotContains(t, out, "Do you want to continue?")
		assert.Contains(t, out, "Generated tree of depth 2 in "+root)
		assert.FileExists(t, filepath.Join(root, "index.js"), flag)
	}
}

func TestDeclinedAtLoweredThreshold(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")

	out, err := runGated(t, "n\n", "2", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Cancelled.")
	assert.NoDirExists(t, root)
}

func TestDepthAtThresholdIsNotGated(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")

	out, err := runGated(t, "", "1", root)
	require.NoError(t, err)

	assert.NotContains(t, out, "Warning:")
	assert.FileExists(t, filepath.Join(root, "index.js"))
}
