package treegen_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idelchi/treegen/internal/treegen"
)

// snapshot maps every slash-separated path below root to its content.
// Directories map to an empty string with a trailing slash in the key.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	entries := map[string]string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)

		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)

		if rel == "." {
			return nil
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			entries[rel+"/"] = ""

			return nil
		}

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		entries[rel] = string(data)

		return nil
	})
	require.NoError(t, err)

	return entries
}

func generate(t *testing.T, depth int, root string) int64 {
	t.Helper()

	var g treegen.Generator

	written, err := g.Generate(context.Background(), depth, root)
	require.NoError(t, err)

	return written
}

func TestGenerateCounts(t *testing.T) {
	for depth := 1; depth <= 3; depth++ {
		root := filepath.Join(t.TempDir(), "tree")

		written := generate(t, depth, root)
		assert.EqualValues(t, treegen.FileCount(depth), written)

		stats, err := treegen.Collect(root)
		require.NoError(t, err)

		assert.EqualValues(t, treegen.FileCount(depth), stats.Files, "depth %d", depth)
		assert.EqualValues(t, treegen.DirCount(depth), stats.Directories, "depth %d", depth)
	}
}

func TestGenerateDepthOneLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")
	generate(t, 1, root)

	entries := snapshot(t, root)
	require.Len(t, entries, 10)

	assert.Equal(t, strings.Join([]string{
		"import './f1';", "import './f2';", "import './f3';",
		"import './f4';", "import './f5';", "import './f6';",
		"import './f7';", "import './f8';", "import './f9';",
	}, "\n")+"\n", entries["index.js"])
	assert.Equal(t, "// leaf f4 at depth 1\n", entries["f4.js"])
}

func TestGenerateBranchesReferenceSubdirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")
	generate(t, 3, root)

	entries := snapshot(t, root)

	for path, content := range entries {
		if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "index.js") {
			continue
		}

		level := strings.Count(path, "/") + 1
		label := strings.TrimSuffix(filepath.Base(path), ".js")
		dir := strings.TrimSuffix(path, label+".js")

		if level < 3 {
			assert.Equal(t, "import './"+label+"/index';\n", content, path)
			assert.Contains(t, entries, dir+label+"/index.js", path)
		} else {
			assert.Equal(t, "// leaf "+label+" at depth 3\n", content, path)
			assert.NotContains(t, entries, dir+label+"/", path)
		}
	}
}

func TestGenerateReplacesExistingDirectory(t *testing.T) {
	base := t.TempDir()
	fresh := filepath.Join(base, "fresh")
	reused := filepath.Join(base, "reused")

	generate(t, 2, fresh)

	require.NoError(t, os.MkdirAll(filepath.Join(reused, "stale", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(reused, "f1.js"), []byte("stale"), 0o644))
	generate(t, 3, reused)

	core, logs := observer.New(zap.WarnLevel)
	g := treegen.Generator{Logger: zap.New(core)}

	_, err := g.Generate(context.Background(), 2, reused)
	require.NoError(t, err)

	assert.Equal(t, snapshot(t, fresh), snapshot(t, reused))
	assert.Equal(t, 1, logs.FilterMessage("output directory exists, removing it").Len())
}

func TestGenerateRejectsInvalidDepth(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")

	var g treegen.Generator

	_, err := g.Generate(context.Background(), 0, root)
	require.ErrorIs(t, err, treegen.ErrInvalidDepth)
	assert.NoDirExists(t, root)
}

func TestGenerateHonorsCancellation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")
	marker := filepath.Join(root, "keep.txt")

	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var g treegen.Generator

	written, err := g.Generate(ctx, 2, root)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, written)
	assert.FileExists(t, marker)
	assert.NoFileExists(t, filepath.Join(root, "index.js"))
}

func TestGenerateReportsProgress(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")

	var reports []int64

	g := treegen.Generator{
		Progress:         func(files int64) { reports = append(reports, files) },
		ProgressInterval: 1,
	}

	_, err := g.Generate(context.Background(), 2, root)
	require.NoError(t, err)

	require.NotEmpty(t, reports)
	assert.EqualValues(t, 100, reports[len(reports)-1])
}
