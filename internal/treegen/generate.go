package treegen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/idelchi/treegen/internal/artifact"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// Generator writes synthetic trees to disk.
type Generator struct {
	// Logger receives warnings and debug tracing. Nil disables logging.
	Logger *zap.Logger
	// Progress, if set, is called with the number of files written so far,
	// at most once per ProgressInterval.
	Progress func(files int64)
	// ProgressInterval defaults to DefaultProgressInterval.
	ProgressInterval time.Duration
}

// pending is a directory waiting to be filled.
type pending struct {
	path  string
	depth int
}

// Generate builds a tree of maxDepth levels in root and returns the number of
// files written. An existing root is removed first, without confirmation.
//
// Directories are processed from an explicit stack in the same pre-order a
// recursive walk would use, so output is deterministic.
func (g *Generator) Generate(ctx context.Context, maxDepth int, root string) (int64, error) {
	if maxDepth < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}

	log := g.Logger
	if log == nil {
		log = zap.NewNop()
	}

	set, err := artifact.Render(FanOut, maxDepth)
	if err != nil {
		return 0, err
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := prepareRoot(root, log); err != nil {
		return 0, err
	}

	interval := g.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	var (
		written    int64
		lastReport = time.Now()
		stack      = []pending{{path: root, depth: 1}}
	)

	write := func(path string, content []byte) error {
		if err := os.WriteFile(path, content, filePerm); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}

		written++

		if g.Progress != nil && time.Since(lastReport) >= interval {
			g.Progress(written)

			lastReport = time.Now()
		}

		return nil
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		log.Debug("generating directory", zap.String("path", dir.path), zap.Int("depth", dir.depth))

		if err := write(filepath.Join(dir.path, artifact.IndexName), set.Index); err != nil {
			return written, err
		}

		leaf := dir.depth == maxDepth

		for i, label := range set.Labels {
			if err := write(filepath.Join(dir.path, artifact.FileName(label)), set.Child(i, dir.depth, maxDepth)); err != nil {
				return written, err
			}

			if leaf {
				continue
			}

			sub := filepath.Join(dir.path, label)
			if err := os.Mkdir(sub, dirPerm); err != nil {
				return written, fmt.Errorf("creating directory %q: %w", sub, err)
			}
		}

		if leaf {
			continue
		}

		// Push in reverse so f1 is filled first.
		for i := len(set.Labels) - 1; i >= 0; i-- {
			stack = append(stack, pending{path: filepath.Join(dir.path, set.Labels[i]), depth: dir.depth + 1})
		}
	}

	if g.Progress != nil {
		g.Progress(written)
	}

	return written, nil
}

// prepareRoot removes an existing root and creates it afresh.
func prepareRoot(root string, log *zap.Logger) error {
	_, err := os.Lstat(root)

	switch {
	case err == nil:
		log.Warn("output directory exists, removing it", zap.String("path", root))

		if err := os.RemoveAll(root); err != nil {
			return fmt.Errorf("removing existing directory %q: %w", root, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("accessing path %q: %w", root, err)
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		return fmt.Errorf("creating directory %q: %w", root, err)
	}

	return nil
}
