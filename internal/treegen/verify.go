package treegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/idelchi/treegen/internal/artifact"
)

// Report is the outcome of a layout verification.
type Report struct {
	// Files is the number of files seen.
	Files int64 `json:"files"`
	// Directories is the number of directories seen below the root.
	Directories int64 `json:"directories"`
	// Violations lists every deviation from the expected layout, sorted.
	Violations []string `json:"violations"`
	// Elapsed is the total time taken for verification.
	Elapsed time.Duration `json:"elapsed"`
}

// OK reports whether the tree matched the expected layout.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// verifier aggregates results from concurrent fastwalk callbacks using a mutex.
type verifier struct {
	mu         sync.Mutex
	files      int64
	dirs       int64
	violations []string
}

func (v *verifier) addFile() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.files++
}

func (v *verifier) addDir() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirs++
}

func (v *verifier) violate(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.violations = append(v.violations, fmt.Sprintf(format, args...))
}

// finalize produces the report, adding count mismatches against the closed form.
func (v *verifier) finalize(maxDepth int) *Report {
	v.mu.Lock()
	defer v.mu.Unlock()

	if want := FileCount(maxDepth); uint64(v.files) != want { //nolint:gosec // Counts are never negative
		v.violations = append(v.violations, fmt.Sprintf("file count: expected %d, found %d", want, v.files))
	}

	if want := DirCount(maxDepth); uint64(v.dirs) != want { //nolint:gosec // Counts are never negative
		v.violations = append(v.violations, fmt.Sprintf("directory count: expected %d, found %d", want, v.dirs))
	}

	sort.Strings(v.violations)

	return &Report{
		Files:       v.files,
		Directories: v.dirs,
		Violations:  v.violations,
	}
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// Verify walks root in parallel and checks that it holds exactly the tree
// Generate would produce for maxDepth, byte for byte. Missing entries are
// reported by path as each directory is visited.
//
//nolint:gocognit,funlen // Single walk callback covering every entry kind
func Verify(ctx context.Context, root string, maxDepth int, log *zap.Logger) (*Report, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}

	if log == nil {
		log = zap.NewNop()
	}

	root = filepath.Clean(root)

	if statInfo, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", root, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", root)
	}

	set, err := artifact.Render(FanOut, maxDepth)
	if err != nil {
		return nil, err
	}

	positions := make(map[string]int, len(set.Labels))
	for i, label := range set.Labels {
		positions[label] = i
	}

	display := func(path string) string {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		return filepath.ToSlash(rel)
	}

	v := &verifier{}
	start := time.Now()

	// checkChildren reports every expected entry missing from a directory at level.
	checkChildren := func(dir string, level int) {
		expected := []string{artifact.IndexName}

		for _, label := range set.Labels {
			expected = append(expected, artifact.FileName(label))

			if level < maxDepth {
				expected = append(expected, label)
			}
		}

		for _, name := range expected {
			path := filepath.Join(dir, name)
			if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
				v.violate("%s: missing", display(path))
			}
		}
	}

	checkChildren(root, 1)

	conf := &fastwalk.Config{
		Follow: false,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			v.violate("%s: %v", display(path), err)

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		depth := calculateDepth(path, root)
		if depth == 0 {
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			_, known := positions[name]
			if !known || depth >= maxDepth {
				log.Debug("unexpected directory", zap.String("path", display(path)))
				v.violate("%s: unexpected directory", display(path))

				return filepath.SkipDir
			}

			v.addDir()
			checkChildren(path, depth+1)

			return nil
		}

		v.addFile()

		var want []byte

		if name == artifact.IndexName {
			want = set.Index
		} else if i, known := positions[strings.TrimSuffix(name, artifact.Extension)]; known &&
			strings.HasSuffix(name, artifact.Extension) {
			want = set.Child(i, depth, maxDepth)
		} else {
			v.violate("%s: unexpected file", display(path))

			return nil
		}

		got, err := os.ReadFile(path)
		if err != nil {
			v.violate("%s: %v", display(path), err)

			return nil
		}

		if !bytes.Equal(got, want) {
			log.Debug("content mismatch", zap.String("path", display(path)))
			v.violate("%s: unexpected content", display(path))
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	report := v.finalize(maxDepth)
	report.Elapsed = time.Since(start)

	return report, nil
}
