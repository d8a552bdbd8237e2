package treegen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Stats represents aggregate statistics for a directory tree.
type Stats struct {
	// Files is the number of non-directory entries.
	Files int64 `json:"files"`
	// Directories is the number of directories below the walked root.
	Directories int64 `json:"directories"`
	// Size is the cumulative size of all files in bytes.
	Size int64 `json:"size"`
}

// Add returns the sum of two statistics.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Files:       s.Files + other.Files,
		Directories: s.Directories + other.Directories,
		Size:        s.Size + other.Size,
	}
}

// Options configures tree generation and CLI behavior.
type Options struct {
	// Depth is the number of directory levels, root included.
	Depth int
	// Root is the directory the tree is generated into.
	Root string
	// Yes skips the confirmation prompt for deep trees.
	Yes bool
	// Verify checks the generated layout after generation.
	Verify bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (table or json).
	Output string
}

// Collect walks dir and returns the files, directories and bytes below it.
// Each subdirectory contributes itself plus its own subtree; dir is not counted.
func Collect(dir string) (Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Stats{}, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	var stats Stats

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			sub, err := Collect(path)
			if err != nil {
				return Stats{}, err
			}

			stats = stats.Add(Stats{Directories: 1}).Add(sub)

			continue
		}

		info, err := entry.Info()
		if err != nil {
			return Stats{}, fmt.Errorf("reading file info %q: %w", path, err)
		}

		stats = stats.Add(Stats{Files: 1, Size: info.Size()})
	}

	return stats, nil
}
