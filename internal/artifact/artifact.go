// Package artifact provides the embedded templates for generated file contents.
package artifact

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"text/template"
)

const (
	// Extension is appended to every generated file name.
	Extension = ".js"
	// IndexName is the file name of the per-directory index artifact.
	IndexName = "index" + Extension
)

//go:embed templates/*.tmpl
var sources embed.FS

//nolint:gochecknoglobals // Parsed once from embedded sources
var templates = template.Must(template.ParseFS(sources, "templates/*.tmpl"))

// Labels returns the child labels f1..fN for the given fan-out.
func Labels(fanOut int) []string {
	labels := make([]string, fanOut)
	for i := range labels {
		labels[i] = "f" + strconv.Itoa(i+1)
	}

	return labels
}

// FileName returns the file name for the artifact of a child label.
func FileName(label string) string {
	return label + Extension
}

// Set holds the rendered contents for one generation run.
// Branch and Leaf are indexed by child position, parallel to Labels.
type Set struct {
	Labels []string
	Index  []byte
	Branch [][]byte
	Leaf   [][]byte
}

// Render renders every artifact kind once for a tree of the given fan-out
// whose leaves sit at maxDepth.
func Render(fanOut, maxDepth int) (*Set, error) {
	labels := Labels(fanOut)

	index, err := execute("index.js.tmpl", map[string]any{"Labels": labels})
	if err != nil {
		return nil, err
	}

	set := &Set{
		Labels: labels,
		Index:  index,
		Branch: make([][]byte, fanOut),
		Leaf:   make([][]byte, fanOut),
	}

	for i, label := range labels {
		if set.Branch[i], err = execute("branch.js.tmpl", map[string]any{"Label": label}); err != nil {
			return nil, err
		}

		if set.Leaf[i], err = execute("leaf.js.tmpl", map[string]any{"Label": label, "Depth": maxDepth}); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// Child returns the content of the file for child i in a directory at depth.
func (s *Set) Child(i, depth, maxDepth int) []byte {
	if depth < maxDepth {
		return s.Branch[i]
	}

	return s.Leaf[i]
}

func execute(name string, data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}

	return buf.Bytes(), nil
}
