package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/treegen/internal/treegen"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// MaxViolations caps the verification problems listed in table output.
	MaxViolations = 20
)

// Summary describes a finished generation run.
type Summary struct {
	Depth        int             `json:"depth"`
	Root         string          `json:"root"`
	Stats        treegen.Stats   `json:"stats"`
	HumanSize    string          `json:"human_size"`
	Elapsed      time.Duration   `json:"elapsed"`
	Verification *treegen.Report `json:"verification,omitempty"`
}

// count renders a closed-form count with thousands separators.
// Counts saturated at math.MaxUint64 are shown as a lower bound.
func count(n uint64) string {
	switch {
	case n == math.MaxUint64:
		return "more than " + humanize.BigComma(new(big.Int).SetUint64(n))
	case n > math.MaxInt64:
		return humanize.BigComma(new(big.Int).SetUint64(n))
	default:
		return humanize.Comma(int64(n))
	}
}

// printDepthTable prints the file count for every depth up to maxDepth.
func printDepthTable(writer io.Writer, maxDepth int) {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, "Depth\tFiles\tDirectories\t")

	for depth := 1; depth <= maxDepth; depth++ {
		fmt.Fprintf(w, "%d\t%s\t%s\t\n", depth, count(treegen.FileCount(depth)), count(treegen.DirCount(depth)))
	}

	_ = w.Flush()
}

// printWarning announces the size of a deep tree before asking for confirmation.
func printWarning(writer io.Writer, depth int) {
	fmt.Fprintf(writer, "Warning: depth %d will generate %s files in %s directories.\n",
		depth, count(treegen.FileCount(depth)), count(treegen.DirCount(depth)))
}

// PrintJSON outputs the summary in JSON format.
func PrintJSON(summary Summary, writer io.Writer) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the summary in human-readable table format.
func PrintTable(summary Summary, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Generated tree of depth %d in %s\n", summary.Depth, summary.Root)

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Files:\t%s\n", humanize.Comma(summary.Stats.Files))
	fmt.Fprintf(w, "Directories:\t%s\n", humanize.Comma(summary.Stats.Directories))
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", summary.HumanSize, summary.Stats.Size)
	fmt.Fprintf(w, "Elapsed:\t%v\n", summary.Elapsed)

	if report := summary.Verification; report != nil {
		if report.OK() {
			fmt.Fprintf(w, "Verification:\tOK (%v)\n", report.Elapsed)
		} else {
			fmt.Fprintf(w, "Verification:\tFAILED (%d problems)\n", len(report.Violations))

			for i, violation := range report.Violations {
				if i == MaxViolations {
					fmt.Fprintf(w, "  … and %d more\n", len(report.Violations)-MaxViolations)

					break
				}

				fmt.Fprintf(w, "  - %s\n", violation)
			}
		}
	}

	return w.Flush()
}
