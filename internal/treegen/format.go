package treegen

import "fmt"

//nolint:gochecknoglobals // Unit table
var units = []string{"B", "KB", "MB", "GB"}

// FormatBytes renders a byte count with two decimals in B, KB, MB or GB.
// Sizes beyond the gigabyte range stay in GB.
func FormatBytes(bytes int64) string {
	size := float64(max(bytes, 0))
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", size, units[unit])
}
