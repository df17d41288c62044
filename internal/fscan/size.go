package fscan

import "fmt"

// sizeUnits is the binary unit ladder used by FormatSize. There is no unit past TB.
//
//nolint:gochecknoglobals // Lookup table
var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with two decimals and a binary unit, e.g. "1.50 KB".
func FormatSize(n uint64) string {
	size := float64(n)
	unit := 0

	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}
