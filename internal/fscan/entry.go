package fscan

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind tells whether an entry is a single file or a directory total.
type Kind uint8

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDirectory is the transitive total of a directory.
	KindDirectory
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindDirectory:
		return "Directory"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by its display name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its display name, so exported JSON
// reports can be read back into entries.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "File":
		*k = KindFile
	case "Directory":
		*k = KindDirectory
	default:
		return fmt.Errorf("unknown entry kind %q", text)
	}

	return nil
}

// Entry is one row of the report.
type Entry struct {
	// Path is the file or directory path.
	Path string `json:"path"`
	// SizeBytes is the size in bytes.
	SizeBytes uint64 `json:"size_bytes"`
	// SizeHuman is SizeBytes rendered by FormatSize.
	SizeHuman string `json:"size_human"`
	// Kind is File or Directory.
	Kind Kind `json:"kind"`
}

// NewEntry creates an entry, filling in the human readable size.
func NewEntry(path string, size uint64, kind Kind) Entry {
	return Entry{
		Path:      path,
		SizeBytes: size,
		SizeHuman: FormatSize(size),
		Kind:      kind,
	}
}

// Threshold is an optional minimum size. A file must be strictly larger to be counted.
type Threshold struct {
	// Bytes is the cutoff.
	Bytes uint64
	// Enabled reports whether a cutoff applies at all.
	Enabled bool
}

// NewThreshold returns an enabled threshold of the given size.
func NewThreshold(bytes uint64) Threshold {
	return Threshold{Bytes: bytes, Enabled: true}
}

// Excludes reports whether a file of the given size falls at or below the cutoff.
func (t Threshold) Excludes(size uint64) bool {
	return t.Enabled && size <= t.Bytes
}

// String describes the threshold for display.
func (t Threshold) String() string {
	if !t.Enabled {
		return "none"
	}

	return FormatSize(t.Bytes)
}

// SkipLimits lists the accepted skip-N values, N in megabytes.
//
//nolint:gochecknoglobals // Config constant
var SkipLimits = []string{"skip-64", "skip-128", "skip-256", "skip-512", "skip-1024", "skip-2048"}

// ParseSkipLimit converts a "skip-N" value into a threshold of N megabytes.
func ParseSkipLimit(value string) (Threshold, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if !slices.Contains(SkipLimits, value) {
		return Threshold{}, fmt.Errorf("invalid skip limit %q: must be one of %v", value, SkipLimits)
	}

	megabytes, err := strconv.ParseUint(strings.TrimPrefix(value, "skip-"), 10, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("parsing skip limit %q: %w", value, err)
	}

	return NewThreshold(megabytes * 1024 * 1024), nil
}
