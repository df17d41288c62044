package fscan

import (
	"cmp"
	"slices"
)

// Merge builds one entry per file and per directory of the result.
func (r *Result) Merge() []Entry {
	entries := make([]Entry, 0, len(r.Files)+len(r.Dirs))

	for path, size := range r.Files {
		entries = append(entries, NewEntry(path, size, KindFile))
	}

	for path, size := range r.Dirs {
		entries = append(entries, NewEntry(path, size, KindDirectory))
	}

	return entries
}

// TotalSize is the sum of all file sizes plus the sum of all directory totals.
// Nested content is counted once per level it appears in.
func (r *Result) TotalSize() uint64 {
	var total uint64

	for _, size := range r.Files {
		total += size
	}

	for _, size := range r.Dirs {
		total += size
	}

	return total
}

// TopFiles returns the n largest files.
func (r *Result) TopFiles(n int) []Entry {
	return top(r.Files, KindFile, n)
}

// TopDirs returns the n largest directories.
func (r *Result) TopDirs(n int) []Entry {
	return top(r.Dirs, KindDirectory, n)
}

func top(sizes map[string]uint64, kind Kind, n int) []Entry {
	entries := make([]Entry, 0, len(sizes))
	for path, size := range sizes {
		entries = append(entries, NewEntry(path, size, kind))
	}

	Sort(entries)

	if len(entries) > n {
		entries = entries[:n]
	}

	return entries
}

// Filter drops directories with a zero total when excludeEmpty is set.
// Files are always kept.
func Filter(entries []Entry, excludeEmpty bool) []Entry {
	if !excludeEmpty {
		return entries
	}

	return slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Kind == KindDirectory && e.SizeBytes == 0
	})
}

// Sort orders entries by size, largest first. Equal sizes list directories
// before files, then go by path, so output is reproducible.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(b.SizeBytes, a.SizeBytes),
			cmp.Compare(b.Kind, a.Kind),
			cmp.Compare(a.Path, b.Path),
		)
	})
}

// Pipeline merges the result, applies Filter and Sort, and stores the outcome in Entries.
func (r *Result) Pipeline(excludeEmpty bool) []Entry {
	entries := Filter(r.Merge(), excludeEmpty)
	Sort(entries)

	r.Entries = entries

	return entries
}
