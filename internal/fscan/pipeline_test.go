package fscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	entries := []Entry{
		NewEntry("empty", 0, KindDirectory),
		NewEntry("full", 10, KindDirectory),
		NewEntry("zero.txt", 0, KindFile),
	}

	assert.Len(t, Filter(slicesClone(entries), false), 3)
	assert.Equal(t, []Entry{
		NewEntry("full", 10, KindDirectory),
		NewEntry("zero.txt", 0, KindFile),
	}, Filter(slicesClone(entries), true))
}

func TestSort(t *testing.T) {
	entries := []Entry{
		NewEntry("b.txt", 200, KindFile),
		NewEntry("small", 1, KindDirectory),
		NewEntry("sub", 200, KindDirectory),
		NewEntry("root", 300, KindDirectory),
		NewEntry("a.txt", 200, KindFile),
	}

	Sort(entries)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].SizeBytes, entries[i].SizeBytes)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}

	assert.Equal(t, []string{"root", "sub", "a.txt", "b.txt", "small"}, paths)
}

func TestResult_TotalsAndTop(t *testing.T) {
	result := &Result{
		Files: map[string]uint64{"r/a": 100, "r/s/b": 200},
		Dirs:  map[string]uint64{"r": 300, "r/s": 200, "r/e": 0},
	}

	assert.Equal(t, uint64(800), result.TotalSize())
	assert.Len(t, result.Merge(), 5)

	top := result.TopDirs(2)
	assert.Equal(t, []Entry{NewEntry("r", 300, KindDirectory), NewEntry("r/s", 200, KindDirectory)}, top)
	assert.Len(t, result.TopFiles(5), 2)
	assert.Equal(t, "r/s/b", result.TopFiles(1)[0].Path)
}

func TestResult_PipelineEmpty(t *testing.T) {
	result := &Result{}

	assert.Empty(t, result.Pipeline(true))
	assert.Zero(t, result.TotalSize())
}

func slicesClone(entries []Entry) []Entry {
	return append([]Entry(nil), entries...)
}
