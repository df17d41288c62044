package fscan

import (
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// sizeMap is a path to byte count map safe for concurrent use.
type sizeMap struct {
	mu    sync.Mutex // Protect concurrent access
	sizes map[string]uint64
}

func newSizeMap() *sizeMap {
	return &sizeMap{sizes: make(map[string]uint64)}
}

// set records size for path, replacing any previous value.
func (m *sizeMap) set(path string, size uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sizes[path] = size
}

// add inserts path with 0 if missing and adds size to it, as one step.
func (m *sizeMap) add(path string, size uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sizes[path] += size
}

// touch inserts path with 0 if missing.
func (m *sizeMap) touch(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sizes[path]; !ok {
		m.sizes[path] = 0
	}
}

// snapshot returns a copy of the map.
func (m *sizeMap) snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return maps.Clone(m.sizes)
}

// ancestors yields the parent directories of path, nearest first. Unless
// full is set, the chain ends at root. It always ends at the filesystem root.
func ancestors(path, root string, full bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		dir := filepath.Dir(path)

		for {
			if !yield(dir) {
				return
			}

			parent := filepath.Dir(dir)
			if parent == dir || (!full && dir == root) {
				return
			}

			dir = parent
		}
	}
}

// Aggregator resolves file sizes on a pool of workers and accumulates each
// size into every ancestor directory.
type Aggregator struct {
	// Root is where the ancestor chain stops unless FullChain is set.
	Root string
	// Threshold drops files at or below its cutoff before any aggregation.
	Threshold Threshold
	// FullChain attributes sizes up to the filesystem root.
	FullChain bool
	// Workers is the size of the pool (0=runtime.NumCPU).
	Workers int
	// Stat resolves file metadata (nil=os.Stat).
	Stat func(name string) (fs.FileInfo, error)

	files *sizeMap
	dirs  *sizeMap

	processed  atomic.Int64
	bytes      atomic.Int64
	errorCount atomic.Int64
}

// Result holds the completed size maps of a scan.
type Result struct {
	// Files maps each counted file to its size.
	Files map[string]uint64
	// Dirs maps each directory to the total size of the files beneath it.
	Dirs map[string]uint64
	// Entries is the filtered, sorted report. It is filled in by Run.
	Entries []Entry
	// ErrorCount is the number of entries that could not be read.
	ErrorCount int64
}

// progress returns the number of files handled and bytes counted so far.
func (a *Aggregator) progress() (files, bytes int64) {
	return a.processed.Load(), a.bytes.Load()
}

// Aggregate drains items on the worker pool and returns the completed maps.
// It returns only after every item has been processed.
func (a *Aggregator) Aggregate(items <-chan Item) *Result {
	a.files = newSizeMap()
	a.dirs = newSizeMap()

	if a.Stat == nil {
		a.Stat = os.Stat
	}

	workers := a.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	root := filepath.Clean(a.Root)

	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for item := range items {
				a.process(item, root)
			}
		})
	}

	wg.Wait()

	return &Result{
		Files:      a.files.snapshot(),
		Dirs:       a.dirs.snapshot(),
		ErrorCount: a.errorCount.Load(),
	}
}

// process handles a single walked item.
func (a *Aggregator) process(item Item, root string) {
	if item.Dir {
		a.dirs.touch(item.Path)

		return
	}

	a.processed.Add(1)

	var size uint64

	info, err := a.Stat(item.Path)
	if err != nil {
		a.errorCount.Add(1)
		log.Debugf("reading metadata of %s: %v", item.Path, err)
	} else if info.Size() > 0 {
		size = uint64(info.Size())
	}

	if a.Threshold.Excludes(size) {
		return
	}

	a.bytes.Add(int64(size)) //nolint:gosec // Size came from a non-negative int64

	a.files.set(item.Path, size)

	for dir := range ancestors(item.Path, root, a.FullChain) {
		a.dirs.add(dir, size)
	}
}
