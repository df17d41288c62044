package fscan

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	log "github.com/sirupsen/logrus"
)

// walkBuffer is the capacity of the channel bridging the walk to the workers.
const walkBuffer = 256

// Item is a single entry produced by the walker.
type Item struct {
	// Path is the cleaned path of the entry, rooted at the walk root.
	Path string
	// Dir is set for directories, which are only produced when WalkOptions.Dirs is set.
	Dir bool
}

// WalkOptions configures which entries the walker produces.
type WalkOptions struct {
	// Excludes are patterns matched against slash paths; matching directories are pruned.
	Excludes []*regexp.Regexp
	// Include holds the file suffixes to keep (empty = all).
	Include map[string]struct{}
	// Exclude holds the file suffixes to drop.
	Exclude map[string]struct{}
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// Dirs makes the walker produce directories in addition to regular files.
	Dirs bool
	// Workers is the number of fastwalk goroutines (0=fastwalk default).
	Workers int
}

// Walker produces the entries beneath a root, one pass per call to Walk.
type Walker struct {
	root   string
	opt    WalkOptions
	errors atomic.Int64
	err    error
}

// NewWalker creates a walker rooted at root.
func NewWalker(root string, opt WalkOptions) *Walker {
	return &Walker{root: filepath.Clean(root), opt: opt}
}

// Root returns the cleaned walk root.
func (w *Walker) Root() string {
	return w.root
}

// Errors returns the number of entries skipped because they could not be read.
func (w *Walker) Errors() int64 {
	return w.errors.Load()
}

// Err returns the error that stopped the walk, if any. It is only valid
// once the channel returned by Walk has been closed.
func (w *Walker) Err() error {
	return w.err
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	if root == "." {
		root = ""
	}

	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" || relPath == "." {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// shouldIncludeByExtension checks if file should be included based on extension filters.
// Returns true if file should be included, false if excluded.
func shouldIncludeByExtension(path string, include, exclude map[string]struct{}) bool {
	for ext := range exclude {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	if len(include) == 0 {
		return true
	}

	for ext := range include {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

// ParseExtensions splits suffix filters into include and exclude sets.
// A leading '!' marks a suffix to exclude.
func ParseExtensions(extensions []string) (include, exclude map[string]struct{}) {
	include = make(map[string]struct{}, len(extensions))
	exclude = make(map[string]struct{}, len(extensions))

	for _, e := range extensions { //nolint:varnamelen // e is standard for element in range
		e = strings.Trim(e, "'\"")
		if e == "" {
			continue
		}

		if strings.HasPrefix(e, "!") {
			exclude[strings.TrimPrefix(e, "!")] = struct{}{}
		} else {
			include[e] = struct{}{}
		}
	}

	return include, exclude
}

// Walk starts the traversal and returns the channel it feeds. Entries that
// fail to be read are skipped and counted. The channel is closed when the
// traversal finishes or ctx is done.
func (w *Walker) Walk(ctx context.Context) <-chan Item {
	items := make(chan Item, walkBuffer)

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: w.opt.Workers,
	}

	go func() {
		defer close(items)

		//nolint:varnamelen // d is standard for DirEntry
		w.err = fastwalk.Walk(conf, w.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				w.errors.Add(1)
				log.Debugf("skipping unreadable path %s: %v", path, err)

				return nil
			}

			path = filepath.Clean(path)

			if depth := calculateDepth(path, w.root); w.opt.Depth > 0 && depth > w.opt.Depth {
				if d.IsDir() {
					log.Debugf("skipping directory (beyond depth %d): %s", w.opt.Depth, path)

					return filepath.SkipDir
				}

				return nil
			}

			if re := shouldExcludeByPattern(path, w.opt.Excludes); re != nil && path != w.root {
				log.Debugf("excluding %s (matched %s)", filepath.ToSlash(path), re.String())

				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			var item Item

			switch {
			case d.IsDir():
				if !w.opt.Dirs {
					return nil
				}

				item = Item{Path: path, Dir: true}
			case d.Type().IsRegular():
				if !shouldIncludeByExtension(path, w.opt.Include, w.opt.Exclude) {
					return nil
				}

				item = Item{Path: path}
			default:
				return nil
			}

			select {
			case items <- item:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return items
}
