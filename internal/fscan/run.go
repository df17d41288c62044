package fscan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures a scan.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Threshold is the optional minimum file size.
	Threshold Threshold
	// ExcludeEmpty drops directories whose total is zero from the report.
	ExcludeEmpty bool
	// FullChain attributes sizes to every ancestor up to the filesystem root.
	FullChain bool
	// Extensions to include (empty = all). Use '!' prefix to exclude.
	Extensions []string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// Workers is the size of the aggregation pool (0=number of CPUs).
	Workers int
	// WalkWorkers is the number of traversal goroutines (0=fastwalk default).
	WalkWorkers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is
// done or the returned stop function is called. Once stop returns the hook
// is never called again.
func startProgressReporter(
	ctx context.Context, agg *Aggregator, hook func(int64, int64), interval time.Duration,
) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}

				hook(agg.progress())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// Run scans opt.Path and returns the size maps together with the filtered,
// sorted report entries.
//
// Once the walk has started no single entry can fail the scan: unreadable
// entries are skipped and files whose metadata cannot be read count as 0 bytes.
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	if info, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	excludeRegexes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	include, exclude := ParseExtensions(opt.Extensions)

	log.WithFields(log.Fields{
		"path":       opt.Path,
		"threshold":  opt.Threshold,
		"full_chain": opt.FullChain,
		"depth":      opt.Depth,
		"workers":    opt.Workers,
	}).Debug("starting scan")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	walker := NewWalker(opt.Path, WalkOptions{
		Excludes: excludeRegexes,
		Include:  include,
		Exclude:  exclude,
		Depth:    opt.Depth,
		// Without a threshold every visited directory is reported, empty ones included.
		Dirs:    !opt.Threshold.Enabled,
		Workers: opt.WalkWorkers,
	})

	agg := &Aggregator{
		Root:      walker.Root(),
		Threshold: opt.Threshold,
		FullChain: opt.FullChain,
		Workers:   opt.Workers,
	}

	stopProgress := startProgressReporter(ctx, agg, progressHook, opt.ProgressInterval)

	start := time.Now()

	result := agg.Aggregate(walker.Walk(ctx))

	stopProgress()

	if err := walker.Err(); err != nil {
		return nil, fmt.Errorf("walking %q: %w", opt.Path, err)
	}

	result.ErrorCount += walker.Errors()
	result.Pipeline(opt.ExcludeEmpty)

	log.WithFields(log.Fields{
		"files":   len(result.Files),
		"dirs":    len(result.Dirs),
		"entries": len(result.Entries),
		"errors":  result.ErrorCount,
		"elapsed": time.Since(start),
	}).Debug("scan finished")

	return result, nil
}
