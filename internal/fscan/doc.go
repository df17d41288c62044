// Package fscan provides directory size scanning and aggregation.
//
// It walks directory trees using fastwalk, resolves the size of every
// regular file on a pool of workers, and attributes each size to every
// ancestor directory so that directory totals are built bottom-up in a
// single pass. The merged entries are then filtered and sorted by size.
package fscan
