// Package procs lists running processes by memory consumption.
package procs

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shirou/gopsutil/v3/process"
	log "github.com/sirupsen/logrus"
)

// Process is a running process and its resident memory.
type Process struct {
	PID    int32  `json:"pid"`
	Name   string `json:"name"`
	Memory uint64 `json:"memory"`
}

// MemoryMB returns the resident memory in megabytes.
func (p Process) MemoryMB() float64 {
	return float64(p.Memory) / 1024 / 1024
}

// Provider supplies a snapshot of running processes.
type Provider interface {
	Processes(ctx context.Context) ([]Process, error)
}

// System reads processes from the operating system.
type System struct{}

// Processes returns every process visible to the caller. Processes that exit
// or deny access while being inspected keep an empty name or zero memory.
func (System) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	result := make([]Process, 0, len(procs))

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			log.Debugf("reading name of process %d: %v", p.Pid, err)
		}

		var memory uint64

		mem, err := p.MemoryInfoWithContext(ctx)
		if err != nil {
			log.Debugf("reading memory of process %d: %v", p.Pid, err)
		} else if mem != nil {
			memory = mem.RSS
		}

		result = append(result, Process{PID: p.Pid, Name: name, Memory: memory})
	}

	return result, nil
}

// List returns the processes of provider sorted by memory, largest first.
func List(ctx context.Context, provider Provider) ([]Process, error) {
	procs, err := provider.Processes(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(procs, func(a, b Process) int {
		return cmp.Or(cmp.Compare(b.Memory, a.Memory), cmp.Compare(a.PID, b.PID))
	})

	return procs, nil
}

// TotalMemory sums the memory of all processes.
func TotalMemory(procs []Process) uint64 {
	var total uint64
	for _, p := range procs {
		total += p.Memory
	}

	return total
}
