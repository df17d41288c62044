package procs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	procs []Process
	err   error
}

func (f fakeProvider) Processes(context.Context) ([]Process, error) {
	return f.procs, f.err
}

func TestList_SortsByMemoryDescending(t *testing.T) {
	provider := fakeProvider{procs: []Process{
		{PID: 3, Name: "small", Memory: 10},
		{PID: 1, Name: "big", Memory: 300},
		{PID: 4, Name: "tie-b", Memory: 50},
		{PID: 2, Name: "tie-a", Memory: 50},
	}}

	procs, err := List(context.Background(), provider)
	require.NoError(t, err)

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"big", "tie-a", "tie-b", "small"}, names)
	assert.Equal(t, uint64(410), TotalMemory(procs))
}

func TestList_PropagatesProviderError(t *testing.T) {
	_, err := List(context.Background(), fakeProvider{err: errors.New("boom")})
	assert.EqualError(t, err, "boom")
}

func TestProcess_MemoryMB(t *testing.T) {
	assert.InDelta(t, 1.5, Process{Memory: 3 * 512 * 1024}.MemoryMB(), 1e-9)
}

func TestSystem_ListsCurrentProcess(t *testing.T) {
	procs, err := System{}.Processes(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, procs)
}
