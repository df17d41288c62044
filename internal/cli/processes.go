package cli

import (
	"fmt"
	"io"

	"github.com/idelchi/fscan/internal/procs"
)

// PrintProcesses outputs processes in a boxed table followed by a summary line.
//
//nolint:forbidigo // This function prints output to the console.
func PrintProcesses(list []procs.Process, writer io.Writer) error {
	fmt.Fprintln(writer, "\nRunning Processes by Memory Usage")
	fmt.Fprintln(writer, "┌───────┬────────────────────────────────────────────┬─────────────┐")
	fmt.Fprintf(writer, "│ %-5s │ %-42s │ %11s │\n", "PID", "Process Name", "Memory MB")
	fmt.Fprintln(writer, "├───────┼────────────────────────────────────────────┼─────────────┤")

	for _, p := range list {
		fmt.Fprintf(writer, "│ %-5d │ %-42s │ %11.2f │\n", p.PID, p.Name, p.MemoryMB())
	}

	fmt.Fprintln(writer, "└───────┴────────────────────────────────────────────┴─────────────┘")

	total := procs.Process{Memory: procs.TotalMemory(list)}

	_, err := fmt.Fprintf(writer, "\nSummary → Total Processes: %d, Total Memory Used: %.2f MB\n",
		len(list), total.MemoryMB())

	return err
}
