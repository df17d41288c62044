package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/idelchi/fscan/internal/fscan"
)

// Fixed names of the exported reports.
const (
	CSVFile  = "output.csv"
	JSONFile = "output.json"
)

//nolint:forbidigo // Report output to console
func scan(ctx context.Context, options scanOptions, out io.Writer) error {
	enableProgress := !log.IsLevelEnabled(log.DebugLevel) && isatty.IsTerminal(os.Stderr.Fd())

	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	if options.Threshold.Enabled {
		fmt.Fprintf(out, "Including only files/folders larger than: %s\n", options.Threshold)
	}

	result, err := fscan.Run(ctx, options.Options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if options.ExcludeEmpty {
		fmt.Fprintln(out, "Excluding empty directories from output.")
	}

	if err := PrintEntries(result.Entries, out); err != nil {
		return err
	}

	// Export failures never fail the scan: the console report above is the guaranteed record.
	if err := export(result, options, out); err != nil {
		log.Debugf("export %s skipped: %v", options.Output, err)
	}

	return nil
}

// export writes the report in the requested output format.
//
//nolint:forbidigo // Confirmation output to console
func export(result *fscan.Result, options scanOptions, out io.Writer) error {
	switch options.Output {
	case OutputCSV:
		if err := WriteFile(options.OutputDir, CSVFile, func(w io.Writer) error {
			return WriteCSV(result.Entries, w)
		}); err != nil {
			return err
		}

		fmt.Fprintf(out, "Exported to %s\n", CSVFile)
	case OutputJSON:
		if err := WriteFile(options.OutputDir, JSONFile, func(w io.Writer) error {
			return WriteJSON(result.Entries, w)
		}); err != nil {
			return err
		}

		fmt.Fprintf(out, "Exported to %s\n", JSONFile)
	case OutputSummary:
		return PrintSummary(result, out)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}

	return nil
}
