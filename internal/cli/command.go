package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idelchi/fscan/internal/fscan"
	"github.com/idelchi/fscan/internal/procs"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Output formats accepted by the scan command.
const (
	OutputCSV     = "csv"
	OutputJSON    = "json"
	OutputSummary = "summary"
)

// AllowedOutputs lists the scan output formats.
//
//nolint:gochecknoglobals // Config constant
var AllowedOutputs = []string{OutputCSV, OutputJSON, OutputSummary}

// scanOptions holds everything the scan command needs beyond fscan.Options.
type scanOptions struct {
	fscan.Options

	Output    string
	OutputDir string
	MinSize   string
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command(os.Stdout).Execute()
}

// Command builds the root command, writing reports to out.
func (c CLI) Command(out io.Writer) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "fscan",
		Short: "Fast directory & process scanner: report large files/folders or top memory processes.",
		Long: heredoc.Doc(`
			fscan reports the sizes of files and folders beneath a directory,
			or lists running processes sorted by memory usage.

			Directory totals include every file beneath them, at any depth.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			configureLogging(debug)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	root.SetOut(out)

	root.AddCommand(
		c.aboutCommand(),
		scanCommand(),
		processCommand(),
	)

	return root
}

// configureLogging sends logs to stderr, at debug level when requested.
func configureLogging(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	if debug {
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug log level enabled")
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

func (c CLI) aboutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "About and credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), heredoc.Docf(`
				fscan
				Version: %s
				A fast, parallel directory scanner that reports only large files/folders.
				Also scans running processes by memory usage.
				License: MIT
			`, c.version))

			return err
		},
	}
}

func scanCommand() *cobra.Command {
	var options scanOptions

	cmd := &cobra.Command{
		Use:   "scan <path> <csv|json|summary> [skip-64|skip-128|skip-256|skip-512|skip-1024|skip-2048]",
		Short: "Scan a directory",
		Long: heredoc.Doc(`
			Scan a directory and report every file and folder by size, largest first.

			Positional Arguments:
			  path      Directory to scan.
			  output    csv writes output.csv, json writes output.json,
			            summary prints totals and the top 5 folders and files.
			  skip-N    Only count files larger than N megabytes.

			The report is always printed to the console as well.
		`),
		Args: cobra.RangeArgs(2, 3), //nolint:mnd // path, output, optional skip limit
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Path = args[0]
			options.Output = strings.ToLower(args[1])

			if !slices.Contains(AllowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", args[1], AllowedOutputs)
			}

			if options.Depth < 0 {
				return errors.New("depth cannot be negative")
			}

			switch {
			case len(args) == 3: //nolint:mnd // optional skip limit
				threshold, err := fscan.ParseSkipLimit(args[2])
				if err != nil {
					return err
				}

				options.Threshold = threshold
			case options.MinSize != "":
				size, err := humanize.ParseBytes(options.MinSize)
				if err != nil {
					return fmt.Errorf("invalid min-size: %w", err)
				}

				options.Threshold = fscan.NewThreshold(size)
			}

			return scan(cmd.Context(), options, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&options.ExcludeEmpty, "exclude-empty", false, "Exclude empty folders from final output")
	flags.StringVar(&options.MinSize, "min-size", "", "Only count files larger than this size (e.g., 10MB)")
	flags.BoolVar(&options.FullChain, "full-chain", false, "Add file sizes to every ancestor up to the filesystem root")
	flags.StringSliceVarP(&options.Extensions, "ext", "x", nil,
		"File suffixes to include (e.g., .go,.md). Use '!' prefix to exclude (e.g., !.log)")
	flags.StringSliceVarP(&options.Excludes, "exclude", "e", nil, "Regex patterns to exclude")
	flags.IntVarP(&options.Depth, "depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	flags.IntVarP(&options.Workers, "workers", "w", 0, "Number of aggregation workers (0=number of CPUs)")
	flags.StringVar(&options.OutputDir, "output-dir", ".", "Directory for output.csv and output.json")
	flags.SortFlags = false

	return cmd
}

func processCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "p",
		Short: "Scan running processes sorted by memory usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := procs.List(cmd.Context(), procs.System{})
			if err != nil {
				return err
			}

			return PrintProcesses(list, cmd.OutOrStdout())
		},
	}
}
