package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/fscan/internal/fscan"
)

// TopN is the number of folders and files listed by the summary.
const TopN = 5

// PrintEntries writes one line per entry: size right-aligned to 10 columns, kind and path.
func PrintEntries(entries []fscan.Entry, writer io.Writer) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(writer, "%10s [%s] - %s\n", e.SizeHuman, e.Kind, e.Path); err != nil {
			return err
		}
	}

	return nil
}

// csvQuote wraps a field in double quotes, doubling any embedded quote.
func csvQuote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// WriteCSV writes a header row followed by one row per entry. Paths are always quoted.
func WriteCSV(entries []fscan.Entry, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, "path,size_bytes,size_human,kind"); err != nil {
		return err
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(writer, "%s,%d,%s,%s\n", csvQuote(e.Path), e.SizeBytes, e.SizeHuman, e.Kind); err != nil {
			return err
		}
	}

	return nil
}

// WriteJSON writes the entries as an indented JSON array.
func WriteJSON(entries []fscan.Entry, writer io.Writer) error {
	if entries == nil {
		entries = []fscan.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		return err
	}

	return nil
}

// PrintSummary outputs file and folder counts, the combined size and the
// largest folders and files of the scan.
func PrintSummary(result *fscan.Result, writer io.Writer) error {
	var b strings.Builder

	fmt.Fprintln(&b, "\nScan Summary:")
	fmt.Fprintln(&b, "-------------")
	fmt.Fprintf(&b, "Total files: %d\n", len(result.Files))
	fmt.Fprintf(&b, "Total folders: %d\n", len(result.Dirs))
	fmt.Fprintf(&b, "Total size: %s\n", fscan.FormatSize(result.TotalSize()))

	fmt.Fprintf(&b, "\nTop %d folders:\n", TopN)

	for i, e := range result.TopDirs(TopN) {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, e.Path, e.SizeHuman)
	}

	fmt.Fprintf(&b, "\nTop %d files:\n", TopN)

	for i, e := range result.TopFiles(TopN) {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, e.Path, e.SizeHuman)
	}

	if _, err := io.WriteString(writer, b.String()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}

// WriteFile writes dir/name through render. The content goes to a temporary
// file first, so a failed render leaves any previous file untouched.
func WriteFile(dir, name string, render func(io.Writer) error) (err error) {
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()

	if err := render(tmp); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}

	//nolint:mnd // Regular file permissions
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	return nil
}
