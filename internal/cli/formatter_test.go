package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/fscan/internal/fscan"
)

func sampleEntries() []fscan.Entry {
	return []fscan.Entry{
		fscan.NewEntry("root", 300, fscan.KindDirectory),
		fscan.NewEntry("root/sub/b.txt", 200, fscan.KindFile),
		fscan.NewEntry(`root/say "hi",.txt`, 1536, fscan.KindFile),
	}
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintEntries(sampleEntries()[:2], &buf))

	assert.Equal(t, "  300.00 B [Directory] - root\n  200.00 B [File] - root/sub/b.txt\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(sampleEntries(), &buf))

	assert.Equal(t, `path,size_bytes,size_human,kind
"root",300,300.00 B,Directory
"root/sub/b.txt",200,200.00 B,File
"root/say ""hi"",.txt",1536,1.50 KB,File
`, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(sampleEntries()[:1], &buf))

	assert.Equal(t, `[
  {
    "path": "root",
    "size_bytes": 300,
    "size_human": "300.00 B",
    "kind": "Directory"
  }
]`, buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(nil, &buf))
	assert.Equal(t, "[]", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(sampleEntries(), &buf))

	var decoded []fscan.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleEntries(), decoded)
}

func TestPrintSummary(t *testing.T) {
	result := &fscan.Result{
		Files: map[string]uint64{"root/a.txt": 100, "root/sub/b.txt": 200},
		Dirs:  map[string]uint64{"root": 300, "root/sub": 200, "root/sub/empty": 0},
	}

	var buf bytes.Buffer

	require.NoError(t, PrintSummary(result, &buf))

	assert.Equal(t, `
Scan Summary:
-------------
Total files: 2
Total folders: 3
Total size: 800.00 B

Top 5 folders:
1. root (300.00 B)
2. root/sub (200.00 B)
3. root/sub/empty (0.00 B)

Top 5 files:
1. root/sub/b.txt (200.00 B)
2. root/a.txt (100.00 B)
`, buf.String())
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrintSummary_WriteError(t *testing.T) {
	result := &fscan.Result{Files: map[string]uint64{"a": 1}, Dirs: map[string]uint64{".": 1}}

	assert.ErrorContains(t, PrintSummary(result, failingWriter{}), "disk full")
	assert.ErrorContains(t, PrintEntries(result.Merge(), failingWriter{}), "disk full")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteFile(dir, "out.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "first")

		return err
	}))

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	err = WriteFile(dir, "out.txt", func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")

		return errors.New("render failed")
	})
	require.ErrorContains(t, err, "render failed")

	data, err = os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	leftovers, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, leftovers, 1)

	assert.Error(t, WriteFile(filepath.Join(dir, "missing"), "out.txt", func(io.Writer) error { return nil }))
}
