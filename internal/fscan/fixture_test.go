package fscan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files of the given sizes beneath root. Keys ending in
// a slash create empty directories.
func writeTree(t *testing.T, root string, tree map[string]int) {
	t.Helper()

	for name, size := range tree {
		path := filepath.Join(root, filepath.FromSlash(name))

		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))

			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	}
}

// scenarioTree is root/a.txt (100), root/sub/b.txt (200) and the empty root/sub/empty.
func scenarioTree(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "root")
	writeTree(t, root, map[string]int{
		"a.txt":      100,
		"sub/b.txt":  200,
		"sub/empty/": 0,
	})

	return root
}
