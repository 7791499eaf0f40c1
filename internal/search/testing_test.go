package search

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// instrumentedFs wraps an afero.Fs, counting opens and failing reads of
// denied paths with a permission error.
type instrumentedFs struct {
	afero.Fs

	mu     sync.Mutex
	opens  int
	stats  int
	denied map[string]bool
}

func newInstrumentedFs(base afero.Fs, denied ...string) *instrumentedFs {
	fs := &instrumentedFs{Fs: base, denied: make(map[string]bool)}
	for _, p := range denied {
		fs.denied[filepath.Clean(p)] = true
	}
	return fs
}

func (f *instrumentedFs) Open(name string) (afero.File, error) {
	f.mu.Lock()
	f.opens++
	denied := f.denied[filepath.Clean(name)]
	f.mu.Unlock()
	if denied {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func (f *instrumentedFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f.mu.Lock()
	f.opens++
	denied := f.denied[filepath.Clean(name)]
	f.mu.Unlock()
	if denied {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *instrumentedFs) Stat(name string) (os.FileInfo, error) {
	f.mu.Lock()
	f.stats++
	f.mu.Unlock()
	return f.Fs.Stat(name)
}

func (f *instrumentedFs) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

func (f *instrumentedFs) statCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// newMemTree creates an in-memory filesystem populated with files.
func newMemTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

// writeTree creates files on disk under a temp dir and returns its path.
func writeTree(t *testing.T, files map[string][]byte) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}
	return root
}

func collect(t *testing.T, fsys afero.Fs, root string, opts WalkOptions) []string {
	t.Helper()

	seq, err := Walk(fsys, root, opts)
	require.NoError(t, err)

	var paths []string
	for p := range seq {
		paths = append(paths, p)
	}
	return paths
}
