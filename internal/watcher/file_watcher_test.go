package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileWatcher:
// - NewFileWatcher fails for a missing root
// - A write fires the callback after the debounce period
// - Rapid writes to several files arrive as one deduplicated batch
// - Created and removed files are reported
// - Directories created after Start are watched when recursive
// - Non-recursive watchers ignore changes in subdirectories
// - Extension and Filter options drop unwanted events
// - Stop is idempotent, safe before Start, and honors context cancellation

const testDebounce = 100 * time.Millisecond

func startWatcher(t *testing.T, root string, opts Options) <-chan []string {
	t.Helper()
	if opts.Debounce == 0 {
		opts.Debounce = testDebounce
	}

	w, err := NewFileWatcher(root, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	batches := make(chan []string, 16)
	require.NoError(t, w.Start(context.Background(), func(files []string) {
		batches <- files
	}))
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case files := <-batches:
		return files
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func expectNoBatch(t *testing.T, batches <-chan []string) {
	t.Helper()
	select {
	case files := <-batches:
		t.Fatalf("unexpected change batch: %v", files)
	case <-time.After(4 * testDebounce):
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewFileWatcher_MissingRoot(t *testing.T) {
	t.Parallel()

	w, err := NewFileWatcher(filepath.Join(t.TempDir(), "missing"), Options{Recursive: true})
	assert.Error(t, err)
	assert.Nil(t, w)
}

func TestFileWatcher_WriteFiresCallback(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")
	writeFile(t, path, "one")

	batches := startWatcher(t, root, Options{Recursive: true})
	writeFile(t, path, "two")

	assert.Contains(t, waitBatch(t, batches), path)
}

func TestFileWatcher_BatchesAndDeduplicates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "a.txt")
	b := filepath.Join(root, "b.txt")

	batches := startWatcher(t, root, Options{Recursive: true})
	for i := 0; i < 5; i++ {
		writeFile(t, a, strings.Repeat("x", i+1))
		writeFile(t, b, strings.Repeat("y", i+1))
	}

	files := waitBatch(t, batches)
	assert.ElementsMatch(t, []string{a, b}, files)
}

func TestFileWatcher_CreateAndRemove(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "new.md")

	batches := startWatcher(t, root, Options{Recursive: true})

	writeFile(t, path, "hello")
	assert.Contains(t, waitBatch(t, batches), path)

	require.NoError(t, os.Remove(path))
	assert.Contains(t, waitBatch(t, batches), path)
}

func TestFileWatcher_NewDirectoryIsWatched(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches := startWatcher(t, root, Options{Recursive: true})

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the event loop a moment to register the new directory.
	time.Sleep(testDebounce)

	path := filepath.Join(sub, "inner.txt")
	writeFile(t, path, "content")

	assert.Contains(t, waitBatch(t, batches), path)
}

func TestFileWatcher_NonRecursiveIgnoresSubdirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	batches := startWatcher(t, root, Options{})
	writeFile(t, filepath.Join(sub, "inner.txt"), "content")

	expectNoBatch(t, batches)
}

func TestFileWatcher_ExtensionFilter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches := startWatcher(t, root, Options{Recursive: true, Extensions: []string{".py"}})

	writeFile(t, filepath.Join(root, "skip.txt"), "x")
	keep := filepath.Join(root, "keep.py")
	writeFile(t, keep, "x")

	assert.Equal(t, []string{keep}, waitBatch(t, batches))
}

func TestFileWatcher_FilterFunc(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	hidden := filepath.Join(root, "hidden")
	require.NoError(t, os.Mkdir(hidden, 0o755))

	filter := func(path string) bool {
		return !strings.HasPrefix(path, hidden)
	}
	batches := startWatcher(t, root, Options{Recursive: true, Filter: filter})

	writeFile(t, filepath.Join(hidden, "secret.txt"), "x")
	visible := filepath.Join(root, "visible.txt")
	writeFile(t, visible, "x")

	assert.Equal(t, []string{visible}, waitBatch(t, batches))
}

func TestFileWatcher_Stop(t *testing.T) {
	t.Parallel()

	t.Run("before start", func(t *testing.T) {
		w, err := NewFileWatcher(t.TempDir(), Options{})
		require.NoError(t, err)
		require.NoError(t, w.Stop())
		require.NoError(t, w.Stop())
	})

	t.Run("concurrent", func(t *testing.T) {
		w, err := NewFileWatcher(t.TempDir(), Options{})
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background(), func([]string) {}))

		done := make(chan struct{})
		for i := 0; i < 5; i++ {
			go func() {
				_ = w.Stop()
				done <- struct{}{}
			}()
		}
		for i := 0; i < 5; i++ {
			<-done
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		root := t.TempDir()
		w, err := NewFileWatcher(root, Options{Debounce: testDebounce})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		batches := make(chan []string, 4)
		require.NoError(t, w.Start(ctx, func(files []string) { batches <- files }))

		cancel()
		require.NoError(t, w.Stop())

		writeFile(t, filepath.Join(root, "late.txt"), "x")
		expectNoBatch(t, batches)
	})
}
