package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatch(t *testing.T, root string, opts Options) <-chan []string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	runs := make(chan []string, 8)
	ready := make(chan struct{})
	done := make(chan error, 1)
	opts.Ready = func() { close(ready) }
	if opts.Debounce == 0 {
		opts.Debounce = 30 * time.Millisecond
	}
	go func() {
		done <- Watch(ctx, root, opts, func(_ context.Context, changed []string) error {
			runs <- changed
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watch did not stop after cancel")
		}
	})
	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("watch exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch never became ready")
	}
	return runs
}

func waitRun(t *testing.T, runs <-chan []string) []string {
	t.Helper()
	select {
	case changed := <-runs:
		return changed
	case <-time.After(3 * time.Second):
		t.Fatal("no rerun after change")
		return nil
	}
}

func TestWatchRerunsOnRustWrite(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))
	runs := startWatch(t, root, Options{})

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
	target := filepath.Join(sub, "lib.rs")
	require.NoError(t, os.WriteFile(target, []byte("fn f() {}\n"), 0o600))

	changed := waitRun(t, runs)
	assert.Equal(t, []string{target}, changed)
}

func TestWatchBatchesBurst(t *testing.T) {
	root := t.TempDir()
	runs := startWatch(t, root, Options{Debounce: 200 * time.Millisecond})

	a := filepath.Join(root, "a.rs")
	b := filepath.Join(root, "b.rs")
	require.NoError(t, os.WriteFile(b, []byte("fn b() {}\n"), 0o600))
	require.NoError(t, os.WriteFile(a, []byte("fn a() {}\n"), 0o600))
	require.NoError(t, os.WriteFile(a, []byte("fn a() { }\n"), 0o600))

	assert.Equal(t, []string{a, b}, waitRun(t, runs))
}

func TestWatchSkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "target"), 0o755))
	runs := startWatch(t, root, Options{Exclude: []string{"target"}})

	require.NoError(t, os.WriteFile(filepath.Join(root, "target", "gen.rs"), []byte("fn g() {}\n"), 0o600))
	kept := filepath.Join(root, "main.rs")
	require.NoError(t, os.WriteFile(kept, []byte("fn main() {}\n"), 0o600))

	assert.Equal(t, []string{kept}, waitRun(t, runs))
}

func TestWatchMissingRoot(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{}, func(context.Context, []string) error { return nil })
	require.Error(t, err)
}
