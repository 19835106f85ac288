package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_StartStopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, []string{".go"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	cancel()
	w.Stop()
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, []string{".go"})
	require.NoError(t, err)

	changed := make(chan string, 8)
	w.OnChange = func(path string) { changed <- path }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	file := filepath.Join(dir, "f.go")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("package p\n"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case path := <-changed:
		require.Equal(t, file, path)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a debounced change notification")
	}
}
