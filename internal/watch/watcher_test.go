package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(_ context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, filepath.Base(path))
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestWatcherHandlesSettledFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	w, err := New(dir, rec.handle, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// Two quick writes to the same file are one submission.
	path := filepath.Join(dir, "alice.pptx")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$alice.pptx"), []byte("lock"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.pptx"), []byte("x"), 0644))

	assert.Eventually(t, func() bool { return len(rec.seen()) == 1 }, 2*time.Second, 10*time.Millisecond)
	// Give a duplicate a chance to show up.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{"alice.pptx"}, rec.seen())

	stats := w.Stats()
	assert.Equal(t, 1, stats.Handled)
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.Equal(t, path, stats.LastEventPath)
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	w, err := New(dir, rec.handle, WithDebounce(20*time.Millisecond), WithExtensions(".PPTX", ".ppsx"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "bob.ppsx"), []byte("x"), 0644)
		return len(rec.seen()) > 0
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherStartMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) {})
	require.NoError(t, err)

	assert.Error(t, w.Run(context.Background()))
}

func TestWatcherStopIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), func(context.Context, string) {})
	require.NoError(t, err)

	// Stop before Start releases the watch.
	w.Stop()
	w.Stop()
	assert.NoError(t, w.Start(context.Background()), "start after stop is a no-op")
}

func TestMatches(t *testing.T) {
	w := &Watcher{extensions: []string{".pptx"}}

	tests := []struct {
		path string
		want bool
	}{
		{"/in/a.pptx", true},
		{"/in/A.PPTX", true},
		{"/in/a.ppt", false},
		{"/in/~$a.pptx", false},
		{"/in/.a.pptx", false},
		{"/in/pptx", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.matches(tt.path), tt.path)
	}
}
