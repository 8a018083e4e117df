package diagnostics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcherTriggersOnDecrease(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagnostics.json")
	writeSnapshot(t, path, `{"a.go": [{"severity": "error"}, {"severity": "error"}]}`)

	decreases := make(chan struct{}, 8)
	w, err := NewWatcher(path, func(context.Context) { decreases <- struct{}{} }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	require.Eventually(t, func() bool { return w.Errors() == 2 }, 2*time.Second, 10*time.Millisecond)

	writeSnapshot(t, path, `{"a.go": [{"severity": "error"}]}`)
	select {
	case <-decreases:
	case <-time.After(2 * time.Second):
		t.Fatal("decrease not reported")
	}

	writeSnapshot(t, path, `{"a.go": [{"severity": "error"}, {"severity": "error"}, {"severity": "error"}]}`)
	require.Eventually(t, func() bool { return w.Errors() == 3 }, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, decreases)

	// a broken snapshot is ignored and the previous total is kept
	writeSnapshot(t, path, `{"a.go": [`)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 3, w.Errors())

	writeSnapshot(t, path, `{}`)
	select {
	case <-decreases:
	case <-time.After(2 * time.Second):
		t.Fatal("decrease not reported")
	}
	assert.Equal(t, 0, w.Errors())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagnostics.json")

	decreases := make(chan struct{}, 1)
	w, err := NewWatcher(path, func(context.Context) { decreases <- struct{}{} }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeSnapshot(t, filepath.Join(dir, "other.json"), `{}`)
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, w.Errors())
	assert.Empty(t, decreases)

	cancel()
	require.NoError(t, <-done)
}

func TestNewWatcherRequiresPath(t *testing.T) {
	_, err := NewWatcher("", nil)
	assert.Error(t, err)
}
