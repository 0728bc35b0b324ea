package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcherFiresAfterSettle(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "table.yaml")
	writeDoc(t, doc, "attributes: [a]\n")

	changes := make(chan string, 8)
	w, err := New(doc, func(path string) { changes <- path },
		WithDebounce(50*time.Millisecond),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	assert.True(t, w.IsWatching())
	writeDoc(t, doc, "attributes: [a, b]\n")

	select {
	case path := <-changes:
		abs, _ := filepath.Abs(doc)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reload callback")
	}

	stats := w.Snapshot()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Reloads, 1)
}

func TestWatcherCoalescesRapidSaves(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "table.yaml")
	writeDoc(t, doc, "v0")

	changes := make(chan string, 8)
	w, err := New(doc, func(path string) { changes <- path },
		WithDebounce(150*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 5; i++ {
		writeDoc(t, doc, "burst")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reload callback")
	}

	// The burst settles as one reload; no second callback follows.
	select {
	case <-changes:
		t.Fatal("burst must coalesce into a single reload")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "table.yaml")
	sibling := filepath.Join(dir, "other.yaml")
	writeDoc(t, doc, "v0")

	changes := make(chan string, 8)
	w, err := New(doc, func(path string) { changes <- path },
		WithDebounce(40*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeDoc(t, sibling, "noise")

	select {
	case path := <-changes:
		t.Fatalf("unexpected reload for %s", path)
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, 0, w.Snapshot().Events)
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "table.yaml")
	writeDoc(t, doc, "v0")

	w, err := New(doc, func(string) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
	assert.False(t, w.IsWatching())
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "ghost", "table.yaml"), func(string) {})
	require.NoError(t, err)

	err = w.Start(context.Background())
	require.Error(t, err)
	assert.False(t, w.IsWatching())
}
