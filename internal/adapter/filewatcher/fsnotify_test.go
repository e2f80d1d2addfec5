package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSNotifyWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	lecture := filepath.Join(dir, "lecture.md")
	require.NoError(t, os.WriteFile(lecture, []byte("Agile is iterative."), 0o600))

	w, err := NewFSNotifyWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := w.Watch(ctx, lecture)
	require.NoError(t, err)

	// Other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(lecture, []byte("Scrum is a framework."), 0o600))

	select {
	case path := <-changes:
		want, _ := filepath.Abs(lecture)
		assert.Equal(t, want, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFSNotifyWatcher_MissingDirectory(t *testing.T) {
	w, err := NewFSNotifyWatcher(0)
	require.NoError(t, err)
	defer w.Stop()

	_, err = w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "lecture.md"))
	assert.Error(t, err)
}
