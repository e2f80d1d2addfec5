package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lecture-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type chanWatcher struct {
	ch  chan string
	err error
}

func (w *chanWatcher) Watch(context.Context, string) (<-chan string, error) {
	return w.ch, w.err
}

func TestWatchAndReload(t *testing.T) {
	engine := NewEngine(config.Default().Quiz, nil, agileDocument)
	w := &chanWatcher{ch: make(chan string)}

	docs := map[string]string{"good.md": "Kanban is a method for visualizing work on a board."}
	load := func(path string) (string, error) {
		text, ok := docs[path]
		if !ok {
			return "", errors.New("unreadable")
		}
		return text, nil
	}

	initial := engine.DocumentHash()
	var reloads [][2]string
	hook := func(_ context.Context, previous, current string) {
		reloads = append(reloads, [2]string{previous, current})
	}

	done := make(chan error, 1)
	go func() { done <- WatchAndReload(context.Background(), w, engine, "lecture.md", load, hook) }()

	w.ch <- "broken.md"
	w.ch <- "good.md"
	close(w.ch)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reloader did not stop")
	}
	assert.Equal(t, 1, engine.CorpusSize())
	require.Len(t, reloads, 1, "only the successful load runs hooks")
	assert.Equal(t, [2]string{initial, engine.DocumentHash()}, reloads[0])
}

func TestInvalidateOnReload(t *testing.T) {
	cache := new(MockCache)
	cache.On("DeleteByPrefix", mock.Anything, "lecturequiz:quiz:questions:old:").Return(int64(2), nil).Once()
	hook := InvalidateOnReload(NewQuestionCacheService(cache, time.Minute))

	hook(context.Background(), "old", "new")
	hook(context.Background(), "same", "same")
	cache.AssertExpectations(t)
}

func TestWatchAndReload_WatchFails(t *testing.T) {
	engine := NewEngine(config.Default().Quiz, nil, agileDocument)
	err := WatchAndReload(context.Background(), &chanWatcher{err: errors.New("no inotify")}, engine, "lecture.md", nil)
	assert.ErrorContains(t, err, "no inotify")
}

func TestWatchAndReload_StopsOnCancel(t *testing.T) {
	engine := NewEngine(config.Default().Quiz, nil, agileDocument)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, WatchAndReload(ctx, &chanWatcher{ch: make(chan string)}, engine, "lecture.md", nil))
}
