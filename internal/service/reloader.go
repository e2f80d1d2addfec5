package service

import (
	"context"
	"fmt"

	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

// ChangeWatcher reports each time a file changes.
type ChangeWatcher interface {
	Watch(ctx context.Context, file string) (<-chan string, error)
}

// DocumentLoader returns the plain text of the document at path.
type DocumentLoader func(path string) (string, error)

// Reloadable is an engine whose document can be swapped while it serves.
type Reloadable interface {
	Reload(text string)
	DocumentHash() string
	CorpusSize() int
}

// ReloadHook runs after a successful reload.
type ReloadHook func(ctx context.Context, previousHash, currentHash string)

// InvalidateOnReload drops the cached question sets of the replaced document.
func InvalidateOnReload(questionCache QuestionCacheService) ReloadHook {
	return func(ctx context.Context, previousHash, currentHash string) {
		if previousHash == currentHash {
			return
		}
		if _, err := questionCache.Invalidate(ctx, previousHash); err != nil {
			logger.Get().Warn("Failed to invalidate cached question sets", zap.Error(err))
		}
	}
}

// WatchAndReload rebuilds engine from path every time w reports a change.
// A document that fails to load keeps the previous one in service. It
// returns when ctx is done or the watcher stops.
func WatchAndReload(ctx context.Context, w ChangeWatcher, engine Reloadable, path string, load DocumentLoader, hooks ...ReloadHook) error {
	changes, err := w.Watch(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to watch lecture file: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-changes:
			if !ok {
				return nil
			}
			text, err := load(changed)
			if err != nil {
				logger.Get().Warn("Failed to reload lecture file, keeping previous version",
					zap.String("file", changed), zap.Error(err))
				continue
			}
			previous := engine.DocumentHash()
			engine.Reload(text)
			current := engine.DocumentHash()
			logger.Get().Info("Lecture file reloaded",
				zap.String("file", changed),
				zap.String("document_hash", current),
				zap.Int("sentences", engine.CorpusSize()),
			)
			for _, hook := range hooks {
				hook(ctx, previous, current)
			}
		}
	}
}
