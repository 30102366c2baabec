package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// watchSettleDelay is how long the data file must stay quiet before a change is inspected.
	watchSettleDelay = 100 * time.Millisecond

	// recentWrites is how many of our own saves are recognized when the file settles.
	recentWrites = 4
)

// Watch reports writes to the data file made by other processes until ctx is done.
// Nothing is cached, so this is purely observational: the next Load picks the change up anyway.
func (r *FileSnapshotRepository) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(r.path)
	if err != nil {
		return fmt.Errorf("resolve store path: %w", err)
	}

	// Watch the directory: editors and other writers often replace the file.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	r.logger.Infow("Watching data file", "path", target)

	var (
		settled <-chan time.Time
		lastOp  fsnotify.Op
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			lastOp = event.Op
			settled = time.After(watchSettleDelay)
		case <-settled:
			settled = nil
			if r.isOwnWrite(target) {
				continue
			}
			r.metrics.StoreChangedExternally()
			r.logger.Infow("Data file changed by another process", "path", target, "op", lastOp.String())
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.LogStoreEvent("watch_error", target, err)
		}
	}
}

func (r *FileSnapshotRepository) rememberWrite(data []byte) {
	sum := sha256.Sum256(data)
	r.mu.Lock()
	r.recent[r.next] = sum
	r.next = (r.next + 1) % recentWrites
	r.mu.Unlock()
}

// isOwnWrite reports whether the file at path holds one of our recent saves.
func (r *FileSnapshotRepository) isOwnWrite(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(data)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, own := range r.recent {
		if sum == own {
			return true
		}
	}
	return false
}
