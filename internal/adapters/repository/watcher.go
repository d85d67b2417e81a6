package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher calls a callback when any of a set of files changes.
type Watcher struct {
	files    map[string]struct{}
	onChange func(ctx context.Context)
	onError  func(error)
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher watches paths. onError may be nil.
func NewWatcher(paths []string, onChange func(ctx context.Context), onError func(error), opts ...WatchOption) *Watcher {
	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		onChange: onChange,
		onError:  onError,
		debounce: defaultDebounce,
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.files[filepath.Clean(p)] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. Directories are watched rather than files, because
// atomic writers replace the file and a file watch would be lost on rename.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			_ = fw.Close()
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}

	done := make(chan struct{})
	w.mu.Lock()
	w.watcher = fw
	w.done = done
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(ctx, fw, done)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			w.schedule(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.onChange(ctx)
	})
}

// Stop ends watching and cancels a pending callback.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	fw := w.watcher
	w.watcher = nil
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.done != nil {
		close(w.done)
		w.done = nil
	}
	w.mu.Unlock()

	if fw == nil {
		return nil
	}
	err := fw.Close()
	w.wg.Wait()
	return err
}
