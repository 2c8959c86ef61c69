package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/untoldecay/easyowl/internal/debug"
)

// Debouncer collapses bursts of triggers into one call of action, fired
// once no trigger has arrived for the configured delay.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	action func()
}

// NewDebouncer creates a Debouncer.
func NewDebouncer(delay time.Duration, action func()) *Debouncer {
	return &Debouncer{delay: delay, action: action}
}

// Trigger (re)starts the countdown.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.action)
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// FileWatcher calls onChanged after an ontology file is written, created
// or replaced. Editors often save by renaming a temp file over the
// original, so the parent directory is watched and events are filtered by
// name.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	path      string
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewFileWatcher creates a watcher for path.
func NewFileWatcher(path string, onChanged func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	return &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(200*time.Millisecond, onChanged),
		path:      abs,
	}, nil
}

// Start processes events in the background until ctx is cancelled or
// Close is called.
func (fw *FileWatcher) Start(ctx context.Context) {
	ctx, fw.cancel = context.WithCancel(ctx)

	fw.wg.Add(1)
	go func() {
		defer fw.wg.Done()
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != fw.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					debug.Logf("change detected: %s (%s)", event.Name, event.Op)
					fw.debouncer.Trigger()
				}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				debug.Logf("watcher error: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close stops the watcher and waits for the event loop to exit.
func (fw *FileWatcher) Close() error {
	if fw.cancel != nil {
		fw.cancel()
	}
	fw.debouncer.Cancel()
	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}
