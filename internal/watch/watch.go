// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package watch notifies the UI when a file a sheet was loaded from changes
// on disk. Events are debounced because editors typically fire several
// writes per save.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle time before a change is reported.
const DefaultDebounce = 300 * time.Millisecond

// Watcher tracks individual files and reports their paths on Changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	changes  chan string

	mu      sync.Mutex
	files   map[string]bool // watched file -> true
	dirRefs map[string]int  // watched dir -> file count
	pending map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		changes:  make(chan string, 16),
		files:    make(map[string]bool),
		dirRefs:  make(map[string]int),
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}

	go w.processEvents()
	go w.processPending()
	return w, nil
}

// Changes delivers the path of each file that changed on disk.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Add starts watching a file. The containing directory is watched and events
// filtered by name, so editors that save via rename are still seen.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[abs] {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirRefs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirRefs[dir]++
	w.files[abs] = true
	return nil
}

// Remove stops watching a file.
func (w *Watcher) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[abs] {
		return
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirRefs[dir]--
	if w.dirRefs[dir] <= 0 {
		delete(w.dirRefs, dir)
		w.watcher.Remove(dir)
	}
}

// Close stops the watcher and its goroutines.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents filters raw fsnotify events down to watched files.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			w.mu.Lock()
			if w.files[abs] {
				w.pending[abs] = time.Now()
			}
			w.mu.Unlock()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal; keep watching.
		}
	}
}

// processPending flushes debounced changes onto the Changes channel.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()
			var ready []string

			w.mu.Lock()
			for path, last := range w.pending {
				if now.Sub(last) >= w.debounce {
					ready = append(ready, path)
					delete(w.pending, path)
				}
			}
			w.mu.Unlock()

			for _, path := range ready {
				select {
				case w.changes <- path:
				default:
					// Consumer is behind; drop rather than block.
				}
			}
		}
	}
}
