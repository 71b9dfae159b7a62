// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tochemey/goactor/log"
)

const defaultDebounce = 250 * time.Millisecond

// ChangeFunc is called after the watched file was reloaded.
type ChangeFunc func(old, current *Config)

// Watcher reloads a config file whenever it changes on disk. The parent
// directory is watched so that editors replacing the file are noticed.
// Invalid files are logged and ignored; the last good config stays current.
type Watcher struct {
	path      string
	logger    log.Logger
	debounce  time.Duration
	fsWatcher *fsnotify.Watcher

	mu        sync.RWMutex
	config    *Config
	callbacks []ChangeFunc

	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWatcher loads path and prepares a watcher for it.
func NewWatcher(path string, logger log.Logger) (*Watcher, error) {
	path = filepath.Clean(path)
	config, err := Load(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file system watcher: %w", err)
	}

	return &Watcher{
		path:      path,
		logger:    logger,
		debounce:  defaultDebounce,
		fsWatcher: fsWatcher,
		config:    config,
		stopCh:    make(chan struct{}),
	}, nil
}

// Config returns the current config.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// OnChange registers fn. Callbacks run on the watcher goroutine in
// registration order.
func (w *Watcher) OnChange(fn ChangeFunc) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, fn)
	w.mu.Unlock()
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop stops watching and waits for a reload in progress.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})
	return err
}

// Reload loads the file now and notifies the callbacks when it is valid.
func (w *Watcher) Reload() error {
	current, err := Load(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	old := w.config
	w.config = current
	callbacks := append([]ChangeFunc(nil), w.callbacks...)
	w.mu.Unlock()

	for _, fn := range callbacks {
		w.notify(fn, old, current)
	}
	w.logger.Infof("configuration reloaded from %s", w.path)
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.Reload(); err != nil {
				w.logger.Warnf("failed to reload config: %v", err)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) notify(fn ChangeFunc, old, current *Config) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Errorf("config change callback panicked: %v", r)
		}
	}()
	fn(old, current)
}
