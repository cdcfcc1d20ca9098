// Package watch calls back when watched files are written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lippy.watch")

// Watcher reports writes to a fixed set of files. It watches their
// directories, so files replaced by rename keep being reported.
type Watcher struct {
	files    map[string]bool
	onChange func(path string)
	delay    time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	watcher  *fsnotify.Watcher
}

// New returns a watcher calling onChange with the path of each changed file.
func New(onChange func(path string), paths ...string) *Watcher {
	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		onChange: onChange,
		delay:    100 * time.Millisecond,
		stopCh:   make(chan struct{}),
	}
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.files[filepath.Clean(p)] = true
	}
	return w
}

// SetDelay sets how long a file must stay quiet after an event before it is
// reported. Events inside the window restart it, so a burst of writes is
// reported once, after the last one.
func (w *Watcher) SetDelay(d time.Duration) {
	w.delay = d
}

// Start begins watching. Events are delivered from a separate goroutine
// until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dirs := make(map[string]bool)
	for file := range w.files {
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debugf("watching %s", dir)
	}

	w.watcher = watcher
	go w.run(ctx)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) run(ctx context.Context) {
	defer w.watcher.Close()

	done := make(chan struct{})
	fired := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		close(done)
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Clean(event.Name)
			if !w.files[name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if t, pending := timers[name]; pending {
				t.Reset(w.delay)
				continue
			}
			timers[name] = time.AfterFunc(w.delay, func() {
				select {
				case fired <- name:
				case <-done:
				}
			})

		case name := <-fired:
			delete(timers, name)
			log.Infof("%s changed", name)
			w.onChange(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err)
		}
	}
}
