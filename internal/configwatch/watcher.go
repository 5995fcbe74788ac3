// Package configwatch watches a directory of TOML configuration files
// and re-parses+validates them on change, adapted from
// internal/watch.FileWatcher/Debouncer in this corpus's Conduit
// compiler (which watches Conduit source/asset directories for its dev
// server) to watch `*.toml` files instead.
package configwatch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors each of its directories (not their subdirectories)
// for changes to `.toml` files and invokes onChange, debounced, with the
// set of paths that changed.
type Watcher struct {
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	dirs      []string
	onChange  func([]string)
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// New creates a Watcher rooted at each of dirs, invoking onChange after
// a 100ms debounce window once one or more `.toml` files settle.
func New(dirs []string, logger *zap.Logger, onChange func([]string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("configwatch: create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		dirs:     dirs,
		onChange: onChange,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
	w.debouncer = newDebouncer(100*time.Millisecond, onChange)
	return w, nil
}

// Start begins watching. It returns once every directory has been
// registered; events are then delivered on a background goroutine until
// Stop is called.
func (w *Watcher) Start() error {
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("configwatch: watch %s: %w", dir, err)
		}
		w.logger.Info("watching directory", zap.String("dir", dir))
	}
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop shuts the watcher down, idempotently.
func (w *Watcher) Stop() error {
	select {
	case <-w.stopChan:
		return nil
	default:
		close(w.stopChan)
	}
	w.wg.Wait()
	w.debouncer.stop()
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".toml") {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Debug("config file changed", zap.String("path", event.Name))
				w.debouncer.add(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-w.stopChan:
			return
		}
	}
}

type debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mu       sync.Mutex
	callback func([]string)
	stopped  bool
}

func newDebouncer(d time.Duration, callback func([]string)) *debouncer {
	return &debouncer{duration: d, files: make(map[string]struct{}), callback: callback}
}

func (d *debouncer) add(file string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.files[file] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	if len(d.files) == 0 {
		d.mu.Unlock()
		return
	}
	files := make([]string, 0, len(d.files))
	for f := range d.files {
		files = append(files, f)
	}
	d.files = make(map[string]struct{})
	d.mu.Unlock()
	d.callback(files)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
