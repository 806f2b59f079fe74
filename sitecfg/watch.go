package sitecfg

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce swallows the duplicate events editors emit for one save.
const debounce = 100 * time.Millisecond

// Watcher reports changed files under the watched directories, filtered and
// debounced, so the editor can reload them without a restart.
type Watcher struct {
	fsw    *fsnotify.Watcher
	accept func(path string) bool
	seen   map[string]time.Time

	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// ReloadFile accepts the file kinds the editor hot-reloads: YAML site
// configs and Tengo layout scripts.
func ReloadFile(path string) bool {
	return isConfigFile(path) || isScriptFile(path)
}

// NewWatcher watches dirs and reports files the accept filter passes. A nil
// filter means ReloadFile.
func NewWatcher(accept func(path string) bool, dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	if accept == nil {
		accept = ReloadFile
	}
	w := &Watcher{
		fsw:     fsw,
		accept:  accept,
		seen:    make(map[string]time.Time),
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event, time.Now()) {
				w.Events <- event.Name
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

// relevant decides whether one fsnotify event should reach the editor:
// content-changing op, accepted path, outside the debounce window. Only the
// run goroutine calls it.
func (w *Watcher) relevant(event fsnotify.Event, now time.Time) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if !w.accept(event.Name) {
		return false
	}
	if t, ok := w.seen[event.Name]; ok && now.Sub(t) < debounce {
		return false
	}
	w.seen[event.Name] = now
	return true
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
