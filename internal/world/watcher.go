package world

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long a file must stay quiet before its change is reported.
const reloadDebounce = 100 * time.Millisecond

// Watcher reports changes to scene files. The directory is watched rather
// than the file so editors that save by rename are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	trees   map[string]struct{}
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches scene files. A directory path covers every YAML file
// directly inside it. Events carries the cleaned path of a changed file.
func NewWatcher(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]struct{}, len(paths))
	trees := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range paths {
		p = filepath.Clean(p)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			trees[p] = struct{}{}
			dirs[p] = struct{}{}
			continue
		}
		files[p] = struct{}{}
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		files:   files,
		trees:   trees,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	// Each file gets a timer that restarts on every event, so a burst is
	// reported once after it goes quiet.
	timers := make(map[string]*time.Timer)
	fire := make(chan string, 16)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !w.watching(name) {
				continue
			}
			if t, ok := timers[name]; ok {
				t.Reset(reloadDebounce)
				continue
			}
			timers[name] = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- name:
				case <-w.closeCh:
				}
			})
		case name := <-fire:
			delete(timers, name)
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) watching(name string) bool {
	if _, ok := w.files[name]; ok {
		return true
	}
	_, ok := w.trees[filepath.Dir(name)]
	return ok && isSceneFile(name)
}

func isSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
