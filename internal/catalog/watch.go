package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events (editors often write,
// rename and chmod in quick succession).
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a catalog whenever its manifest or scanned directory changes.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	root     string
	isDir    bool
	debounce time.Duration
	done     chan struct{}
	running  bool
}

// NewWatcher prepares a watcher for the catalog at root. Nothing is watched
// until Start is called.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  fw,
		root:     abs,
		isDir:    info.IsDir(),
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. onChange receives the freshly loaded catalog or the
// load error; it runs on the watcher goroutine. Start is non-blocking and a
// second call is a no-op.
func (w *Watcher) Start(ctx context.Context, onChange func(*Catalog, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.addPaths(); err != nil {
		return err
	}
	w.running = true
	go w.loop(ctx, onChange)
	return nil
}

func (w *Watcher) addPaths() error {
	if !w.isDir {
		// Watch the parent so atomic renames of the manifest are seen.
		return w.watcher.Add(filepath.Dir(w.root))
	}
	if err := w.watcher.Add(w.root); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			_ = w.watcher.Add(filepath.Join(w.root, e.Name()))
		}
	}
	return nil
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if w.isDir {
		return true
	}
	return filepath.Clean(ev.Name) == w.root
}

func (w *Watcher) loop(ctx context.Context, onChange func(*Catalog, error)) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if w.isDir && ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cat, err := Load(w.root)
			if onChange != nil {
				onChange(cat, err)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	err := w.watcher.Close()
	if running {
		<-w.done
	}
	return err
}
