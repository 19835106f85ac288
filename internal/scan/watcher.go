package scan

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/QuentinArnault/periphery/internal/logging"
)

// Watcher watches a set of root directories for source file changes
// and debounces them into batched re-scan triggers. Grounded on the
// teacher's internal/core.MangleWatcher: an fsnotify.Watcher plus a
// debounce map drained by a ticker, generalized here from watching
// *.mg policy files to watching the configured scan roots and
// extensions.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	roots       []string
	extensions  []string
	debounce    map[string]time.Time
	debounceDur time.Duration

	// OnChange is invoked once per settled path after its debounce
	// window elapses. It is the caller's hook for triggering a re-scan
	// after that file changed.
	OnChange func(path string)

	stopCh chan struct{}
	doneCh chan struct{}
	log    *logging.Logger
}

// NewWatcher creates a Watcher over roots, restricted to files whose
// suffix is in extensions (defaulting to []string{".go"}).
func NewWatcher(roots []string, extensions []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = []string{".go"}
	}
	return &Watcher{
		watcher:     fw,
		roots:       roots,
		extensions:  extensions,
		debounce:    make(map[string]time.Time),
		debounceDur: 300 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		log:         logging.Get(logging.CategoryScan),
	}, nil
}

// Start adds every root to the underlying fsnotify watch list and
// begins the debounced event loop in a goroutine. Non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.roots {
		if err := w.watcher.Add(root); err != nil {
			w.log.Warn("watch failed for root %s: %v", root, err)
			continue
		}
		w.log.Debug("watching %s", root)
	}

	go w.run(ctx)
	return nil
}

// Stop terminates the event loop and closes the underlying watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.log.Error("error closing watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

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
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error: %v", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !hasAnyExt(event.Name, w.extensions) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.mu.Lock()
	w.debounce[event.Name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, t := range w.debounce {
		if now.Sub(t) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounce, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		if w.OnChange != nil {
			w.OnChange(path)
		}
	}
}
