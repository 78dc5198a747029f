package walkgrid

import (
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a grid file must go without events before it is
// reloaded. Editors often write a file in several chunks.
const settleDelay = 150 * time.Millisecond

// maxWatchErrors caps the errors kept between two Apply calls.
const maxWatchErrors = 8

// pendingGrids tracks edited grid files until they stop changing.
type pendingGrids struct {
	delay time.Duration
	last  map[string]time.Time
}

func newPendingGrids(delay time.Duration) *pendingGrids {
	return &pendingGrids{delay: delay, last: make(map[string]time.Time)}
}

// note records an edit of path. Anything but a grid file is ignored.
func (p *pendingGrids) note(path string, at time.Time) {
	if !isGridFile(path) {
		return
	}
	p.last[path] = at
}

// settled removes and returns, sorted, the files quiet since at-delay.
func (p *pendingGrids) settled(at time.Time) []string {
	var out []string
	for path, t := range p.last {
		if at.Sub(t) >= p.delay {
			out = append(out, path)
			delete(p.last, path)
		}
	}
	sort.Strings(out)
	return out
}

// Watcher reloads grid files edited on disk while the sandbox runs. Events
// are collected on a background goroutine; Apply hands the settled files to
// a Library on the caller's goroutine.
type Watcher struct {
	fs      *fsnotify.Watcher
	pending *pendingGrids
	done    chan struct{}
	once    sync.Once

	mu    sync.Mutex
	ready []string
	errs  []error
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		pending: newPendingGrids(settleDelay),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

// Apply reloads every settled grid file into lib and returns the ids of
// the grids that changed. Files that fail to parse keep their old grid and
// are reported with the watcher's own errors.
func (w *Watcher) Apply(lib *Library) ([]int, []error) {
	w.mu.Lock()
	paths, errs := w.ready, w.errs
	w.ready, w.errs = nil, nil
	w.mu.Unlock()

	var ids []int
	for _, path := range paths {
		id, err := lib.Reload(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, errs
}

func (w *Watcher) run() {
	tick := time.NewTicker(settleDelay / 3)
	defer tick.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// removed or renamed grids stay loaded until replaced
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.pending.note(ev.Name, time.Now())
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			if len(w.errs) < maxWatchErrors {
				w.errs = append(w.errs, err)
			}
			w.mu.Unlock()
		case now := <-tick.C:
			if paths := w.pending.settled(now); len(paths) > 0 {
				w.mu.Lock()
				w.ready = append(w.ready, paths...)
				w.mu.Unlock()
			}
		case <-w.done:
			return
		}
	}
}
