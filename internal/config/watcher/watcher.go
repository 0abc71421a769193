// Package watcher provides file watching for configuration live reload.
//
// The watcher subscribes to the directories holding the watched files
// through fsnotify, so editors that save by writing a temporary file and
// renaming it over the original are still observed. Bursts of events for
// one file are coalesced and delivered once the file has been quiet for
// the debounce period.
package watcher

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// ErrorHandler is called when the underlying notifier reports an error.
type ErrorHandler func(err error)

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.RWMutex

	// Watched files (absolute paths)
	files map[string]struct{}

	handlers      []Handler
	errorHandlers []ErrorHandler

	fsw     *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	running bool

	// Debounce settings
	debounce  time.Duration
	pendingMu sync.Mutex
	pending   map[string]*pendingEvent
	stopped   bool
}

// pendingEvent stores a pending event with its operation for debouncing.
type pendingEvent struct {
	Op    Operation
	Time  time.Time
	timer *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
// Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a new file watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		files:    make(map[string]struct{}),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]*pendingEvent),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Watch adds a file to the watch list. The file need not exist yet; its
// creation is reported as OpCreate. The containing directory must exist
// by the time the watcher starts.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[absPath]; ok {
		return nil
	}
	if w.running {
		if err := w.addDirLocked(filepath.Dir(absPath)); err != nil {
			return err
		}
	}
	w.files[absPath] = struct{}{}
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[absPath]; !ok {
		return nil
	}
	delete(w.files, absPath)

	dir := filepath.Dir(absPath)
	if w.running && !w.dirInUseLocked(dir) {
		_ = w.fsw.Remove(dir)
	}
	return nil
}

// WatchDir adds all files in a directory matching a pattern.
func (w *Watcher) WatchDir(dir string, pattern string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	matches, err := filepath.Glob(filepath.Join(absDir, pattern))
	if err != nil {
		return err
	}

	for _, path := range matches {
		if err := w.Watch(path); err != nil {
			return err
		}
	}

	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// OnError registers a handler for notifier errors.
func (w *Watcher) OnError(handler ErrorHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errorHandlers = append(w.errorHandlers, handler)
}

// Start begins watching files for changes. Starting a running watcher is
// a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	for path := range w.files {
		if err := w.addDirLocked(filepath.Dir(path)); err != nil {
			_ = fsw.Close()
			w.fsw = nil
			return err
		}
	}

	w.pendingMu.Lock()
	w.stopped = false
	w.pendingMu.Unlock()

	w.done = make(chan struct{})
	w.running = true

	w.wg.Add(1)
	go w.eventLoop(fsw, w.done)

	return nil
}

// Stop stops watching files and drops undelivered events.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.done)
	fsw := w.fsw
	w.fsw = nil
	w.mu.Unlock()

	w.wg.Wait()
	_ = fsw.Close()

	w.pendingMu.Lock()
	w.stopped = true
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.pendingMu.Unlock()
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchedFiles returns the watched files, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

func (w *Watcher) addDirLocked(dir string) error {
	for _, watched := range w.fsw.WatchList() {
		if watched == dir {
			return nil
		}
	}
	return w.fsw.Add(dir)
}

func (w *Watcher) dirInUseLocked(dir string) bool {
	for path := range w.files {
		if filepath.Dir(path) == dir {
			return true
		}
	}
	return false
}

// eventLoop handles incoming fsnotify events.
func (w *Watcher) eventLoop(fsw *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()

	for {
		select {
		case <-done:
			return

		case fsEvent, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.emitError(err)
		}
	}
}

// handleFSEvent filters an fsnotify event down to watched files.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op, ok := convertOp(fsEvent.Op)
	if !ok {
		return
	}

	path := filepath.Clean(fsEvent.Name)
	w.mu.RLock()
	_, watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return
	}

	event := Event{Path: path, Op: op, Time: time.Now()}
	if w.debounce > 0 {
		w.queueEvent(event)
	} else {
		w.emitEvent(event)
	}
}

// convertOp maps an fsnotify operation, most significant first.
// Chmod-only events are ignored.
func convertOp(fsOp fsnotify.Op) (Operation, bool) {
	switch {
	case fsOp.Has(fsnotify.Remove):
		return OpRemove, true
	case fsOp.Has(fsnotify.Rename):
		return OpRename, true
	case fsOp.Has(fsnotify.Create):
		return OpCreate, true
	case fsOp.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// queueEvent queues an event for debounced delivery.
// It coalesces events:
// - create + write => create
// - write + write => write (latest time)
// - any + remove => remove
func (w *Watcher) queueEvent(event Event) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.stopped {
		return
	}

	existing, exists := w.pending[event.Path]
	if !exists {
		p := &pendingEvent{Op: event.Op, Time: event.Time}
		path := event.Path
		p.timer = time.AfterFunc(w.debounce, func() { w.flush(path) })
		w.pending[path] = p
		return
	}

	switch event.Op {
	case OpRemove, OpCreate, OpRename:
		existing.Op = event.Op
	case OpWrite:
		// Write doesn't override create or remove
	}
	existing.Time = event.Time
	existing.timer.Reset(w.debounce)
}

// flush delivers a pending event once its debounce period has elapsed.
func (w *Watcher) flush(path string) {
	w.pendingMu.Lock()
	p, ok := w.pending[path]
	if !ok || w.stopped {
		w.pendingMu.Unlock()
		return
	}
	delete(w.pending, path)
	w.pendingMu.Unlock()

	w.emitEvent(Event{Path: path, Op: p.Op, Time: p.Time})
}

// emitEvent calls all handlers with the event.
// Handlers are called with panic recovery to prevent a panicking handler
// from crashing the watcher goroutine.
func (w *Watcher) emitEvent(event Event) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		safeCall(func() { handler(event) })
	}
}

func (w *Watcher) emitError(err error) {
	w.mu.RLock()
	handlers := make([]ErrorHandler, len(w.errorHandlers))
	copy(handlers, w.errorHandlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		safeCall(func() { handler(err) })
	}
}

func safeCall(fn func()) {
	defer func() {
		// Recover from panics to keep the watcher running
		_ = recover()
	}()
	fn()
}
