// Package watch reloads the item collection when its file changes on
// disk and hands fresh copies to the UI off the render thread.
package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/listview/pkg/loader"
	"github.com/vanderheijden86/listview/pkg/model"
)

// WorkerState represents the current state of the reload worker.
type WorkerState int

const (
	// WorkerIdle means the worker is waiting for file changes.
	WorkerIdle WorkerState = iota
	// WorkerProcessing means the worker is reloading the collection.
	WorkerProcessing
	// WorkerStopped means the worker has been stopped.
	WorkerStopped
)

// WorkerError wraps errors with phase and retry context.
type WorkerError struct {
	Phase   string    // "load", "validate"
	Cause   error     // The underlying error
	Time    time.Time // When the error occurred
	Retries int       // Number of retry attempts
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v (retries: %d)", e.Phase, e.Cause, e.Retries)
}

func (e WorkerError) Unwrap() error {
	return e.Cause
}

// Notifier receives reload messages. *tea.Program satisfies it.
type Notifier interface {
	Send(msg tea.Msg)
}

// ItemsReloadedMsg is sent when the collection has changed on disk.
type ItemsReloadedMsg struct {
	Items []model.Item
	Hash  string
}

// ReloadErrorMsg is sent when reloading fails.
type ReloadErrorMsg struct {
	Err         error
	Recoverable bool // True if we expect to recover on next file change
}

// Worker owns the file watcher, debounces change bursts, and reloads
// the collection off the UI thread.
type Worker struct {
	// Configuration
	path          string
	debounceDelay time.Duration

	// State
	mu       sync.RWMutex
	state    WorkerState
	dirty    bool // True if a change came in while processing
	started  bool // True if Start() has been called
	lastHash string

	// Error tracking
	lastError  *WorkerError // Most recent error (nil if last operation succeeded)
	errorCount int          // Consecutive error count

	// Components
	fsWatcher *fsnotify.Watcher
	notifier  Notifier

	// Debounce bookkeeping, touched only by the watch goroutine
	lastEvent time.Time

	// Lifecycle
	stop chan struct{}
	done chan struct{}
}

// Config configures the Worker.
type Config struct {
	// Path is the collection file to watch. Saves go through a temp
	// file and rename, so the worker watches the parent directory and
	// filters events by name.
	Path          string
	DebounceDelay time.Duration
	Notifier      Notifier
}

// NewWorker creates a reload worker for the given collection file.
func NewWorker(cfg Config) (*Worker, error) {
	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}

	w := &Worker{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		notifier:      cfg.Notifier,
		state:         WorkerIdle,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}

	if cfg.Path != "" {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("create fsnotify watcher: %w", err)
		}
		if err := fw.Add(filepath.Dir(cfg.Path)); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", filepath.Dir(cfg.Path), err)
		}
		w.fsWatcher = fw
	}

	return w, nil
}

// Start begins watching for file changes and reloading in the background.
// Start is idempotent - calling it multiple times has no effect.
func (w *Worker) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil // Already started
	}
	w.started = true
	w.mu.Unlock()

	if w.fsWatcher != nil {
		go w.watchLoop()
	} else {
		// No watcher - close done channel immediately so Stop() doesn't block
		close(w.done)
	}

	return nil
}

// Stop halts the worker and cleans up resources.
// Stop is idempotent - calling it multiple times has no effect.
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	w.state = WorkerStopped
	wasStarted := w.started
	w.mu.Unlock()

	close(w.stop)

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	// Only wait for done if Start() was called
	if wasStarted {
		select {
		case <-w.done:
		case <-time.After(2 * time.Second):
			// Timeout waiting for graceful shutdown
		}
	}
}

// TriggerRefresh manually triggers a reload.
// Coalesces into the running reload if one is in flight.
func (w *Worker) TriggerRefresh() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if w.state == WorkerProcessing {
		w.dirty = true
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	go w.process()
}

// State returns the current worker state.
func (w *Worker) State() WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// LastError returns the most recent error (nil if last operation succeeded).
func (w *Worker) LastError() *WorkerError {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

// LastHash returns the content hash from the last successful reload.
func (w *Worker) LastHash() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastHash
}

// ResetHash clears the stored content hash, forcing the next reload to
// go through even if content is unchanged.
func (w *Worker) ResetHash() {
	w.mu.Lock()
	w.lastHash = ""
	w.mu.Unlock()
}

// watchLoop processes file system events and triggers reloads.
func (w *Worker) watchLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// Only react to write/create events (not chmod, etc)
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// The watch covers the whole directory; skip siblings.
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}

			// Debounce rapid changes
			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounceDelay {
				continue
			}
			w.lastEvent = now

			w.process()

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Errors are logged but don't stop the watcher
		}
	}
}

// process reloads the collection from disk.
func (w *Worker) process() {
	w.mu.Lock()
	if w.state != WorkerIdle {
		// Already stopped or processing
		if w.state == WorkerProcessing {
			// Mark dirty so the current reload re-runs when done
			w.dirty = true
		}
		w.mu.Unlock()
		return
	}
	w.state = WorkerProcessing
	w.dirty = false
	w.mu.Unlock()

	w.reload()

	w.mu.Lock()
	// Check if stopped while we were processing - don't overwrite stopped state
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	wasDirty := w.dirty
	w.state = WorkerIdle
	w.mu.Unlock()

	// If dirty, process again immediately
	if wasDirty {
		go w.process()
	}
}

// safeLoad executes fn and recovers from any panics.
// Returns a WorkerError if fn panics or fails, nil otherwise.
func (w *Worker) safeLoad(phase string, fn func() error) *WorkerError {
	var result *WorkerError
	func() {
		defer func() {
			if r := recover(); r != nil {
				result = &WorkerError{
					Phase: phase,
					Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
					Time:  time.Now(),
				}
			}
		}()
		if err := fn(); err != nil {
			result = &WorkerError{
				Phase: phase,
				Cause: err,
				Time:  time.Now(),
			}
		}
	}()
	return result
}

// recordError tracks an error and updates error state.
func (w *Worker) recordError(err *WorkerError) {
	w.mu.Lock()
	w.lastError = err
	if err != nil {
		w.errorCount++
		err.Retries = w.errorCount
	} else {
		w.errorCount = 0
	}
	w.mu.Unlock()
}

// reload reads the collection and notifies the UI when it changed.
// This runs on the worker goroutine (NOT the UI thread).
// Returns false if loading fails or content is unchanged.
func (w *Worker) reload() bool {
	if w.path == "" {
		return false
	}

	start := time.Now()

	var items []model.Item
	loadErr := w.safeLoad("load", func() error {
		var err error
		items, err = loader.LoadItems(w.path)
		return err
	})

	if loadErr != nil {
		log.Printf("reload: error loading %s: %v", w.path, loadErr)
		w.recordError(loadErr)

		if w.notifier != nil {
			w.notifier.Send(ReloadErrorMsg{
				Err:         loadErr,
				Recoverable: true, // File errors are usually recoverable
			})
		}
		return false
	}

	loadDuration := time.Since(start)

	// Content hash for dedup; editors and sync tools fire events for
	// writes that change nothing.
	hash := contentHash(items)

	w.mu.RLock()
	lastHash := w.lastHash
	w.mu.RUnlock()

	if hash == lastHash && lastHash != "" {
		log.Printf("reload: content unchanged (hash=%s), skipping", hashPrefix(hash))
		w.recordError(nil)
		return false
	}

	// Clear error on success
	w.recordError(nil)

	w.mu.Lock()
	w.lastHash = hash
	w.mu.Unlock()

	log.Printf("reload: loaded %d items (load=%v, hash=%s)",
		len(items), loadDuration, hashPrefix(hash))

	if w.notifier != nil {
		w.notifier.Send(ItemsReloadedMsg{Items: items, Hash: hash})
	}
	return true
}

// contentHash returns a stable digest of the collection.
func contentHash(items []model.Item) string {
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashPrefix returns a safe prefix of the hash for logging.
// Returns up to 16 characters, or the full hash if shorter.
func hashPrefix(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}
