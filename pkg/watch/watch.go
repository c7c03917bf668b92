// Package watch reports source files that changed on disk, batching bursts
// of filesystem events so an editor save triggers a single re-lex.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/asmlex/internal/logging"
	"github.com/yaklabco/asmlex/pkg/fsutil"
)

// DefaultDebounce is the quiet period after the last event before a batch
// is delivered.
const DefaultDebounce = 150 * time.Millisecond

// eventBuffer is the capacity of the translated event channel.
const eventBuffer = 128

// Op describes what happened to a path.
type Op uint8

// Operations, combinable as a bit set.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// String renders the set bits, e.g. "CREATE|WRITE".
func (o Op) String() string {
	names := []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	}

	var parts []string
	for _, n := range names {
		if o&n.op != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Has reports whether all bits of other are set in o.
func (o Op) Has(other Op) bool { return o&other == other }

// Event is a single filesystem notification.
type Event struct {
	Path string
	Op   Op
}

// Handler receives each debounced batch of changed paths, sorted.
// Returning an error stops Run.
type Handler func(ctx context.Context, paths []string) error

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before a batch is delivered.
	// Zero means DefaultDebounce.
	Debounce time.Duration

	// Filter selects the files of interest. Nil accepts every file.
	Filter func(path string) bool
}

// Watcher wraps an fsnotify watcher. Directories are watched recursively.
type Watcher struct {
	fs       *fsnotify.Watcher
	events   chan Event
	errs     chan error
	debounce time.Duration
	filter   func(string) bool

	mu    sync.Mutex
	known map[string]*fsutil.FileInfo
}

// New creates a watcher and starts translating fsnotify events.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:       fsw,
		events:   make(chan Event, eventBuffer),
		errs:     make(chan error, 1),
		debounce: debounce,
		filter:   opts.Filter,
		known:    make(map[string]*fsutil.FileInfo),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.events <- Event{Path: filepath.Clean(ev.Name), Op: translate(ev.Op)}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func translate(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	if op.Has(fsnotify.Chmod) {
		out |= OpChmod
	}
	return out
}

// Events returns the translated, undebounced event stream.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns errors reported by the OS watcher.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher. Run returns once the event stream drains.
func (w *Watcher) Close() error {
	if err := w.fs.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}

// Add watches path. A directory is watched with all of its non-hidden
// subdirectories; a file is watched through its parent directory, since
// editors often replace files by rename.
func (w *Watcher) Add(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		w.remember(ctx, abs)
		return w.addDir(filepath.Dir(abs))
	}
	return w.addTree(abs)
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		return w.addDir(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

func (w *Watcher) addDir(dir string) error {
	if slices.Contains(w.fs.WatchList(), dir) {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Run delivers debounced batches of changed files to handler until ctx is
// cancelled or the watcher is closed. Rewrites that leave a file's content
// unchanged are dropped.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	logger := logging.FromContext(ctx)

	pending := make(map[string]Op)
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.events:
			if !ok {
				if len(pending) == 0 {
					return nil
				}
				return w.deliver(ctx, pending, handler)
			}
			if !w.accept(ctx, ev) {
				continue
			}
			logger.Debug("file event", logging.FieldPath, ev.Path, logging.FieldEvent, ev.Op.String())
			pending[ev.Path] |= ev.Op
			flush = time.After(w.debounce)

		case <-flush:
			flush = nil
			if err := w.deliver(ctx, pending, handler); err != nil {
				return err
			}
			clear(pending)

		case err := <-w.errs:
			logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// accept filters an event. New directories are added to the watch set
// and never reported themselves.
func (w *Watcher) accept(ctx context.Context, ev Event) bool {
	if ev.Op.Has(OpCreate) {
		if info, err := os.Stat(ev.Path); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(ev.Path), ".") {
				if err := w.addTree(ev.Path); err != nil {
					logging.FromContext(ctx).Warn("watch new directory", logging.FieldPath, ev.Path, logging.FieldError, err)
				}
			}
			return false
		}
	}
	if ev.Op == OpChmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Path), ".") {
		return false
	}
	return w.filter == nil || w.filter(ev.Path)
}

func (w *Watcher) deliver(ctx context.Context, pending map[string]Op, handler Handler) error {
	paths := w.changed(ctx, pending)
	if len(paths) == 0 {
		return nil
	}
	return handler(ctx, paths)
}

// changed narrows a batch to the files whose content differs from what was
// last seen. Removed files are always reported.
func (w *Watcher) changed(ctx context.Context, pending map[string]Op) []string {
	paths := make([]string, 0, len(pending))
	for path, op := range pending {
		if op&(OpRemove|OpRename) != 0 {
			if _, err := os.Stat(path); err != nil {
				w.forget(path)
				paths = append(paths, path)
				continue
			}
		}

		w.mu.Lock()
		prev := w.known[path]
		w.mu.Unlock()

		if prev != nil {
			diff, err := fsutil.Changed(ctx, prev)
			if err == nil && !diff {
				continue
			}
		}
		w.remember(ctx, path)
		paths = append(paths, path)
	}

	slices.Sort(paths)
	return paths
}

func (w *Watcher) remember(ctx context.Context, path string) {
	_, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		w.forget(path)
		return
	}

	w.mu.Lock()
	w.known[path] = info
	w.mu.Unlock()
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	delete(w.known, path)
	w.mu.Unlock()
}
