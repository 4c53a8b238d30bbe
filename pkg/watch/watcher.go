package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
)

// Op is the kind of change an Event reports.
type Op uint8

const (
	OpCreate Op = iota + 1
	OpWrite
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	}
	return "unknown"
}

// Event is one change to a template file. ID identifies the event in logs.
type Event struct {
	ID   uuid.UUID
	Path string
	Op   Op
	Time time.Time
}

// Watcher reports changes to template files under the directories added to
// it. Events are delivered on [Watcher.Events] while [Watcher.Run] is
// running.
type Watcher struct {
	ext    string
	logger *log.Logger
	fsw    *fsnotify.Watcher
	events chan Event

	mu    sync.Mutex
	index Index
}

// New creates a Watcher for files ending in suffix. A nil logger discards
// output.
func New(suffix string, logger *log.Logger) (*Watcher, error) {
	if err := fcsserrors.ValidateSuffix(suffix); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "start file watcher")
	}
	return &Watcher{
		ext:    normalizeSuffix(suffix),
		logger: logger,
		fsw:    fsw,
		events: make(chan Event, 16),
		index:  Index{},
	}, nil
}

// Add indexes root and watches it together with every directory below it
// that holds a template file. Directories that cannot be watched are
// reported together; the rest stay watched.
func (w *Watcher) Add(root string) error {
	idx, err := Scan(root, w.ext)
	if err != nil {
		return fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "scan %s", root)
	}

	w.mu.Lock()
	w.index.Merge(idx)
	w.mu.Unlock()

	dirs := idx.Dirs()
	if root = filepath.Clean(root); !slices.Contains(dirs, root) {
		dirs = append([]string{root}, dirs...)
	}

	var errs error
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			errs = multierr.Append(errs, fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "watch %s", dir))
			continue
		}
		w.logger.Debug("watching directory", "dir", dir)
	}
	w.logger.Info("watch added", "root", root, "files", len(idx.Files()), "dirs", len(dirs))
	return errs
}

// Index returns a copy of the current file index. Files created while
// running are added to it.
func (w *Watcher) Index() Index {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index.clone()
}

// Events returns the channel on which changes are delivered. It is closed
// when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run processes file system notifications until ctx is done or the watcher
// is closed. Watch errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		case fe, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			ev, ok := w.handle(fe)
			if !ok {
				continue
			}
			w.logger.Debug("template changed", "id", ev.ID, "path", ev.Path, "op", ev.Op)
			select {
			case w.events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// handle turns a notification into an Event, or reports false when the
// notification is not about a template file.
func (w *Watcher) handle(fe fsnotify.Event) (Event, bool) {
	var op Op
	switch {
	case fe.Has(fsnotify.Create):
		op = OpCreate
	case fe.Has(fsnotify.Write):
		op = OpWrite
	default:
		return Event{}, false
	}

	name := filepath.Base(fe.Name)
	if !matches(name, w.ext) {
		if op == OpCreate {
			w.maybeAddDir(fe.Name)
		}
		return Event{}, false
	}
	if info, err := os.Stat(fe.Name); err != nil || info.IsDir() {
		return Event{}, false
	}

	if op == OpCreate {
		w.mu.Lock()
		w.index.Add(name, filepath.Dir(fe.Name))
		w.mu.Unlock()
	}
	return Event{ID: uuid.New(), Path: fe.Name, Op: op, Time: time.Now()}, true
}

// maybeAddDir starts watching a newly created directory.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("watch new directory", "dir", path, "err", err)
		return
	}
	w.logger.Debug("watching new directory", "dir", path)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
