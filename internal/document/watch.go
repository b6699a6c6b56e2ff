package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/ptedit/internal/logging"
)

// ChangeKind describes what happened to a watched file.
type ChangeKind uint8

const (
	// ChangeModified means the file was written or recreated.
	ChangeModified ChangeKind = iota
	// ChangeRemoved means the file was removed or renamed away.
	ChangeRemoved
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ChangeEvent reports an external change to the document's file.
type ChangeEvent struct {
	Path string
	Kind ChangeKind
	Time time.Time
}

// watchBufferSize bounds pending change events.
const watchBufferSize = 16

// Watch reports changes made to the document's file by other programs until
// ctx is cancelled, at which point the returned channel is closed.
//
// The parent directory is watched rather than the file itself so that
// editors which save through a rename keep being observed. Writes made by
// Save and SaveAs are not reported.
func (d *Document) Watch(ctx context.Context) (<-chan ChangeEvent, error) {
	path := d.Path()
	if path == "" {
		return nil, ErrNoPath
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	events := make(chan ChangeEvent, watchBufferSize)
	go d.watchLoop(ctx, fsw, path, events)
	return events, nil
}

func (d *Document) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, path string, out chan<- ChangeEvent) {
	defer close(out)
	defer func() { _ = fsw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			change, ok := d.translate(event)
			if !ok {
				continue
			}
			d.logger.Debug("file changed", logging.FieldPath, path, logging.FieldEvent, change.Kind)
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			d.logger.Warn("watch error", logging.FieldPath, path, logging.FieldError, err)
		}
	}
}

// translate converts an fsnotify event into a change event. Events that
// leave the file identical to the last save are dropped.
func (d *Document) translate(event fsnotify.Event) (ChangeEvent, bool) {
	change := ChangeEvent{Path: event.Name, Time: time.Now()}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if _, err := os.Stat(event.Name); err == nil {
			// Replaced in place by a rename onto the path.
			return d.modified(change)
		}
		change.Kind = ChangeRemoved
		return change, true
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return d.modified(change)
	default:
		return ChangeEvent{}, false
	}
}

func (d *Document) modified(change ChangeEvent) (ChangeEvent, bool) {
	info, err := os.Stat(change.Path)
	if err != nil {
		return ChangeEvent{}, false
	}

	d.mu.RLock()
	saved := d.savedStat
	d.mu.RUnlock()

	if stampOf(info).equal(saved) {
		return ChangeEvent{}, false
	}
	change.Kind = ChangeModified
	return change, true
}
