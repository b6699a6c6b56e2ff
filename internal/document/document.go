package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dshills/ptedit/internal/engine/buffer"
	"github.com/dshills/ptedit/internal/logging"
)

// ScratchName is the display name of documents without a file.
const ScratchName = "Untitled"

// Errors returned by document operations.
var (
	// ErrNoPath indicates a save of a scratch document without a target.
	ErrNoPath = errors.New("document has no file path")

	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("path is a directory")
)

// Document represents an open file with its buffer.
type Document struct {
	id  uuid.UUID
	buf *buffer.Buffer

	mu            sync.RWMutex
	path          string
	name          string
	mode          os.FileMode
	savedRevision buffer.RevisionID
	savedStat     fileStamp

	// Configuration
	bufOpts []buffer.Option
	backup  bool
	logger  *log.Logger
}

// fileStamp identifies one version of a file on disk.
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(info fs.FileInfo) fileStamp {
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}

func (s fileStamp) equal(o fileStamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

// Option configures a Document.
type Option func(*Document)

// WithBufferOptions passes options through to the document's buffer.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(d *Document) {
		d.bufOpts = append(d.bufOpts, opts...)
	}
}

// WithBackup keeps the previous file content as <path>.bak on save.
func WithBackup(enabled bool) Option {
	return func(d *Document) {
		d.backup = enabled
	}
}

// WithFileMode sets the permissions used when the file does not exist yet.
func WithFileMode(mode os.FileMode) Option {
	return func(d *Document) {
		if mode != 0 {
			d.mode = mode
		}
	}
}

// WithLogger sets the logger for document events.
func WithLogger(logger *log.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func newDocument(opts []Option) *Document {
	d := &Document{
		id:     uuid.New(),
		name:   ScratchName,
		mode:   0o644,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.WithComponent(d.logger, "document").With(logging.FieldDocument, d.id.String()[:8])
	return d
}

// New creates a scratch document with no file.
func New(opts ...Option) *Document {
	d := newDocument(opts)
	d.buf = buffer.NewBuffer(d.bufOpts...)
	d.savedRevision = d.buf.RevisionID()
	return d
}

// Open loads the file at path. A missing file yields an empty document that
// will be created on the first save.
func Open(ctx context.Context, path string, opts ...Option) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	d := newDocument(opts)
	d.path = absPath
	d.name = filepath.Base(absPath)

	info, err := os.Stat(absPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		d.buf = buffer.NewBuffer(d.bufOpts...)
		d.savedRevision = d.buf.RevisionID()
		d.logger.Debug("opened new file", logging.FieldPath, absPath)
		return d, nil
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", absPath, err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, absPath)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", absPath, err)
	}

	// The buffer borrows data; nothing else holds a reference to it.
	d.buf = buffer.NewBufferFromBytes(data, d.bufOpts...)
	d.mode = info.Mode().Perm()
	d.savedRevision = d.buf.RevisionID()
	d.savedStat = stampOf(info)

	d.logger.Debug("opened file", logging.FieldPath, absPath, logging.FieldSize, len(data))
	return d, nil
}

// ID returns the document's session identifier.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Buffer returns the document's buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// Path returns the absolute file path, or "" for scratch documents.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Name returns the display name.
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

// IsScratch returns true if the document has no file path.
func (d *Document) IsScratch() bool {
	return d.Path() == ""
}

// IsModified returns true if the buffer changed since it was loaded or saved.
func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.RevisionID() != d.savedRevision
}

// Version returns the buffer revision the document is at.
func (d *Document) Version() buffer.RevisionID {
	return d.buf.RevisionID()
}

// Close releases the document's buffer.
func (d *Document) Close() {
	d.buf.Close()
}
