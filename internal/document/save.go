package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/ptedit/internal/logging"
)

// BackupSuffix is appended to the path of backup files.
const BackupSuffix = ".bak"

// Save writes the document to its file.
func (d *Document) Save(ctx context.Context) error {
	path := d.Path()
	if path == "" {
		return ErrNoPath
	}
	return d.SaveAs(ctx, path)
}

// SaveAs writes the document to path and binds the document to it.
func (d *Document) SaveAs(ctx context.Context, path string) error {
	if path == "" {
		return ErrNoPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	snap := d.buf.Snapshot()

	d.mu.RLock()
	mode, backup := d.mode, d.backup
	d.mu.RUnlock()

	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
		if backup {
			if err := copyFile(absPath, absPath+BackupSuffix, mode); err != nil {
				return fmt.Errorf("backup %s: %w", absPath, err)
			}
		}
	}

	// The stamp is recorded before the rename so a running watcher already
	// recognises the new file as ours.
	d.mu.Lock()
	prevStamp := d.savedStat
	d.mu.Unlock()
	err = writeAtomic(ctx, absPath, snap, mode, func(info fs.FileInfo) {
		d.mu.Lock()
		d.savedStat = stampOf(info)
		d.mu.Unlock()
	})
	if err != nil {
		d.mu.Lock()
		d.savedStat = prevStamp
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.path = absPath
	d.name = filepath.Base(absPath)
	d.mode = mode
	d.savedRevision = snap.RevisionID()
	d.mu.Unlock()

	d.logger.Info("saved", logging.FieldPath, absPath, logging.FieldSize, snap.Len())
	return nil
}

// Export writes the current content to path without binding the document
// to it. The document's own file and modified state are unaffected.
func (d *Document) Export(ctx context.Context, path string) error {
	if path == "" {
		return ErrNoPath
	}
	snap := d.buf.Snapshot()

	d.mu.RLock()
	mode := d.mode
	d.mu.RUnlock()
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := writeAtomic(ctx, path, snap, mode, nil); err != nil {
		return err
	}
	d.logger.Debug("exported", logging.FieldPath, path, logging.FieldSize, snap.Len())
	return nil
}

// writeAtomic streams src into a temp file next to path, syncs it and
// renames it over path. ready receives the temp file's info just before the
// rename. On error the original file is untouched.
func writeAtomic(ctx context.Context, path string, src io.WriterTo, mode os.FileMode, ready func(fs.FileInfo)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := src.WriteTo(tmp); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	info, err := os.Stat(tmpPath)
	if err != nil {
		return fmt.Errorf("stat temp file: %w", err)
	}
	if ready != nil {
		ready(info)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.WriteFile(dst, data, mode)
}
