package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"wardrobe/internal/logger"
	"wardrobe/internal/metrics"
)

// FileBackend stores each document as a separate JSON file on disk.
//
// Layout:
//
//	dir/
//	  users.json
//	  items.json
//	  outfits.json
//
// Files are created on first save. A missing file or one that fails to parse loads as
// an empty document, which means a corrupt file is silently replaced by the next save.
// Parse failures are logged and counted so they are at least visible. A file that
// parses but is not an object fails with ErrNotObject and is never overwritten.
type FileBackend struct {
	dir    string
	atomic bool
	locks  documentLocks
}

// NewFileBackend creates the base directory if needed. With atomic set, saves go
// through a temp file and rename instead of overwriting in place.
func NewFileBackend(dir string, atomic bool) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileBackend{dir: dir, atomic: atomic}, nil
}

func (b *FileBackend) path(name string) string {
	return DocumentPath(b.dir, name)
}

// DocumentPath is where the json backend keeps the named document.
func DocumentPath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

func (b *FileBackend) Load(name string) (Document, error) {
	mu := b.locks.get(name)
	mu.Lock()
	defer mu.Unlock()

	data, err := os.ReadFile(b.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}
	return decodeDocument(name, data)
}

func (b *FileBackend) Save(name string, doc Document) error {
	if doc == nil {
		doc = Document{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document %s: %w", name, err)
	}

	mu := b.locks.get(name)
	mu.Lock()
	defer mu.Unlock()

	if b.atomic {
		err = writeFileAtomic(b.path(name), data, 0o644)
	} else {
		err = os.WriteFile(b.path(name), data, 0o644)
	}
	if err != nil {
		return fmt.Errorf("write document %s: %w", name, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

// decodeDocument turns syntax errors into an empty document. Valid JSON of the wrong
// shape is an error.
func decodeDocument(name string, data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("document %s holds a JSON %s: %w", name, typeErr.Value, ErrNotObject)
		}
		metrics.StoreCorruptDocuments.WithLabelValues(name).Inc()
		logger.Named("storage").Warn("document failed to parse, treating as empty",
			zap.String("document", name), zap.Int("bytes", len(data)), zap.Error(err))
		return Document{}, nil
	}
	if doc == nil {
		return Document{}, nil
	}
	return doc, nil
}

// writeFileAtomic writes to a temp file in the same directory, syncs it and renames
// it over path. If the rename fails (Windows with a locked target) it retries once
// after removing the target.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	_ = os.Chmod(tmpPath, perm)

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename: %v (after remove: %v)", err, err2)
		}
	}
	return nil
}
