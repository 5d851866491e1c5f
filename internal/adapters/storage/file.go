package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// File permissions for the persisted data file and its directory.
const (
	dataFileMode = 0o600
	dataDirMode  = 0o700
)

// FileBackend persists the whole key space as one JSON document on disk.
// Writes go through a temp file and rename so concurrent readers in other
// processes never observe a torn file.
type FileBackend struct {
	mu   sync.RWMutex
	path string
	data fileDocument
}

type fileDocument struct {
	Version string            `json:"version"`
	SavedAt time.Time         `json:"saved_at"`
	Values  map[string]string `json:"values"`
}

// NewFileBackend opens (or creates) the backing file. An unreadable or
// corrupt file is treated as empty; per-key defaults take over upstream.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "thebeat", "store.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), dataDirMode); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	b := &FileBackend{
		path: path,
		data: fileDocument{Version: "1", Values: make(map[string]string)},
	}
	b.loadLocked()
	return b, nil
}

// Path returns the location of the backing file, used by the change
// watcher to spot writes from other processes.
func (b *FileBackend) Path() string {
	return b.path
}

// Get returns the stored value and whether the key exists.
func (b *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data.Values[key]
	return v, ok, nil
}

// Set stores the value under key and flushes the whole document to disk.
func (b *FileBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data.Values[key] = value
	b.data.SavedAt = time.Now().UTC()

	raw, err := json.MarshalIndent(b.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, raw, dataFileMode); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// Reload re-reads the backing file, picking up writes made by another
// process, and reports whether the on-disk document differed from the one
// in memory. A write this process just flushed carries the same saved_at
// stamp and reloads as a no-op, so watcher callers can skip republishing
// their own saves. Last writer wins; unflushed local keys absent from the
// file are dropped in favor of the on-disk state.
func (b *FileBackend) Reload() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, err := os.ReadFile(b.path)
	if err != nil {
		return false
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Values == nil {
		return false
	}
	if doc.SavedAt.Equal(b.data.SavedAt) {
		return false
	}
	b.data = doc
	return true
}

func (b *FileBackend) loadLocked() {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		return
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Values == nil {
		return
	}
	b.data = doc
}
