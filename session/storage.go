package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the durable side of the store: a named blob per entry.
type Storage interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	// Subscribe calls fn with the new contents after every successful Save
	// of name until the returned func is called.
	Subscribe(name string, fn func(data []byte)) (unsubscribe func())
}

// watchers is the Subscribe side shared by the storages. The zero value is
// ready to use.
type watchers struct {
	mu   sync.Mutex
	next int
	fns  map[string]map[int]func([]byte)
}

func (w *watchers) Subscribe(name string, fn func(data []byte)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fns == nil {
		w.fns = map[string]map[int]func([]byte){}
	}
	if w.fns[name] == nil {
		w.fns[name] = map[int]func([]byte){}
	}

	id := w.next
	w.next++
	w.fns[name][id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.fns[name], id)
	}
}

func (w *watchers) publish(name string, data []byte) {
	w.mu.Lock()
	fns := make([]func([]byte), 0, len(w.fns[name]))
	for _, fn := range w.fns[name] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(append([]byte(nil), data...))
	}
}

type MemoryStorage struct {
	watchers

	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: map[string][]byte{}}
}

func (m *MemoryStorage) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.entries[name]
	if !ok {
		return nil, ErrEntryNotFound
	}

	return append([]byte(nil), data...), nil
}

func (m *MemoryStorage) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	m.entries[name] = append([]byte(nil), data...)
	m.mu.Unlock()

	m.publish(name, data)

	return nil
}

// FileStorage keeps each entry in <dir>/<name>.json.
type FileStorage struct {
	watchers

	dir string
	mu  sync.Mutex
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))

	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrEntryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read entry '%v': %w", name, err)
	}

	return data, nil
}

func (f *FileStorage) Save(_ context.Context, name string, data []byte) error {
	if err := f.write(name, data); err != nil {
		return err
	}

	f.publish(name, data)

	return nil
}

func (f *FileStorage) write(name string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")

	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write entry '%v': %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write entry '%v': %w", name, err)
	}

	if err := os.Rename(tmp.Name(), f.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace entry '%v': %w", name, err)
	}

	return nil
}

func (f *FileStorage) path(name string) string {
	return filepath.Join(f.dir, filepath.Base(name)+".json")
}
