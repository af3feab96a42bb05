// SPDX-License-Identifier: MIT
package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

const fileSuffix = ".kv"

// FileStore keeps each key in its own file under a directory. Writes go to a
// temporary file first and are renamed into place.
type FileStore struct {
	mu       sync.Mutex
	fs       afero.Fs
	dir      string
	capacity int64
}

// NewFileStore creates the directory if needed. capacity <= 0 means
// unlimited; otherwise it caps the summed size of all stored values.
func NewFileStore(fs afero.Fs, dir string, capacity int64) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{fs: fs, dir: dir, capacity: capacity}, nil
}

// Dir returns the directory holding the key files
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileSuffix)
}

// keyFromPath maps a file name back to its key, or "" for foreign files
func keyFromPath(path string) string {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileSuffix) {
		return ""
	}
	key, err := url.PathUnescape(strings.TrimSuffix(name, fileSuffix))
	if err != nil {
		return ""
	}
	return key
}

func (s *FileStore) Read(key string) (string, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Write(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity > 0 {
		used, err := s.usedExcept(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.capacity {
			return ErrQuotaExceeded
		}
	}

	target := s.path(key)
	tmp := filepath.Join(s.dir, "."+filepath.Base(target)+".tmp")
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// usedExcept sums stored value sizes, skipping key
func (s *FileStore) usedExcept(key string) (int64, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to scan storage directory: %w", err)
	}

	var used int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		k := keyFromPath(entry.Name())
		if k == "" || k == key {
			continue
		}
		used += entry.Size()
	}
	return used, nil
}

// Watch calls onChange with the key of every file created, rewritten or
// removed in the store directory until ctx is done. It only works on the OS
// filesystem, which is where other processes can reach the same files.
func (s *FileStore) Watch(ctx context.Context, onChange func(key string)) error {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return fmt.Errorf("watch requires the OS filesystem")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if key := keyFromPath(event.Name); key != "" {
				onChange(key)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)
		}
	}
}
