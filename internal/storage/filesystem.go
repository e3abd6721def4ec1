package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/MikeBiancalana/pepys/internal/diary"
	"github.com/MikeBiancalana/pepys/internal/logger"
)

// EntryCreationError reports a filesystem failure while making sure an entry exists.
type EntryCreationError struct {
	Path string
	Err  error
}

func (e *EntryCreationError) Error() string {
	return fmt.Sprintf("failed to create entry %s: %v", e.Path, e.Err)
}

func (e *EntryCreationError) Unwrap() error {
	return e.Err
}

// FileStore handles file system operations for diary entries under Root
type FileStore struct {
	Root string
}

// NewFileStore creates a new file store rooted at root
func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root}
}

// EntryPath returns the file path for an entry date
func (s *FileStore) EntryPath(date diary.Date) string {
	return diary.EntryPath(s.Root, date)
}

// EnsureEntry creates an empty file at path, and any missing parent
// directories, unless it already exists. Existing content is never touched.
// It reports whether the file was created by this call.
func (s *FileStore) EnsureEntry(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, &EntryCreationError{Path: path, Err: errors.New("path is a directory")}
		}
		logger.Debug("entry already exists", "path", path)
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, &EntryCreationError{Path: path, Err: fmt.Errorf("failed to stat file: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, &EntryCreationError{Path: path, Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		// another run may have created it between the stat and here, but a
		// dangling symlink also reports ErrExist
		info, statErr := os.Stat(path)
		if statErr != nil {
			return false, &EntryCreationError{Path: path, Err: fmt.Errorf("path exists but cannot be opened: %w", statErr)}
		}
		if !info.Mode().IsRegular() {
			return false, &EntryCreationError{Path: path, Err: errors.New("path exists but is not a regular file")}
		}
		logger.Debug("entry created concurrently", "path", path)
		return false, nil
	}
	if err != nil {
		return false, &EntryCreationError{Path: path, Err: fmt.Errorf("failed to create file: %w", err)}
	}
	if err := f.Close(); err != nil {
		return false, &EntryCreationError{Path: path, Err: fmt.Errorf("failed to close file: %w", err)}
	}

	logger.Debug("created entry", "path", path)
	return true, nil
}

// ListEntries returns the dates of all entries under Root (sorted)
func (s *FileStore) ListEntries() ([]diary.Date, error) {
	dates := make([]diary.Date, 0)

	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.Root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return nil
		}
		if date, ok := diary.DateFromRelativePath(rel); ok {
			dates = append(dates, date)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read diary directory: %w", err)
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Time().Before(dates[j].Time())
	})

	return dates, nil
}
