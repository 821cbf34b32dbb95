package kanby

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

const (
	tempSuffix   = ".tmp"
	backupSuffix = ".bak"
)

// FileStore reads and writes a workspace as a single JSON file.
// Writes go through a temp file and rename so the target is never torn.
// It does not lock against other processes.
type FileStore struct {
	path   string
	logger *log.Logger
}

// StoreOption configures a FileStore
type StoreOption func(*FileStore)

// WithStoreLogger sets the logger used for load and write diagnostics
func WithStoreLogger(logger *log.Logger) StoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore creates a store for the given data file, creating its directory if needed
func NewFileStore(path string, opts ...StoreOption) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("data file path is required")
	}
	s := &FileStore{
		path:   path,
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return s, nil
}

// Path returns the data file path
func (s *FileStore) Path() string {
	return s.path
}

// TempPath returns the path used for in-progress writes
func (s *FileStore) TempPath() string {
	return s.path + tempSuffix
}

// BackupPath returns the path holding the previous version of the data file
func (s *FileStore) BackupPath() string {
	return s.path + backupSuffix
}

// LoadWorkspace reads the workspace stored at path without creating anything on disk
func LoadWorkspace(path string) *Workspace {
	s := &FileStore{path: path, logger: log.StandardLogger()}
	return s.Load()
}

// Load reads the workspace. It never fails: a missing file yields the backup
// if one exists, otherwise the default workspace. Unreadable content is logged
// and replaced by the default.
func (s *FileStore) Load() *Workspace {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.loadBackup()
	}
	if err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("failed to read data file, starting with default workspace")
		return DefaultWorkspace()
	}

	ws, err := DecodeWorkspace(data)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("data file unreadable, starting with default workspace")
	}
	return ws
}

// loadBackup recovers from a data file that went missing after a save made its backup
func (s *FileStore) loadBackup() *Workspace {
	data, err := os.ReadFile(s.BackupPath())
	if err != nil {
		return DefaultWorkspace()
	}
	ws, err := DecodeWorkspace(data)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.BackupPath()).Warn("backup unreadable, starting with default workspace")
		return ws
	}
	s.logger.WithField("path", s.BackupPath()).Warn("data file missing, restored workspace from backup")
	return ws
}

// Save atomically replaces the data file with ws.
// Temp write → fsync → copy current to .bak → rename temp over the data file → sync dir.
// The data file is never absent: it holds either the old or the new content.
func (s *FileStore) Save(ws *Workspace) error {
	data, err := EncodeWorkspace(ws)
	if err != nil {
		return err
	}

	tmp := s.TempPath()
	if err := writeSynced(tmp, data); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := s.backup(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to back up data file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move temp file into place: %w", err)
	}

	if err := syncDir(filepath.Dir(s.path)); err != nil {
		s.logger.WithError(err).WithField("path", s.path).Debug("failed to sync data directory")
	}
	return nil
}

// backup replaces .bak with the current data file, leaving the data file in place
func (s *FileStore) backup() error {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	bak := s.BackupPath()
	if err := os.Remove(bak); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.Link(s.path, bak); err == nil {
		return nil
	}
	// filesystems without hard links get a copy
	return copySynced(s.path, bak)
}

func copySynced(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := writeSynced(dst, data); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

// writeSynced writes data to path and flushes it to stable storage
func writeSynced(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open temp file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return nil
}

func syncDir(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()
	return dir.Sync()
}
