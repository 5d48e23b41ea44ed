// Package store keeps per-user changesets on disk.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no changeset has the requested uuid
var ErrNotFound = errors.New("changeset not found")

// maxDepth bounds how deep below a user directory records are looked up
const maxDepth = 2

// Store is the append-only changeset store: {root}/{user}/{uuid}-{timestamp}.{ext}
type Store struct {
	root    string
	primary Codec
	mirrors []Codec
	logger  *zap.Logger
}

// New creates the store described by configuration: binary records plus a
// JSON mirror when write_json is set
func New(cfg *config.Config, logger *zap.Logger) *Store {
	var mirrors []Codec
	if cfg.WriteJSON {
		mirrors = append(mirrors, JSONCodec{})
	}
	return NewStore(cfg.StoreRoot, BinaryCodec{}, mirrors, logger)
}

// NewStore creates a store that reads and writes primary and also writes every mirror
func NewStore(root string, primary Codec, mirrors []Codec, logger *zap.Logger) *Store {
	if root == "" {
		root = ".changesets"
	}
	return &Store{
		root:    root,
		primary: primary,
		mirrors: mirrors,
		logger:  logger,
	}
}

// Root returns the store directory
func (s *Store) Root() string {
	return s.root
}

// Path returns where a changeset is stored with a codec
func (s *Store) Path(user string, cs *models.Changeset, codec Codec) string {
	return filepath.Join(s.root, user, cs.FileName()+"."+codec.Extension())
}

// Save writes the changeset with the primary codec and every mirror. It
// returns the primary path and its size; 0 bytes means the write failed,
// which is logged but not fatal.
func (s *Store) Save(user string, cs *models.Changeset) (string, int) {
	dir := filepath.Join(s.root, user)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Error("Failed to create changeset directory", zap.String("dir", dir), zap.Error(err))
	}

	path := s.Path(user, cs, s.primary)
	written, err := s.write(path, cs, s.primary)
	if err != nil {
		s.logger.Error("Failed to store changeset", zap.String("path", path), zap.Error(err))
		written = 0
	} else {
		s.logger.Debug("Changeset stored",
			zap.String("uuid", cs.UUID.String()),
			zap.String("path", path),
			zap.Int("bytes", written))
	}

	for _, mirror := range s.mirrors {
		mirrorPath := s.Path(user, cs, mirror)
		if _, err := s.write(mirrorPath, cs, mirror); err != nil {
			s.logger.Error("Failed to store changeset mirror", zap.String("path", mirrorPath), zap.Error(err))
		}
	}

	return path, written
}

// write encodes into a temp file next to path and renames it into place
func (s *Store) write(path string, cs *models.Changeset, codec Codec) (int, error) {
	var buf bytes.Buffer
	if err := codec.Encode(&buf, cs); err != nil {
		return 0, err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := tmpFile.Write(buf.Bytes())
	if err != nil {
		tmpFile.Close()
		return 0, fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return 0, fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return written, nil
}

// All returns every changeset of a user in ascending timestamp order.
// Undecodable records are logged and replaced by the invalid changeset.
func (s *Store) All(user string) []*models.Changeset {
	return s.Load(user, s.primary)
}

// Load is All for an arbitrary codec
func (s *Store) Load(user string, codec Codec) []*models.Changeset {
	dir := filepath.Join(s.root, user)
	suffix := "." + codec.Extension()
	changesets := []*models.Changeset{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			s.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil
		}

		rel, _ := filepath.Rel(dir, path)
		depth := strings.Count(filepath.ToSlash(rel), "/") + 1
		if d.IsDir() {
			if path != dir && depth >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}

		changesets = append(changesets, s.decodeFile(path, codec))
		return nil
	})
	if err != nil {
		s.logger.Warn("Failed to list changesets", zap.String("dir", dir), zap.Error(err))
	}

	sort.SliceStable(changesets, func(i, j int) bool {
		return changesets[i].Timestamp < changesets[j].Timestamp
	})
	return changesets
}

func (s *Store) decodeFile(path string, codec Codec) *models.Changeset {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Error("Failed to open changeset", zap.String("path", path), zap.Error(err))
		return models.InvalidChangeset()
	}
	defer f.Close()

	cs, err := codec.Decode(f)
	if err != nil {
		s.logger.Error("Failed to decode changeset", zap.String("path", path), zap.Error(err))
		return models.InvalidChangeset()
	}
	return cs
}

// MostRecent returns the newest changeset of a user, or the invalid changeset
func (s *Store) MostRecent(user string) *models.Changeset {
	all := s.All(user)
	if len(all) == 0 {
		return models.InvalidChangeset()
	}
	return all[len(all)-1]
}

// Find returns the changeset with the given uuid
func (s *Store) Find(user string, id uuid.UUID) (*models.Changeset, error) {
	for _, cs := range s.All(user) {
		if cs.UUID == id && cs.IsValid() {
			return cs, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, user, id)
}

// Users lists the user directories present in the store
func (s *Store) Users() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	users := []string{}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			users = append(users, e.Name())
		}
	}
	sort.Strings(users)
	return users, nil
}
