package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/pkg/models"
	"go.uber.org/zap"
)

// DomainsSegment is the directory name that holds per-domain document roots
const DomainsSegment = "domains"

// Walker walks a user content root and finds domain files to fingerprint
type Walker struct {
	logger   *zap.Logger
	maxDepth int
	segment  string
	exclude  map[string]bool
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	exclude := make(map[string]bool)
	for _, dir := range cfg.Exclude {
		exclude[dir] = true
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 4
	}

	return &Walker{
		logger:   logger,
		maxDepth: maxDepth,
		segment:  DomainsSegment,
		exclude:  exclude,
	}
}

// Walk visits regular files at most maxDepth levels below root whose path has a
// "domains" segment. Unreadable entries are logged and skipped. A symlinked
// root is followed; symlinks below it are not. Reported paths keep the root
// as given.
func (w *Walker) Walk(ctx context.Context, root string, callback func(*models.FileInfo) error) error {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	return filepath.WalkDir(realRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("Error accessing path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != realRoot {
				return filepath.SkipDir
			}
			return nil // Continue walking
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relPath, err := filepath.Rel(realRoot, path)
		if err != nil {
			relPath = path
		}
		depth := Depth(relPath)

		if d.IsDir() {
			if path == realRoot {
				return nil
			}
			if w.shouldExclude(d.Name()) {
				w.logger.Debug("Skipping excluded directory", zap.String("path", relPath))
				return filepath.SkipDir
			}
			if depth >= w.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || depth > w.maxDepth {
			return nil
		}
		if !HasSegment(relPath, w.segment) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w.logger.Debug("Failed to stat entry", zap.String("path", path), zap.Error(err))
			return nil
		}

		return callback(&models.FileInfo{
			Path:     filepath.Join(root, relPath),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			IsHidden: isHidden(d.Name()),
		})
	})
}

// shouldExclude checks if a directory should be excluded
func (w *Walker) shouldExclude(name string) bool {
	return w.exclude[name]
}

// Depth returns how many levels below the walk root a relative path sits
func Depth(relPath string) int {
	if relPath == "." || relPath == "" {
		return 0
	}
	return strings.Count(filepath.ToSlash(relPath), "/") + 1
}

// HasSegment reports whether one of the path's directory components equals segment
func HasSegment(path, segment string) bool {
	parts := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for _, part := range parts {
		if part == segment {
			return true
		}
	}
	return false
}

// isHidden checks if a file is hidden
func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// GetExtension returns the file extension without dot
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}

// Exists reports whether path exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
