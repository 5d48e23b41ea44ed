// Package fingerprint turns a content file into an immutable FileEntry.
package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/IvanShishkin/webtrail/internal/classifier"
	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/internal/filesystem"
	"github.com/IvanShishkin/webtrail/internal/sanitizer"
	"github.com/IvanShishkin/webtrail/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrInvalidFileType means the extension gate rejected the file. Not worth logging.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrMetadataRead means the file could not be stat'ed
	ErrMetadataRead = errors.New("failed to read metadata")
	// ErrRead means the file could not be opened or read
	ErrRead = errors.New("failed to read file")
)

// Fingerprinter classifies files: extension gate, bounded read, encoding,
// sanitizing, language and hashing
type Fingerprinter struct {
	logger    *zap.Logger
	owners    *filesystem.OwnerResolver
	encodings *classifier.EncodingDetector
	budget    int64
	open      *semaphore.Weighted
	now       func() time.Time
}

// New creates a fingerprinter. One instance is shared by all scan tasks so
// max_open bounds open files process-wide.
func New(cfg *config.Config, owners *filesystem.OwnerResolver, logger *zap.Logger) *Fingerprinter {
	budget := filesystem.ParseSize(cfg.ReadBudget)
	if budget <= 0 {
		budget = filesystem.DefaultReadBudget
	}
	maxOpen := cfg.MaxOpen
	if maxOpen <= 0 {
		maxOpen = 512
	}

	return &Fingerprinter{
		logger:    logger,
		owners:    owners,
		encodings: classifier.NewEncodingDetector(nil),
		budget:    budget,
		open:      semaphore.NewWeighted(int64(maxOpen)),
		now:       time.Now,
	}
}

// ClassifyPath gates, opens and classifies one file
func (f *Fingerprinter) ClassifyPath(ctx context.Context, path string) (*models.FileEntry, error) {
	if !filesystem.ValidExtension(path) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, path)
	}

	if err := f.open.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.open.Release(1)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMetadataRead, path, err)
	}

	return f.Classify(path, file, info)
}

// Classify builds the FileEntry for an already opened file
func (f *Fingerprinter) Classify(path string, r io.Reader, info os.FileInfo) (*models.FileEntry, error) {
	if !filesystem.ValidExtension(path) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, path)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: %s", ErrMetadataRead, path)
	}

	sample, err := filesystem.ReadFragment(r, f.budget)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	uid, gid, mode, _ := filesystem.Ownership(info)
	text := sanitizer.Strip(sample)

	entry := &models.FileEntry{
		Path:     path,
		SHA1:     filesystem.CalculateSHA1([]byte(text)),
		Owner:    f.owners.Resolve(uid, gid),
		Size:     info.Size(),
		Mode:     mode,
		Modified: f.now().Unix() - info.ModTime().Unix(),
		Content:  filesystem.RetainPrintable(sample),
	}

	encoding, ok := f.encodings.Detect(sample)
	entry.Encoding = encoding
	if !ok {
		entry.Lang = classifier.DefaultLanguage
		f.logger.Debug("No encoding detected", zap.String("path", path))
		return entry, nil
	}

	lang := classifier.DetectLanguage(text)
	entry.Lang = lang.Code
	switch {
	case !lang.Detected:
		f.logger.Debug("No language detected, using fallback",
			zap.String("path", path), zap.String("lang", lang.Code))
	case lang.Reliable:
		f.logger.Debug("Reliable language detection",
			zap.String("path", path), zap.String("lang", lang.Code), zap.Float64("confidence", lang.Confidence))
	default:
		f.logger.Debug("Unreliable language detection",
			zap.String("path", path), zap.String("lang", lang.Code), zap.Float64("confidence", lang.Confidence))
	}

	return entry, nil
}
