package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/internal/domain"
	"github.com/IvanShishkin/webtrail/internal/filesystem"
	"github.com/IvanShishkin/webtrail/internal/fingerprint"
	"github.com/IvanShishkin/webtrail/internal/store"
	"github.com/IvanShishkin/webtrail/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Version is reported in scan summaries
var Version = "0.1.0"

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// UserSource enumerates the accounts to scan
type UserSource interface {
	Users() ([]filesystem.User, error)
}

// EntryBuilder turns one domain file into a DomainEntry
type EntryBuilder interface {
	Build(ctx context.Context, path string) (*models.DomainEntry, error)
}

// ChangesetStore persists changesets per user
type ChangesetStore interface {
	Save(user string, cs *models.Changeset) (string, int)
	All(user string) []*models.Changeset
}

// Scanner runs one snapshot of every selected user's domain content
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	users            UserSource
	builder          EntryBuilder
	store            ChangesetStore
	walker           *filesystem.Walker
	progressCallback ProgressCallback

	processed atomic.Int64
	skipped   atomic.Int64
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		config: cfg,
		logger: logger,
	}
}

// SetUserSource replaces the account database
func (s *Scanner) SetUserSource(src UserSource) {
	s.users = src
}

// SetBuilder replaces the entry builder
func (s *Scanner) SetBuilder(b EntryBuilder) {
	s.builder = b
}

// SetStore replaces the changeset store
func (s *Scanner) SetStore(st ChangesetStore) {
	s.store = st
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// init wires the default collaborators that were not set explicitly
func (s *Scanner) init() error {
	if s.users == nil {
		s.users = filesystem.NewPasswdSource(s.config.PasswdPath)
	}
	if s.store == nil {
		s.store = store.New(s.config, s.logger)
	}
	if s.builder == nil {
		policy, err := domain.LoadPolicy(s.config.PolicyPath)
		if err != nil {
			return fmt.Errorf("failed to load domain policy: %w", err)
		}
		owners := filesystem.NewOwnerResolver(s.logger)
		fp := fingerprint.New(s.config, owners, s.logger)
		prober := domain.NewHTTPProber(s.config, s.logger)
		s.builder = domain.NewBuilder(policy, fp, prober, s.logger)
	}
	s.walker = filesystem.NewWalker(s.config, s.logger)
	return nil
}

// Scan snapshots the given users, or every account selected by configuration
// when none are given. Missing content roots are skipped silently.
func (s *Scanner) Scan(ctx context.Context, only []string) (*models.ScanSummary, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	summary := &models.ScanSummary{
		StartTime: time.Now(),
		HomeRoot:  s.config.HomeRoot,
		StoreRoot: s.config.StoreRoot,
		Version:   Version,
		Users:     []*models.UserScan{},
	}
	s.processed.Store(0)
	s.skipped.Store(0)

	s.reportProgress("users", 0, 0, "Reading account database...")
	all, err := s.users.Users()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate users: %w", err)
	}
	selected := selectUsers(all, only, s.config)
	summary.TotalUsers = len(selected)
	s.reportProgress("users", len(selected), len(selected), fmt.Sprintf("Found %d users to scan", len(selected)))

	s.logger.Info("Starting scan",
		zap.String("home_root", s.config.HomeRoot),
		zap.Int("users", len(selected)))

	workers := s.config.GetWorkers()
	if workers > len(selected) && len(selected) > 0 {
		workers = len(selected)
	}
	summary.WorkersUsed = workers

	s.scanUsers(ctx, selected, workers, summary)

	summary.Processed = s.processed.Load()
	summary.Skipped = s.skipped.Load()
	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)

	// Get memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	summary.MemoryUsed = m.Alloc

	s.logger.Info("Scan completed",
		zap.Duration("duration", summary.Duration),
		zap.Int64("processed", summary.Processed),
		zap.Int64("skipped", summary.Skipped))

	return summary, ctx.Err()
}

// selectUsers applies the explicit list, or the configured allow-list
func selectUsers(all []filesystem.User, only []string, cfg *config.Config) []filesystem.User {
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	var selected []filesystem.User
	for _, u := range all {
		if len(only) > 0 {
			if wanted[u.Name] {
				selected = append(selected, u)
			}
			continue
		}
		if cfg.ShouldScanUser(u.Name) {
			selected = append(selected, u)
		}
	}
	return selected
}

// scanUsers runs user tasks on a fixed worker pool
func (s *Scanner) scanUsers(ctx context.Context, users []filesystem.User, workers int, summary *models.ScanSummary) {
	// Create channels
	userChan := make(chan filesystem.User, workers*2)
	resultsChan := make(chan *models.UserScan, workers*2)

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.worker(ctx, &wg, userChan, resultsChan)
	}

	// Start results collector with progress
	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go s.collectResults(&collectWg, resultsChan, summary, len(users))

	// Feed users
feed:
	for _, u := range users {
		select {
		case <-ctx.Done():
			break feed
		case userChan <- u:
		}
	}

	// Close channels and wait
	close(userChan)
	wg.Wait()
	close(resultsChan)
	collectWg.Wait()
}

// worker processes users from the channel
func (s *Scanner) worker(ctx context.Context, wg *sync.WaitGroup, userChan <-chan filesystem.User, resultsChan chan<- *models.UserScan) {
	defer wg.Done()

	for u := range userChan {
		select {
		case <-ctx.Done():
			return
		default:
			resultsChan <- s.ScanUser(ctx, u)
		}
	}
}

// collectResults gathers finished user tasks; it is the only writer of summary
func (s *Scanner) collectResults(wg *sync.WaitGroup, resultsChan <-chan *models.UserScan, summary *models.ScanSummary, total int) {
	defer wg.Done()

	done := 0
	for result := range resultsChan {
		summary.AddUser(result)
		done++

		message := fmt.Sprintf("%s: %d processed, %d skipped", result.User, result.Processed, result.Skipped)
		if result.Missing {
			message = fmt.Sprintf("%s: no content root", result.User)
		}
		s.reportProgress("scanning", done, total, message)
	}

	// Final progress report
	s.reportProgress("scanning", done, total, "Scan complete")
}

// ScanUser builds and stores one changeset for a user
func (s *Scanner) ScanUser(ctx context.Context, u filesystem.User) *models.UserScan {
	start := time.Now()
	root := filepath.Join(s.config.HomeRoot, u.Name)
	result := &models.UserScan{User: u.Name, Root: root}

	if !filesystem.Exists(root) {
		s.logger.Debug("Path doesn't exist, skipping", zap.String("path", root))
		result.Missing = true
		return result
	}

	cs := models.NewChangeset(s.parentFor(u.Name))
	result.Changeset = cs.UUID
	result.Parent = cs.Parent

	s.logger.Info("Traversing path", zap.String("path", root))
	domains := make(map[string]bool)

	walkErr := s.walker.Walk(ctx, root, func(fi *models.FileInfo) error {
		entry, err := s.builder.Build(ctx, fi.Path)
		if err != nil {
			s.skipped.Add(1)
			result.Skipped++
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if !isSilent(err) {
				s.logger.Warn("Failed to process file", zap.String("path", fi.Path), zap.Error(err))
			}
			return nil
		}

		cs.Add(*entry)
		domains[entry.Name] = true
		s.processed.Add(1)
		result.Processed++
		return nil
	})
	result.Domains = len(domains)

	if walkErr != nil {
		result.Errors = append(result.Errors, walkErr.Error())
		result.Duration = time.Since(start)
		s.logger.Warn("Traversal interrupted, changeset discarded", zap.String("user", u.Name), zap.Error(walkErr))
		return result
	}

	path, written := s.store.Save(u.Name, cs)
	result.StoredPath = path
	result.StoredBytes = written
	if written == 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to store changeset %s", cs.UUID))
	}

	result.Duration = time.Since(start)
	return result
}

// parentFor returns the lineage parent of a new changeset
func (s *Scanner) parentFor(user string) uuid.UUID {
	if !s.config.LinkParent {
		return models.RootUUID
	}
	all := s.store.All(user)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].IsValid() {
			return all[i].UUID
		}
	}
	return models.RootUUID
}

// isSilent reports errors that are expected for most files
func isSilent(err error) bool {
	return errors.Is(err, fingerprint.ErrInvalidFileType) || errors.Is(err, domain.ErrDomainExcluded)
}
