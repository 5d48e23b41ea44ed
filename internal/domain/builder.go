package domain

import (
	"context"
	"fmt"

	"github.com/IvanShishkin/webtrail/pkg/models"
	"go.uber.org/zap"
)

// Protocols are probed in this order for every entry
var Protocols = []string{"http", "https"}

// FileClassifier produces the FileEntry of a path
type FileClassifier interface {
	ClassifyPath(ctx context.Context, path string) (*models.FileEntry, error)
}

// Builder turns a domain file into a DomainEntry
type Builder struct {
	resolver   *Resolver
	policy     *Policy
	classifier FileClassifier
	prober     Prober
	logger     *zap.Logger
}

// NewBuilder creates a builder; a nil policy means DefaultPolicy
func NewBuilder(policy *Policy, classifier FileClassifier, prober Prober, logger *zap.Logger) *Builder {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Builder{
		resolver:   NewResolver(policy),
		policy:     policy,
		classifier: classifier,
		prober:     prober,
		logger:     logger,
	}
}

// Build resolves the domain, classifies the file and probes http then https.
// Paths without a usable domain fail with ErrDomainExcluded before any I/O.
func (b *Builder) Build(ctx context.Context, path string) (*models.DomainEntry, error) {
	target, ok := b.resolver.Resolve(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDomainExcluded, path)
	}

	file, err := b.classifier.ClassifyPath(ctx, path)
	if err != nil {
		return nil, err
	}

	entry := &models.DomainEntry{
		Name:        target.Name,
		RequestPath: target.RequestPath,
		File:        *file,
	}

	if !b.policy.ShouldProbe(target.Name) {
		b.logger.Debug("Probe skipped by policy", zap.String("domain", target.Name))
		return entry, nil
	}

	for _, protocol := range Protocols {
		result := b.prober.Probe(ctx, target, protocol)
		switch protocol {
		case "http":
			entry.HTTP = result
		case "https":
			entry.HTTPS = result
		}
	}

	return entry, nil
}
