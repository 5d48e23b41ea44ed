package ai

import (
	"context"
	"time"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/internal/diff"
	"go.uber.org/zap"
)

// Summarizer asks the model to describe a changeset diff
type Summarizer struct {
	completer Completer
	model     string
	config    *config.AIConfig
	logger    *zap.Logger
}

// NewSummarizer creates a summarizer backed by the Anthropic API
func NewSummarizer(cfg *config.AIConfig, logger *zap.Logger) (*Summarizer, error) {
	client, err := NewClient(cfg.Model, cfg.APIToken, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return NewSummarizerWithCompleter(client, client.GetModel(), cfg, logger), nil
}

// NewSummarizerWithCompleter creates a summarizer over any completer
func NewSummarizerWithCompleter(c Completer, model string, cfg *config.AIConfig, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		completer: c,
		model:     model,
		config:    cfg,
		logger:    logger,
	}
}

// Summarize describes the changes in r
func (s *Summarizer) Summarize(ctx context.Context, user string, r *diff.Result) (*Summary, error) {
	start := time.Now()

	prompt, truncated := BuildSummaryPrompt(user, r, s.config.Language, s.config.MaxChars)
	if truncated {
		s.logger.Info("Diff truncated for AI summary",
			zap.String("user", user),
			zap.Int("max_chars", s.config.MaxChars))
	}

	s.logger.Debug("Requesting AI summary",
		zap.String("model", s.model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Float64("max_cost_usd", EstimateCost(s.model, len(prompt))))

	text, tokens, err := s.completer.Complete(ctx, SummarySystemPrompt, prompt)
	if err != nil {
		s.logger.Error("AI summary failed", zap.String("user", user), zap.Error(err))
		return nil, err
	}

	return &Summary{
		User:       user,
		Old:        r.Old,
		New:        r.New,
		Model:      s.model,
		Language:   s.config.Language,
		Text:       text,
		Truncated:  truncated,
		TokensUsed: tokens,
		Duration:   time.Since(start),
	}, nil
}
