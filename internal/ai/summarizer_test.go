package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/internal/diff"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	system string
	prompt string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, int, error) {
	f.system = system
	f.prompt = prompt
	if f.err != nil {
		return "", 0, f.err
	}
	return f.reply, 42, nil
}

func sampleResult() *diff.Result {
	segments := diff.Texts("Welcome to our shop", "Welcome to our casino shop", diff.ModeChar)
	r := &diff.Result{
		Old:          uuid.New(),
		New:          uuid.New(),
		OldTimestamp: 1700000000000,
		NewTimestamp: 1700000600000,
		Mode:         diff.ModeChar,
		Segments:     segments,
	}
	for _, s := range segments {
		switch s.Kind {
		case diff.Added:
			r.Stats.Added += len([]rune(s.Text))
		case diff.Removed:
			r.Stats.Removed += len([]rune(s.Text))
		default:
			r.Stats.Same += len([]rune(s.Text))
		}
	}
	return r
}

func TestMapModelName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"haiku", "claude-3-5-haiku-latest"},
		{"Sonnet", "claude-sonnet-4-20250514"},
		{"opus", "claude-opus-4-20250514"},
		{"unknown", "claude-3-5-haiku-latest"},
		{"", "claude-3-5-haiku-latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapModelName(tt.name); got != tt.expected {
				t.Errorf("MapModelName(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestNewClient_NoToken(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewClient("haiku", "", 10); !errors.Is(err, ErrNoToken) {
		t.Errorf("NewClient() error = %v, want %v", err, ErrNoToken)
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	r := sampleResult()
	prompt, truncated := BuildSummaryPrompt("alice", r, "en", 0)

	if truncated {
		t.Error("BuildSummaryPrompt() truncated without a limit")
	}
	for _, want := range []string{"USER: alice", r.Old.String(), r.New.String(), "MODE: char", "casino"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Welcome") {
		t.Error("prompt should not carry unchanged text")
	}
}

func TestBuildSummaryPrompt_NoChanges(t *testing.T) {
	r := &diff.Result{Mode: diff.ModeLine, Segments: diff.Texts("same", "same", diff.ModeLine)}
	r.Stats.Same = 4

	prompt, _ := BuildSummaryPrompt("bob", r, "en", 0)
	if !strings.Contains(prompt, "No added or removed text.") {
		t.Errorf("prompt = %q, want the no-change marker", prompt)
	}
	if !strings.Contains(prompt, "unknown time") {
		t.Error("zero timestamps should render as unknown time")
	}
}

func TestBuildSummaryPrompt_Truncation(t *testing.T) {
	r := &diff.Result{Mode: diff.ModeChar}
	for i := 0; i < 50; i++ {
		r.Segments = append(r.Segments, diff.Segment{Kind: diff.Added, Text: strings.Repeat("x", 100)})
	}
	r.Stats.Added = 5000

	prompt, truncated := BuildSummaryPrompt("carol", r, "en", 1000)
	if !truncated {
		t.Error("BuildSummaryPrompt() expected truncation")
	}
	if !strings.Contains(prompt, "[remaining changes omitted]") {
		t.Error("truncated prompt lacks the omission marker")
	}
	if len(prompt) > 1100 {
		t.Errorf("prompt length = %d, want about 1000", len(prompt))
	}
}

func TestBuildSummaryPrompt_LongSegment(t *testing.T) {
	r := &diff.Result{
		Mode:     diff.ModeChar,
		Segments: []diff.Segment{{Kind: diff.Removed, Text: strings.Repeat("ż", 2000) + "\nend"}},
	}
	r.Stats.Removed = 2004

	prompt, _ := BuildSummaryPrompt("dave", r, "pl", 0)
	if strings.Contains(prompt, `\nend`) {
		t.Error("long segment was not cut")
	}
	if !strings.Contains(prompt, "Polish") {
		t.Error("language instruction missing")
	}
}

func TestLanguageInstruction(t *testing.T) {
	if got := LanguageInstruction("en"); got != "" {
		t.Errorf("LanguageInstruction(en) = %q, want empty", got)
	}
	if got := LanguageInstruction("ru"); !strings.Contains(got, "Russian") {
		t.Errorf("LanguageInstruction(ru) = %q", got)
	}
	if got := GetLanguageName("xx"); got != "English" {
		t.Errorf("GetLanguageName(xx) = %q, want English", got)
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	fc := &fakeCompleter{reply: "The word casino was added to the shop page."}
	cfg := &config.AIConfig{Language: "en", MaxChars: 12000}
	s := NewSummarizerWithCompleter(fc, "test-model", cfg, zap.NewNop())

	r := sampleResult()
	summary, err := s.Summarize(context.Background(), "alice", r)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Text != fc.reply {
		t.Errorf("Text = %q, want %q", summary.Text, fc.reply)
	}
	if summary.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d, want 42", summary.TokensUsed)
	}
	if summary.Old != r.Old || summary.New != r.New {
		t.Error("summary does not carry the diffed changeset ids")
	}
	if fc.system != SummarySystemPrompt {
		t.Error("system prompt not passed through")
	}
	if !strings.Contains(fc.prompt, "USER: alice") {
		t.Errorf("prompt = %q", fc.prompt)
	}
}

func TestSummarizer_Error(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("boom")}
	s := NewSummarizerWithCompleter(fc, "test-model", &config.AIConfig{}, zap.NewNop())

	if _, err := s.Summarize(context.Background(), "alice", sampleResult()); err == nil {
		t.Error("Summarize() expected error, got nil")
	}
}

func TestEstimateCost(t *testing.T) {
	haiku := EstimateCost("haiku", 4000)
	opus := EstimateCost("opus", 4000)
	if haiku <= 0 || opus <= haiku {
		t.Errorf("EstimateCost haiku=%v opus=%v, want 0 < haiku < opus", haiku, opus)
	}
}
