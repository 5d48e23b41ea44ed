// Package diff compares the retained content of two changesets.
package diff

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/webtrail/pkg/models"
	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrNotEnough is returned when a user has fewer than two valid changesets
var ErrNotEnough = errors.New("need at least two changesets to diff")

// Filter selects the entries whose content is diffed, by file path
type Filter func(path string) bool

// AllFiles accepts every entry
func AllFiles(string) bool { return true }

// ExtensionFilter accepts paths with the given extension ("php" or ".php").
// An empty extension accepts everything.
func ExtensionFilter(ext string) Filter {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		return AllFiles
	}
	return func(path string) bool {
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") == ext
	}
}

// Mode selects the diff granularity
type Mode string

const (
	ModeChar Mode = "char"
	ModeLine Mode = "line"
)

// Kind classifies a segment
type Kind string

const (
	Same    Kind = "same"
	Added   Kind = "added"
	Removed Kind = "removed"
)

// Segment is a run of text with one classification
type Segment struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Options control Compute
type Options struct {
	Filter Filter
	Mode   Mode
}

// Result is the diff of two changesets
type Result struct {
	Old          uuid.UUID `json:"old"`
	New          uuid.UUID `json:"new"`
	OldTimestamp int64     `json:"old_timestamp"`
	NewTimestamp int64     `json:"new_timestamp"`
	Mode         Mode      `json:"mode"`
	Segments     []Segment `json:"segments"`
	Stats        Stats     `json:"stats"`
}

// Stats counts characters per segment kind
type Stats struct {
	Same    int `json:"same"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Changed reports whether anything was added or removed
func (s Stats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// Extract concatenates, in entry order, the retained content of the entries
// whose file path passes the filter
func Extract(cs *models.Changeset, filter Filter) string {
	if filter == nil {
		filter = AllFiles
	}
	var sb strings.Builder
	for _, e := range cs.Entries {
		if filter(e.File.Path) {
			sb.Write(e.File.Content)
		}
	}
	return sb.String()
}

// Compute diffs the extracted content of two changesets. Only retained
// content is compared, never metadata.
func Compute(older, newer *models.Changeset, opts Options) *Result {
	if opts.Mode == "" {
		opts.Mode = ModeChar
	}

	a := Extract(older, opts.Filter)
	b := Extract(newer, opts.Filter)

	result := &Result{
		Old:          older.UUID,
		New:          newer.UUID,
		OldTimestamp: older.Timestamp,
		NewTimestamp: newer.Timestamp,
		Mode:         opts.Mode,
		Segments:     Texts(a, b, opts.Mode),
	}
	result.Stats = count(result.Segments)
	return result
}

// Texts diffs two strings into merged segments
func Texts(a, b string, mode Mode) []Segment {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 5 * time.Second

	var diffs []diffmatchpatch.Diff
	switch mode {
	case ModeLine:
		ca, cb, lines := dmp.DiffLinesToChars(a, b)
		diffs = dmp.DiffMain(ca, cb, false)
		diffs = dmp.DiffCharsToLines(diffs, lines)
	default:
		diffs = dmp.DiffMain(a, b, false)
	}
	diffs = dmp.DiffCleanupSemantic(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var kind Kind
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
		case diffmatchpatch.DiffDelete:
			kind = Removed
		default:
			kind = Same
		}
		// merge runs of the same kind
		if n := len(segments); n > 0 && segments[n-1].Kind == kind {
			segments[n-1].Text += d.Text
			continue
		}
		segments = append(segments, Segment{Kind: kind, Text: d.Text})
	}
	return segments
}

func count(segments []Segment) Stats {
	var s Stats
	for _, seg := range segments {
		n := len([]rune(seg.Text))
		switch seg.Kind {
		case Added:
			s.Added += n
		case Removed:
			s.Removed += n
		default:
			s.Same += n
		}
	}
	return s
}

// OldStream is the old side: unchanged and removed segments
func (r *Result) OldStream() []Segment {
	return r.stream(Removed)
}

// NewStream is the new side: unchanged and added segments
func (r *Result) NewStream() []Segment {
	return r.stream(Added)
}

func (r *Result) stream(keep Kind) []Segment {
	out := []Segment{}
	for _, seg := range r.Segments {
		if seg.Kind == Same || seg.Kind == keep {
			out = append(out, seg)
		}
	}
	return out
}

// Source looks up stored changesets
type Source interface {
	All(user string) []*models.Changeset
	Find(user string, id uuid.UUID) (*models.Changeset, error)
}

// Engine diffs changesets held in a store
type Engine struct {
	source Source
}

// NewEngine creates an engine over a changeset source
func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// DiffLatest diffs the two most recent valid changesets of a user
func (e *Engine) DiffLatest(user string, opts Options) (*Result, error) {
	var valid []*models.Changeset
	for _, cs := range e.source.All(user) {
		if cs.IsValid() {
			valid = append(valid, cs)
		}
	}
	if len(valid) < 2 {
		return nil, fmt.Errorf("%w: %s has %d", ErrNotEnough, user, len(valid))
	}
	return Compute(valid[len(valid)-2], valid[len(valid)-1], opts), nil
}

// DiffByID diffs two changesets of a user looked up by uuid
func (e *Engine) DiffByID(user string, a, b uuid.UUID, opts Options) (*Result, error) {
	older, err := e.source.Find(user, a)
	if err != nil {
		return nil, err
	}
	newer, err := e.source.Find(user, b)
	if err != nil {
		return nil, err
	}
	return Compute(older, newer, opts), nil
}
