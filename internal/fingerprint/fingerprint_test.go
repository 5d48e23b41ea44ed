package fingerprint

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/internal/filesystem"
	"github.com/IvanShishkin/webtrail/internal/sanitizer"
	"go.uber.org/zap"
)

func newTestFingerprinter(budget string) *Fingerprinter {
	cfg := &config.Config{ReadBudget: budget, MaxOpen: 2}
	owners := filesystem.NewOwnerResolverWithLookup(zap.NewNop(), func(uid string) (string, error) {
		return "owner" + uid, nil
	})
	return New(cfg, owners, zap.NewNop())
}

func TestClassifyPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	content := "<html><body><h1>Hello</h1>\n<p>plain page</p>\x00\x01</body></html>"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	modTime := time.Now().Add(-90 * time.Second)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("Failed to set mtime: %v", err)
	}

	f := newTestFingerprinter("65535")
	now := modTime.Add(90 * time.Second)
	f.now = func() time.Time { return now }

	entry, err := f.ClassifyPath(context.Background(), path)
	if err != nil {
		t.Fatalf("ClassifyPath() error = %v", err)
	}

	if entry.Path != path {
		t.Errorf("Path = %q, want %q", entry.Path, path)
	}
	if entry.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", entry.Size, len(content))
	}
	if entry.Encoding != "ascii" {
		t.Errorf("Encoding = %q, want %q", entry.Encoding, "ascii")
	}
	if entry.Lang == "" {
		t.Error("Lang is empty")
	}
	wantSHA := filesystem.CalculateSHA1([]byte(sanitizer.Strip([]byte(content))))
	if entry.SHA1 != wantSHA {
		t.Errorf("SHA1 = %q, want %q", entry.SHA1, wantSHA)
	}
	if strings.ContainsAny(string(entry.Content), "\x00\x01") {
		t.Errorf("Content kept control bytes: %q", entry.Content)
	}
	if !strings.Contains(string(entry.Content), "<h1>Hello</h1>\n") {
		t.Errorf("Content = %q, want raw markup retained", entry.Content)
	}
	if entry.Modified != 90 {
		t.Errorf("Modified = %d, want %d", entry.Modified, 90)
	}
	if entry.Owner.Name == "" {
		t.Error("Owner name is empty")
	}
}

func TestClassifyPath_Budget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 1000)), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	f := newTestFingerprinter("100")
	entry, err := f.ClassifyPath(context.Background(), path)
	if err != nil {
		t.Fatalf("ClassifyPath() error = %v", err)
	}
	if len(entry.Content) != 100 {
		t.Errorf("len(Content) = %d, want 100", len(entry.Content))
	}
	if entry.Size != 1000 {
		t.Errorf("Size = %d, want 1000", entry.Size)
	}
}

func TestClassifyPath_Errors(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(image, []byte{0x89, 'P', 'N', 'G'}, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"Invalid extension", image, ErrInvalidFileType},
		{"Missing file", filepath.Join(dir, "gone.php"), ErrRead},
	}

	f := newTestFingerprinter("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ClassifyPath(context.Background(), tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ClassifyPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestClassifyPath_ErrorKeepsCause(t *testing.T) {
	f := newTestFingerprinter("")
	path := filepath.Join(t.TempDir(), "gone.php")
	_, err := f.ClassifyPath(context.Background(), path)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("ClassifyPath(%q) error = %v, want %v", path, err, ErrRead)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ClassifyPath(%q) error = %v, want it to wrap %v", path, err, fs.ErrNotExist)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("ClassifyPath() error %q does not name %s", err, path)
	}

	info, err := os.Stat(t.TempDir())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	cause := errors.New("device gone")
	_, err = f.Classify("/tmp/a.php", failingReader{cause}, info)
	if !errors.Is(err, ErrRead) || !errors.Is(err, cause) {
		t.Errorf("Classify() error = %v, want both %v and %v", err, ErrRead, cause)
	}
}

func TestClassify_NoMetadata(t *testing.T) {
	f := newTestFingerprinter("")
	_, err := f.Classify("/tmp/a.php", strings.NewReader("x"), nil)
	if !errors.Is(err, ErrMetadataRead) {
		t.Errorf("Classify() error = %v, want %v", err, ErrMetadataRead)
	}
}

func TestClassifyPath_Cancelled(t *testing.T) {
	f := newTestFingerprinter("")
	// exhaust the open-file budget
	if err := f.open.Acquire(context.Background(), 2); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer f.open.Release(2)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := f.ClassifyPath(ctx, "/tmp/index.php"); err == nil {
		t.Error("ClassifyPath() expected error while budget is exhausted, got nil")
	}
}
