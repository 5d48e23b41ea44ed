package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IvanShishkin/webtrail/internal/config"
	"go.uber.org/zap"
)

func testProbeConfig() *config.Config {
	return &config.Config{
		ConnectTimeout: 2500,
		RequestTimeout: 5000,
		MaxBodySize:    "1K",
		UserAgent:      "webtrail-test",
	}
}

// targetFor points a target at a test server
func targetFor(t *testing.T, srv *httptest.Server, path string) Target {
	t.Helper()
	host := strings.TrimPrefix(strings.TrimPrefix(srv.URL, "http://"), "https://")
	return Target{Name: host, RequestPath: path}
}

func TestHTTPProber_Probe(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/index.php" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><h1>Witaj</h1>\n<p>świecie</p></body></html>")
	}))
	defer srv.Close()

	p := NewHTTPProber(testProbeConfig(), zap.NewNop())
	result := p.Probe(context.Background(), targetFor(t, srv, "/index.php"), "http")

	if result.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", result.Status, http.StatusOK)
	}
	if result.Content != "Witajświecie" {
		t.Errorf("Content = %q, want %q", result.Content, "Witajświecie")
	}
	if result.Size != len(result.Content) {
		t.Errorf("Size = %d, want %d", result.Size, len(result.Content))
	}
	if result.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want %q", result.Encoding, "utf-8")
	}
	if gotUA != "webtrail-test" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "webtrail-test")
	}
}

func TestHTTPProber_LegacyCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-2")
		// "łąka" in ISO-8859-2
		w.Write([]byte{'<', 'p', '>', 0xb3, 0xb1, 'k', 'a', '<', '/', 'p', '>'})
	}))
	defer srv.Close()

	p := NewHTTPProber(testProbeConfig(), zap.NewNop())
	result := p.Probe(context.Background(), targetFor(t, srv, "/"), "http")

	if result.Content != "łąka" {
		t.Errorf("Content = %q, want %q", result.Content, "łąka")
	}
	if result.Encoding != "iso-8859-2" {
		t.Errorf("Encoding = %q, want %q", result.Encoding, "iso-8859-2")
	}
}

func TestHTTPProber_RedirectNotFollowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
			return
		}
		fmt.Fprint(w, "new page")
	}))
	defer srv.Close()

	cfg := testProbeConfig()
	p := NewHTTPProber(cfg, zap.NewNop())
	if got := p.Probe(context.Background(), targetFor(t, srv, "/old"), "http").Status; got != http.StatusMovedPermanently {
		t.Errorf("Status with max_redirects=0 = %d, want %d", got, http.StatusMovedPermanently)
	}

	cfg.MaxRedirects = 1
	p = NewHTTPProber(cfg, zap.NewNop())
	result := p.Probe(context.Background(), targetFor(t, srv, "/old"), "http")
	if result.Status != http.StatusOK || result.Content != "new page" {
		t.Errorf("Probe with max_redirects=1 = %d %q, want %d %q", result.Status, result.Content, http.StatusOK, "new page")
	}
}

func TestHTTPProber_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("a", 4096))
	}))
	defer srv.Close()

	p := NewHTTPProber(testProbeConfig(), zap.NewNop())
	result := p.Probe(context.Background(), targetFor(t, srv, "/"), "http")
	if result.Size != 1024 {
		t.Errorf("Size = %d, want %d", result.Size, 1024)
	}
}

func TestHTTPProber_TLSUnverified(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "secure")
	}))
	defer srv.Close()

	p := NewHTTPProber(testProbeConfig(), zap.NewNop())
	result := p.Probe(context.Background(), targetFor(t, srv, "/"), "https")
	if result.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", result.Status, http.StatusOK)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestHTTPProber_FailureBuckets(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"DNS failure", &net.DNSError{Err: "no such host", Name: "gone.example", IsNotFound: true}, StatusUnresolvable},
		{"Connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, StatusUnreachable},
		{"Other", errors.New("tls: handshake failure"), StatusUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewHTTPProber(testProbeConfig(), zap.NewNop())
			p.client.Transport = roundTripFunc(func(*http.Request) (*http.Response, error) {
				return nil, tt.err
			})

			result := p.Probe(context.Background(), Target{Name: "gone.example", RequestPath: "/"}, "http")
			if result.Status != tt.expected {
				t.Errorf("Status = %d, want %d", result.Status, tt.expected)
			}
			if result.Size != 0 || result.Content != "" {
				t.Errorf("failed probe kept content: size=%d content=%q", result.Size, result.Content)
			}
		})
	}
}

func TestFailureStatus(t *testing.T) {
	wrapped := fmt.Errorf("get: %w", &net.DNSError{Err: "no such host"})
	if got := FailureStatus(wrapped); got != StatusUnresolvable {
		t.Errorf("FailureStatus(wrapped dns) = %d, want %d", got, StatusUnresolvable)
	}
	if got := FailureStatus(errors.New("boom")); got != StatusUnreachable {
		t.Errorf("FailureStatus(other) = %d, want %d", got, StatusUnreachable)
	}
}
