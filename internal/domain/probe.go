package domain

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/internal/filesystem"
	"github.com/IvanShishkin/webtrail/internal/sanitizer"
	"github.com/IvanShishkin/webtrail/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

const (
	// StatusUnresolvable is recorded when the domain name does not resolve
	StatusUnresolvable = http.StatusGone
	// StatusUnreachable is recorded for every other transport failure
	StatusUnreachable = http.StatusNotFound
)

// Prober samples the live response of a target
type Prober interface {
	Probe(ctx context.Context, target Target, protocol string) models.ProbeResult
}

// HTTPProber issues a single GET per probe. It never retries.
type HTTPProber struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	maxBody   int64
	logger    *zap.Logger
}

// NewHTTPProber creates a prober from configuration
func NewHTTPProber(cfg *config.Config, logger *zap.Logger) *HTTPProber {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeoutDuration(),
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: cfg.ConnectTimeoutDuration(),
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true, // site certificates are often self-signed or expired
		},
	}

	maxRedirects := cfg.MaxRedirects
	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.RequestTimeoutDuration(),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	var limiter *rate.Limiter
	if cfg.ProbeRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.ProbeRate), 1)
	}

	maxBody := filesystem.ParseSize(cfg.MaxBodySize)
	if maxBody <= 0 {
		maxBody = 2 * 1024 * 1024
	}

	return &HTTPProber{
		client:    client,
		limiter:   limiter,
		userAgent: cfg.UserAgent,
		maxBody:   maxBody,
		logger:    logger,
	}
}

// Probe fetches protocol://host/request_path. Failures are folded into the
// result: status 410 when the name does not resolve, 404 otherwise.
func (p *HTTPProber) Probe(ctx context.Context, target Target, protocol string) models.ProbeResult {
	url := target.URL(protocol)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return p.failure(url, err)
		}
	}

	start := time.Now()
	body, contentType, status, err := p.fetch(ctx, url)
	if err != nil {
		return p.failure(url, err)
	}
	elapsed := time.Since(start).Milliseconds()

	enc, label, _ := charset.DetermineEncoding(body, contentType)
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		decoded = body
	}
	content := sanitizer.Strip(decoded)

	p.logger.Debug("Processed external request",
		zap.String("url", url),
		zap.Int("status", status),
		zap.Int64("ms", elapsed))

	return models.ProbeResult{
		Content:      content,
		Encoding:     label,
		Size:         len(content),
		Status:       status,
		ResponseTime: elapsed,
	}
}

func (p *HTTPProber) fetch(ctx context.Context, url string) ([]byte, string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", 0, fmt.Errorf("create request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBody))
	if err != nil {
		return nil, "", 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), resp.StatusCode, nil
}

func (p *HTTPProber) failure(url string, err error) models.ProbeResult {
	status := FailureStatus(err)
	if status == StatusUnresolvable {
		p.logger.Debug("Host resolve problem", zap.String("url", url), zap.Error(err))
	} else {
		p.logger.Debug("Host problem, 404 fallback", zap.String("url", url), zap.Error(err))
	}
	return models.ProbeResult{Status: status}
}

// FailureStatus maps a transport error to its status bucket
func FailureStatus(err error) int {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return StatusUnresolvable
	}
	return StatusUnreachable
}
