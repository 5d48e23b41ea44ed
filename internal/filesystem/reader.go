package filesystem

import (
	"crypto/sha1"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultReadBudget is how many bytes are sampled from the start of a file
const DefaultReadBudget = 65535

var validExtension = regexp.MustCompile(`\.(php[0-9]*|s?htm[l0-9]*|txt|inc|py|pl|pm|rb|sh|[xyua]ml|htaccess|rss|s?css|js|mo|po|ini|ps|l?a?tex|svg)$`)

// ValidExtension reports whether a file name is worth fingerprinting: a known
// web content extension, or no dot at all.
func ValidExtension(path string) bool {
	name := filepath.Base(path)
	if !strings.Contains(name, ".") {
		return true
	}
	return validExtension.MatchString(name)
}

// ReadFragment reads at most budget bytes from r
func ReadFragment(r io.Reader, budget int64) ([]byte, error) {
	if budget <= 0 {
		budget = DefaultReadBudget
	}
	content, err := io.ReadAll(io.LimitReader(r, budget))
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment: %w", err)
	}
	return content, nil
}

// RetainPrintable keeps tab, newline, carriage return and every byte from
// 0x20 upwards except DEL
func RetainPrintable(content []byte) []byte {
	out := make([]byte, 0, len(content))
	for _, b := range content {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
			out = append(out, b)
		case b >= 0x20 && b != 0x7f:
			out = append(out, b)
		}
	}
	return out
}

// CalculateSHA1 calculates SHA1 hash of content
func CalculateSHA1(content []byte) string {
	hash := sha1.Sum(content)
	return fmt.Sprintf("%x", hash)
}

// ParseSize parses size string (e.g., "650K", "1M") to bytes
func ParseSize(sizeStr string) int64 {
	if len(sizeStr) == 0 {
		return 0
	}

	// Get last character (unit)
	last := sizeStr[len(sizeStr)-1]
	var multiplier int64 = 1

	switch last {
	case 'K', 'k':
		multiplier = 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	}

	// Parse number
	var size int64
	fmt.Sscanf(sizeStr, "%d", &size)

	return size * multiplier
}
