package sanitizer

import (
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"Tags and whitespace noise",
			"some skdnfdsfk<html><meta></meta><body></body></html> js\n\n\n\n\n\n\nn\\t\t\t\t\t\t\t\t\t\t\t aaaa bbbb cccc",
			"some skdnfdsfk jsn\\t aaaa bbbb cccc",
		},
		{"Plain text", "hello world", "hello world"},
		{"Empty", "", ""},
		{"Script dropped", "<p>visible</p><script>var hidden = 1;</script>", "visible"},
		{"Style dropped", "<style>body{color:red}</style><b>bold</b> text", "bold text"},
		{"Entities decoded", "<p>a &amp; b</p>", "a & b"},
		{"Line endings", "one\r\ntwo\nthree", "onetwothree"},
		{"PHP source", "<?php echo 'x'; ?>\n<div>page</div>", "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip([]byte(tt.input)); got != tt.expected {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
