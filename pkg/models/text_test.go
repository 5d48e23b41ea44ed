package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// encodeJSON encodes v the way the changeset JSON mirror does
func encodeJSON(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func TestText_JSON(t *testing.T) {
	tests := []struct {
		name     string
		content  Text
		wantJSON string
	}{
		{"Markup", Text("<?php echo 'Zażółć'; ?>\n"), `"<?php echo 'Zażółć'; ?>\n"`},
		{"Empty", Text{}, `""`},
		{"Windows-1250", Text{'z', 0xb3, 'o', 't', 'y'}, `{"base64":"erNvdHk="}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeJSON(t, tt.content)
			if data != tt.wantJSON {
				t.Errorf("Encode() = %s, want %s", data, tt.wantJSON)
			}

			var got Text
			if err := json.Unmarshal([]byte(data), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", data, err)
			}
			if !bytes.Equal(got, tt.content) {
				t.Errorf("Unmarshal(%s) = %q, want %q", data, got, tt.content)
			}
		})
	}
}

func TestFileEntry_ContentReadable(t *testing.T) {
	entry := FileEntry{Path: "/home/alice/domains/domena.pl/public_html/index.php", Content: Text("<?php phpinfo();")}
	data := encodeJSON(t, entry)
	if !strings.Contains(data, `"content":"<?php phpinfo();"`) {
		t.Errorf("Encode() = %s, want content as a plain string", data)
	}
}

func TestText_UnmarshalInvalid(t *testing.T) {
	for _, input := range []string{`42`, `{"base64":"***"}`} {
		var got Text
		if err := json.Unmarshal([]byte(input), &got); err == nil {
			t.Errorf("Unmarshal(%s) error = nil, want error", input)
		}
	}
}
