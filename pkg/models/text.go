package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Text is retained file content. It marshals to a plain JSON string when the
// bytes are valid UTF-8 and to {"base64": "..."} otherwise, so legacy-encoded
// samples survive a JSON round trip unchanged.
type Text []byte

type encodedText struct {
	Base64 string `json:"base64"`
}

func (t Text) MarshalJSON() ([]byte, error) {
	var v any = encodedText{Base64: base64.StdEncoding.EncodeToString(t)}
	if utf8.Valid(t) {
		v = string(t)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var enc encodedText
	if err := json.Unmarshal(data, &enc); err != nil {
		return fmt.Errorf("content is neither a string nor base64 object: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(enc.Base64)
	if err != nil {
		return fmt.Errorf("failed to decode content: %w", err)
	}
	*t = raw
	return nil
}
