// Package sanitizer reduces HTML or text content to its visible text.
package sanitizer

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var noise = strings.NewReplacer("\n", "", "\t", "", "\r", "")

// Strip drops every tag, the contents of script/style/noscript elements and
// all newline, tab and carriage return characters
func Strip(raw []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return noise.Replace(string(raw))
	}

	doc.Find("script, style, noscript, template").Remove()
	return noise.Replace(doc.Text())
}
