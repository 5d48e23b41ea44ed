package diff

import (
	"fmt"
	"html"
	"io"
	"strings"
	"time"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[38;5;245m"
	bgRed      = "\033[41m"
	bgGreen    = "\033[42m"
)

// RenderTerminal prints the old and new streams with removals and additions highlighted
func RenderTerminal(w io.Writer, r *Result, color bool) {
	header := func(label, c string, id fmt.Stringer, ts int64) {
		if color {
			fmt.Fprintf(w, "%s%s%s %s%s %s(%s)%s\n", colorBold, c, label, id, colorReset,
				colorGray, formatTimestamp(ts), colorReset)
		} else {
			fmt.Fprintf(w, "%s %s (%s)\n", label, id, formatTimestamp(ts))
		}
	}

	header("---", colorRed, r.Old, r.OldTimestamp)
	writeStream(w, r.OldStream(), Removed, color)
	fmt.Fprintln(w)

	header("+++", colorGreen, r.New, r.NewTimestamp)
	writeStream(w, r.NewStream(), Added, color)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\n%d unchanged, %d added, %d removed characters\n",
		r.Stats.Same, r.Stats.Added, r.Stats.Removed)
}

func writeStream(w io.Writer, segments []Segment, highlight Kind, color bool) {
	for _, seg := range segments {
		if seg.Kind != highlight {
			io.WriteString(w, seg.Text)
			continue
		}
		switch {
		case color && highlight == Removed:
			fmt.Fprintf(w, "%s%s%s", bgRed, seg.Text, colorReset)
		case color:
			fmt.Fprintf(w, "%s%s%s", bgGreen, seg.Text, colorReset)
		case highlight == Removed:
			fmt.Fprintf(w, "[-%s-]", seg.Text)
		default:
			fmt.Fprintf(w, "{+%s+}", seg.Text)
		}
	}
}

// RenderHTML writes a standalone page with the two streams side by side
func RenderHTML(w io.Writer, user string, r *Result) error {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>webtrail diff</title>
    <style>
        :root {
            --bg-primary: #0C0C0C;
            --bg-secondary: #161616;
            --text-primary: #ECECEC;
            --text-muted: #6B6B6B;
            --border-color: #2A2A2A;
            --removed-bg: #2A1515;
            --removed-color: #EF4444;
            --added-bg: #152A1A;
            --added-color: #22C55E;
        }
        body { background: var(--bg-primary); color: var(--text-primary); font-family: sans-serif; margin: 2rem; }
        .panes { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }
        .pane { background: var(--bg-secondary); border: 1px solid var(--border-color); padding: 1rem; }
        .pane pre { white-space: pre-wrap; word-break: break-all; font-family: monospace; }
        .meta { color: var(--text-muted); font-size: 0.85rem; }
        del { background: var(--removed-bg); color: var(--removed-color); text-decoration: none; }
        ins { background: var(--added-bg); color: var(--added-color); text-decoration: none; }
    </style>
</head>
<body>
`)
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(user))
	fmt.Fprintf(&sb, "<p class=\"meta\">%d unchanged, %d added, %d removed characters</p>\n",
		r.Stats.Same, r.Stats.Added, r.Stats.Removed)
	sb.WriteString("<div class=\"panes\">\n")

	pane := func(id fmt.Stringer, ts int64, segments []Segment, highlight Kind, tag string) {
		sb.WriteString("<div class=\"pane\">\n")
		fmt.Fprintf(&sb, "<p class=\"meta\">%s<br>%s</p>\n<pre>", html.EscapeString(id.String()), formatTimestamp(ts))
		for _, seg := range segments {
			text := html.EscapeString(seg.Text)
			if seg.Kind == highlight {
				fmt.Fprintf(&sb, "<%s>%s</%s>", tag, text, tag)
			} else {
				sb.WriteString(text)
			}
		}
		sb.WriteString("</pre>\n</div>\n")
	}
	pane(r.Old, r.OldTimestamp, r.OldStream(), Removed, "del")
	pane(r.New, r.NewTimestamp, r.NewStream(), Added, "ins")

	sb.WriteString("</div>\n</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05 UTC")
}
