package ai

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IvanShishkin/webtrail/internal/diff"
)

// segmentLimit caps a single added or removed run inside the prompt
const segmentLimit = 600

// LanguageInstruction returns the language instruction for prompts
func LanguageInstruction(lang string) string {
	switch lang {
	case "ru":
		return "\n\nIMPORTANT: Respond in Russian (Русский)."
	case "es":
		return "\n\nIMPORTANT: Respond in Spanish (Español)."
	case "de":
		return "\n\nIMPORTANT: Respond in German (Deutsch)."
	case "zh":
		return "\n\nIMPORTANT: Respond in Chinese (中文)."
	case "pl":
		return "\n\nIMPORTANT: Respond in Polish (Polski)."
	default:
		return "" // English is default, no extra instruction needed
	}
}

// GetLanguageName returns the display name for a language code
func GetLanguageName(lang string) string {
	switch lang {
	case "ru":
		return "Русский"
	case "es":
		return "Español"
	case "de":
		return "Deutsch"
	case "zh":
		return "中文"
	case "pl":
		return "Polski"
	default:
		return "English"
	}
}

// SummarySystemPrompt frames the request for a change description
const SummarySystemPrompt = `You review changes between two snapshots of website content on a shared hosting server.
Each snapshot holds text sampled from the files of a user's domains. You receive character statistics
and the runs of text that were added and removed between the older and the newer snapshot.

Write a short plain-text description (at most 8 sentences) of what changed:
- which kind of content changed (page text, markup, scripts, configuration)
- whether the change looks like routine editing, a bulk rewrite, or injected foreign text
- notable strings that appeared or disappeared (links, domains, script tags)

Describe only what you can see in the diff. Do not claim that a site is compromised or clean.
If the diff is empty or only whitespace changed, say so in one sentence.`

// BuildSummaryPrompt builds the user prompt for a diff. The second return
// value reports whether segment text was dropped to stay under maxChars.
func BuildSummaryPrompt(user string, r *diff.Result, lang string, maxChars int) (string, bool) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("USER: %s\n", user))
	sb.WriteString(fmt.Sprintf("OLDER: %s (%s)\n", r.Old, formatMillis(r.OldTimestamp)))
	sb.WriteString(fmt.Sprintf("NEWER: %s (%s)\n", r.New, formatMillis(r.NewTimestamp)))
	sb.WriteString(fmt.Sprintf("MODE: %s\n", r.Mode))
	sb.WriteString(fmt.Sprintf("STATS: %d unchanged, %d added, %d removed characters\n",
		r.Stats.Same, r.Stats.Added, r.Stats.Removed))

	truncated := false
	if r.Stats.Changed() {
		sb.WriteString("\nCHANGES:\n")
		for _, seg := range r.Segments {
			var marker string
			switch seg.Kind {
			case diff.Added:
				marker = "+ "
			case diff.Removed:
				marker = "- "
			default:
				continue
			}

			line := marker + oneLine(truncateText(seg.Text, segmentLimit)) + "\n"
			if maxChars > 0 && sb.Len()+len(line) > maxChars {
				truncated = true
				sb.WriteString("[remaining changes omitted]\n")
				break
			}
			sb.WriteString(line)
		}
	} else {
		sb.WriteString("\nNo added or removed text.\n")
	}

	sb.WriteString(LanguageInstruction(lang))
	return sb.String(), truncated
}

// truncateText cuts text to at most limit runes
func truncateText(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}

// oneLine keeps a segment on a single prompt line
func oneLine(text string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(text)
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "unknown time"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
