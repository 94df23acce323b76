// Package draft cleans raw model output into send-ready text.
package draft

import (
	"regexp"
	"strings"
)

// MaxShortFormLines caps slack/linkedin drafts.
const MaxShortFormLines = 6

var (
	openFenceRe  = regexp.MustCompile("^```(?:\\w+)?[ \t]*\n?")
	closeFenceRe = regexp.MustCompile("\n?[ \t]*```$")
	preambleRe   = regexp.MustCompile(`(?im)^[ \t]*(here(?:'|’)s|here is)\b.*\n+`)
	labelRe      = regexp.MustCompile(`(?im)^[ \t]*(draft|email draft|message)[ \t]*:[ \t]*\n+`)
	headerRe     = regexp.MustCompile(`(?im)^[ \t]*#{1,6}[ \t]+.*\n+`)
	crlfRe       = regexp.MustCompile(`\r\n`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// Normalize strips wrapping code fences, conversational preamble, and
// markdown headers, then normalizes whitespace. Short-form drafts are capped
// at MaxShortFormLines non-empty lines. Normalize is idempotent: applying it
// to already-clean text returns the text unchanged.
func Normalize(text string, shortForm bool) string {
	cleaned := strings.TrimSpace(text)

	// Stripping a preamble can expose a fence (and vice versa), so run the
	// cleanup to a fixpoint instead of a single pass.
	for i := 0; i < 4; i++ {
		next := cleanupPass(cleaned)
		if next == cleaned {
			break
		}
		cleaned = next
	}

	if shortForm {
		cleaned = capLines(cleaned, MaxShortFormLines)
	}

	return cleaned
}

func cleanupPass(text string) string {
	cleaned := openFenceRe.ReplaceAllString(text, "")
	cleaned = closeFenceRe.ReplaceAllString(cleaned, "")

	cleaned = preambleRe.ReplaceAllString(cleaned, "")
	cleaned = labelRe.ReplaceAllString(cleaned, "")
	cleaned = headerRe.ReplaceAllString(cleaned, "")

	cleaned = crlfRe.ReplaceAllString(cleaned, "\n")
	return strings.TrimSpace(blankRunRe.ReplaceAllString(cleaned, "\n\n"))
}

func capLines(text string, limit int) string {
	lines := strings.Split(text, "\n")
	nonEmpty := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}
	if len(nonEmpty) <= limit {
		return text
	}
	return strings.TrimSpace(strings.Join(nonEmpty[:limit], "\n"))
}
