package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsCodeFences(t *testing.T) {
	got := Normalize("```markdown\nHi team, quick update.\n```", false)
	assert.Equal(t, "Hi team, quick update.", got)

	got = Normalize("```\nPlain fenced text\n```", false)
	assert.Equal(t, "Plain fenced text", got)
}

func TestNormalizeStripsPreamble(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heres draft", "Here's a draft for you:\n\nHi team, shipping Friday.", "Hi team, shipping Friday."},
		{"here is", "Here is the message:\n\nHi team.", "Hi team."},
		{"draft label", "Draft:\n\nHi team.", "Hi team."},
		{"markdown header", "## Slack Update\n\nHi team.", "Hi team."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, false))
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	got := Normalize("Line one\r\n\r\n\r\n\r\nLine two\n", false)
	assert.Equal(t, "Line one\n\nLine two", got)
}

func TestNormalizeShortFormLineCap(t *testing.T) {
	lines := []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8"}
	got := Normalize(strings.Join(lines, "\n"), true)

	assert.Equal(t, "l1\nl2\nl3\nl4\nl5\nl6", got)

	// Under the cap nothing changes.
	short := "l1\nl2\nl3"
	assert.Equal(t, short, Normalize(short, true))
}

func TestNormalizeLongFormKeepsLines(t *testing.T) {
	lines := strings.Repeat("a line\n", 10)
	got := Normalize(lines, false)
	assert.Equal(t, 10, len(strings.Split(got, "\n")))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Here's a draft:\n\n```\n## Header\n\nHi team, update below.\nMore detail.\n```",
		"Plain already-clean text.\nSecond line.",
		strings.Repeat("line\n", 12),
	}

	for _, in := range inputs {
		for _, shortForm := range []bool{true, false} {
			once := Normalize(in, shortForm)
			twice := Normalize(once, shortForm)
			assert.Equal(t, once, twice, "Normalize must be a no-op on cleaned text")
		}
	}
}
