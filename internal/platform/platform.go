package platform

import (
	"regexp"
	"strings"
)

// Profile is the token/timeout preset for one publishing surface.
type Profile struct {
	MaxTokens      int
	TimeoutSeconds int
	// Floor flips MaxTokens from a cap into a minimum (long-form surfaces).
	Floor bool
	// ShortForm platforms get line-capped drafts and tighter timeouts.
	ShortForm bool
}

// Table maps a platform tag to its profile. Read-only after construction.
type Table map[string]Profile

func DefaultTable() Table {
	return Table{
		"slack":    {MaxTokens: 250, TimeoutSeconds: 35, ShortForm: true},
		"linkedin": {MaxTokens: 300, TimeoutSeconds: 35, ShortForm: true},
		"email":    {MaxTokens: 800, TimeoutSeconds: 90},
		"substack": {MaxTokens: 2500, TimeoutSeconds: 90, Floor: true},
		"article":  {MaxTokens: 2500, TimeoutSeconds: 90, Floor: true},
	}
}

var (
	platformLineRe = regexp.MustCompile(`(?im)^\s*platform\s*:\s*(slack|email|linkedin|substack|article|other)\b`)
	platformTagRe  = regexp.MustCompile(`(?im)^\s*<platform>\s*(slack|email|linkedin|substack|article|other)\b`)
)

// Infer scans the prompt for a declared platform marker. It accepts either a
// "Platform: slack" line or a "<platform> slack" block. Returns "" when no
// marker is present or the marker is "other".
func Infer(prompt string) string {
	for _, re := range []*regexp.Regexp{platformLineRe, platformTagRe} {
		if m := re.FindStringSubmatch(prompt); m != nil {
			tag := strings.ToLower(m[1])
			if tag == "other" {
				return ""
			}
			return tag
		}
	}
	return ""
}

// Request carries the caller-visible request parameters through resolution.
// ExplicitMaxTokens/ExplicitTimeout mark values the caller set on the command
// line; explicit input always wins over platform-inferred defaults.
type Request struct {
	MaxTokens         int
	TimeoutSeconds    int
	ExplicitMaxTokens bool
	ExplicitTimeout   bool
}

// Resolve applies the platform profile to a request. Caps apply as a min
// against the requested budget, long-form floors as a max, and short-form
// platforms tighten the timeout. Explicitly supplied values are untouched.
func (t Table) Resolve(tag string, req Request) Request {
	profile, ok := t[tag]
	if !ok {
		return req
	}

	out := req
	if !req.ExplicitMaxTokens {
		if profile.Floor {
			out.MaxTokens = max(req.MaxTokens, profile.MaxTokens)
		} else {
			out.MaxTokens = min(req.MaxTokens, profile.MaxTokens)
		}
	}
	if profile.ShortForm && !req.ExplicitTimeout {
		out.TimeoutSeconds = min(req.TimeoutSeconds, profile.TimeoutSeconds)
	}
	return out
}

// ShortForm reports whether the tag is a line-capped platform.
func (t Table) ShortForm(tag string) bool {
	return t[tag].ShortForm
}
