package host

import "os"

// Runtime identifies the agent that invoked multi-draft. It decides which
// model pair to call so that neither comparison model shares a provider
// family with the host.
type Runtime string

const (
	RuntimeClaudeCode Runtime = "claude-code"
	RuntimeCodexCLI   Runtime = "codex-cli"
	RuntimeUnknown    Runtime = "unknown"
)

const (
	defaultGPTModelID    = "openai/gpt-5.2"
	defaultGeminiModelID = "google/gemini-3.1-pro-preview"
	defaultOpusModelID   = "anthropic/claude-opus-4-6"
)

// Env vars set by the Codex CLI sandbox.
var codexEnvVars = []string{
	"CODEX",
	"CODEX_SANDBOX",
	"CODEX_MANAGED_BY_NPM",
	"CODEX_INTERNAL_ORIGINATOR_OVERRIDE",
	"CODEX_SANDBOX_NETWORK_DISABLED",
}

type Model struct {
	ID    string
	Label string
}

// Pair is the two comparison models for one invocation.
type Pair struct {
	ModelA Model
	ModelB Model
}

// Detect resolves the host runtime. forceCodex wins over any environment
// signal. An unrecognized environment never fails; it maps to
// RuntimeUnknown and callers fall back to the default pair.
func Detect(forceCodex bool) Runtime {
	if forceCodex {
		return RuntimeCodexCLI
	}
	for _, key := range codexEnvVars {
		if os.Getenv(key) != "" {
			return RuntimeCodexCLI
		}
	}
	if os.Getenv("CLAUDECODE") != "" {
		return RuntimeClaudeCode
	}
	return RuntimeUnknown
}

// DefaultPair selects the comparison models for a runtime.
//
// In Codex the base model is already GPT-5.2, so the pair is Opus + Gemini.
// Under Claude Code (or an unknown host) the pair is GPT + Gemini, keeping
// the Claude family out of its own benchmark.
func DefaultPair(rt Runtime) Pair {
	if rt == RuntimeCodexCLI {
		return Pair{
			ModelA: Model{ID: opusModelID(), Label: "Claude Opus 4.6"},
			ModelB: Model{ID: defaultGeminiModelID, Label: "Gemini 3.1 Pro"},
		}
	}
	return Pair{
		ModelA: Model{ID: defaultGPTModelID, Label: "GPT-5.2"},
		ModelB: Model{ID: defaultGeminiModelID, Label: "Gemini 3.1 Pro"},
	}
}

func opusModelID() string {
	if override := os.Getenv("OPENROUTER_OPUS_MODEL"); override != "" {
		return override
	}
	return defaultOpusModelID
}
