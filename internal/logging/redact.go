package logging

import "regexp"

// Agent CLIs read provider credentials from their environment and are prone
// to echoing them back in error output, which this tool then logs. Every
// message and string attribute passes through Redact before it is written.
var redactPatterns = []*regexp.Regexp{
	// Anthropic (claude)
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{40,}`),
	// OpenAI (codex)
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	// Google AI (gemini)
	regexp.MustCompile(`AIza[A-Za-z0-9_-]{35}`),
	// GitHub tokens (provider auth used by opencode)
	regexp.MustCompile(`gh[opsu]_[A-Za-z0-9]{36}`),
	// Generic credential shapes
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`(?i)api[_-]?key["'\s:=]+[A-Za-z0-9_-]{20,}`),
	regexp.MustCompile(`(?i)token["'\s:=]+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`(?i)password["'\s:=]+[^\s"']{8,}`),
}

const redactedPlaceholder = "[REDACTED]"

// Redact masks credential-shaped substrings.
func Redact(s string) string {
	for _, p := range redactPatterns {
		s = p.ReplaceAllString(s, redactedPlaceholder)
	}
	return s
}
