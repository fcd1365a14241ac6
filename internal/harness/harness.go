// Package harness holds everything agentwire knows about the individual
// coding-agent CLIs: how to build a command line for them, how to read a
// session identifier out of their records, and how to translate their JSON
// dialects into the unified event set. Adding a harness means adding one
// translator and one spec builder here; nothing outside this package
// branches on agent-specific shapes.
package harness

import (
	"github.com/agentwire/agentwire/internal/core"
)

// ID identifies one supported agent CLI protocol.
type ID string

const (
	Claude   ID = "claude"
	Codex    ID = "codex"
	OpenCode ID = "opencode"
	Gemini   ID = "gemini"
)

// All returns the supported harness identifiers in stable order.
func All() []ID {
	return []ID{Claude, Codex, OpenCode, Gemini}
}

// Parse maps a user-supplied name to a harness ID.
func Parse(name string) (ID, error) {
	switch ID(name) {
	case Claude, Codex, OpenCode, Gemini:
		return ID(name), nil
	}
	return "", core.ErrValidation(core.CodeUnknownHarness, "unknown harness: "+name)
}

// Translator converts one raw JSON record of a harness dialect into zero, one,
// or two unified events. Unknown discriminants yield nil: new record types in
// an agent CLI must never break consumers.
type Translator interface {
	// Harness returns the dialect this translator understands.
	Harness() ID

	// Translate maps a single decoded record (raw line bytes, already known
	// to be valid JSON) to unified events.
	Translate(line []byte) []core.AgentEvent
}

// translators is the closed dispatch table; selection is by explicit harness
// tag, never by probing record shapes at call sites.
var translators = map[ID]Translator{
	Claude:   claudeTranslator{},
	Codex:    codexTranslator{},
	OpenCode: openCodeTranslator{},
	Gemini:   geminiTranslator{},
}

// TranslatorFor returns the translator for a harness.
func TranslatorFor(id ID) (Translator, error) {
	tr, ok := translators[id]
	if !ok {
		return nil, core.ErrValidation(core.CodeUnknownHarness, "no translator for harness: "+string(id))
	}
	return tr, nil
}

// SessionID extracts a session/thread identifier from a decoded record, using
// the locations the given harness is known to publish it in. Returns "" when
// the record carries none, or when the value fails the safe-id check.
func SessionID(id ID, record map[string]any) string {
	var candidate string
	switch id {
	case Claude:
		candidate = stringField(record, "session_id")
	case Codex:
		candidate = firstString(
			stringField(record, "thread_id"),
			stringField(record, "session_id"),
		)
	case OpenCode:
		candidate = firstString(
			stringField(record, "sessionID"),
			stringField(record, "session_id"),
			nestedStringField(record, "info", "id"),
		)
	case Gemini:
		candidate = firstString(
			stringField(record, "session_id"),
			nestedStringField(record, "session", "id"),
		)
	}

	if candidate == "" || !core.IsSafeSessionID(candidate) {
		return ""
	}
	return candidate
}

func stringField(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}

func nestedStringField(record map[string]any, outer, inner string) string {
	sub, _ := record[outer].(map[string]any)
	if sub == nil {
		return ""
	}
	s, _ := sub[inner].(string)
	return s
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
