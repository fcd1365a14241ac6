package core

import (
	"path/filepath"
	"regexp"
	"strings"
)

// TurnOptions are the caller-supplied inputs for one turn.
type TurnOptions struct {
	// Model is the model identifier passed to the agent CLI. Empty uses the
	// harness default.
	Model string

	// Prompt is the user prompt for this turn.
	Prompt string

	// SessionID is the session to create or resume. Empty means a fresh
	// identifier is generated for the turn.
	SessionID string

	// Resume continues the session named by SessionID instead of creating it.
	Resume bool

	// WorkDir is the working directory for the agent process.
	WorkDir string

	// ReasoningEffort requests a reasoning effort level. Ignored when the
	// model identifier already encodes one.
	ReasoningEffort string

	// OneShot requests single-response mode instead of a conversational turn.
	OneShot bool

	// Detached places the child in its own process group so it can be
	// signaled as a group.
	Detached bool

	// Yolo enables the harness's bypass-permissions mode.
	Yolo bool

	// ExtraArgs are appended to the argument vector verbatim.
	ExtraArgs []string

	// Env holds additional environment variables for the child process.
	Env map[string]string
}

const maxSessionIDLen = 128

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// IsSafeSessionID reports whether a session identifier is safe to adopt.
// Agent output is untrusted; identifiers are used in resume arguments and
// must never smuggle path traversal or flag-like content.
func IsSafeSessionID(sessionID string) bool {
	if sessionID == "" || len(sessionID) > maxSessionIDLen {
		return false
	}
	if strings.Contains(sessionID, "..") {
		return false
	}
	if strings.ContainsAny(sessionID, `/\`) {
		return false
	}
	if filepath.IsAbs(sessionID) {
		return false
	}
	return sessionIDPattern.MatchString(sessionID)
}
