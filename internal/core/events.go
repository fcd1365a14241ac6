package core

import "time"

// =============================================================================
// Unified Agent Events (normalized view of every harness dialect)
// =============================================================================

// EventKind defines the kind of a normalized agent event. The set is closed:
// every harness translator maps its dialect into these kinds and consumers
// never see anything else.
type EventKind string

const (
	// EventSessionStarted carries a session identifier the turn is now using.
	// May fire more than once per turn; the last value wins.
	EventSessionStarted EventKind = "session.started"

	// EventTurnStarted indicates the agent acknowledged the turn and began work.
	// Delivered at most once per turn.
	EventTurnStarted EventKind = "turn.started"

	// EventTextDelta carries an incremental chunk of assistant text.
	EventTextDelta EventKind = "text.delta"

	// EventToolUse indicates the agent invoked a tool.
	EventToolUse EventKind = "tool.use"

	// EventOutOfTokens indicates the agent reported quota/credit exhaustion.
	EventOutOfTokens EventKind = "out_of_tokens"

	// EventError indicates a protocol or agent-reported error. The stream
	// continues; only the terminal event decides the turn's outcome.
	EventError EventKind = "error"

	// EventTurnComplete marks the turn as finished, carrying its outcome.
	// Delivered at most once per turn, observed or synthesized.
	EventTurnComplete EventKind = "turn.complete"

	// EventStderr carries one line of the process's standard error output.
	EventStderr EventKind = "stderr"
)

// ToolUse describes a tool invocation reported by the agent.
type ToolUse struct {
	// Name is the tool name as the harness reported it ("Bash", "file_change", ...).
	Name string `json:"name"`

	// Input holds the tool arguments, decoded as loosely-typed JSON.
	Input map[string]any `json:"input,omitempty"`

	// DisplayText is a short human-readable rendering of the invocation.
	DisplayText string `json:"display_text,omitempty"`
}

// AgentEvent is one normalized event from a turn. Exactly the fields for the
// event's Kind are populated; the rest stay zero.
type AgentEvent struct {
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	// SessionID is set for session.started.
	SessionID string `json:"session_id,omitempty"`

	// Text is set for text.delta and stderr.
	Text string `json:"text,omitempty"`

	// Tool is set for tool.use.
	Tool *ToolUse `json:"tool,omitempty"`

	// Message is set for error and out_of_tokens.
	Message string `json:"message,omitempty"`

	// Reason is set for turn.complete.
	Reason CompletionReason `json:"reason,omitempty"`
}

// NewSessionStarted creates a session.started event.
func NewSessionStarted(sessionID string) AgentEvent {
	return AgentEvent{Kind: EventSessionStarted, Timestamp: time.Now(), SessionID: sessionID}
}

// NewTurnStarted creates a turn.started event.
func NewTurnStarted() AgentEvent {
	return AgentEvent{Kind: EventTurnStarted, Timestamp: time.Now()}
}

// NewTextDelta creates a text.delta event.
func NewTextDelta(text string) AgentEvent {
	return AgentEvent{Kind: EventTextDelta, Timestamp: time.Now(), Text: text}
}

// NewToolUse creates a tool.use event.
func NewToolUse(name string, input map[string]any, displayText string) AgentEvent {
	return AgentEvent{
		Kind:      EventToolUse,
		Timestamp: time.Now(),
		Tool:      &ToolUse{Name: name, Input: input, DisplayText: displayText},
	}
}

// NewOutOfTokens creates an out_of_tokens event.
func NewOutOfTokens(message string) AgentEvent {
	return AgentEvent{Kind: EventOutOfTokens, Timestamp: time.Now(), Message: message}
}

// NewError creates an error event.
func NewError(message string) AgentEvent {
	return AgentEvent{Kind: EventError, Timestamp: time.Now(), Message: message}
}

// NewTurnComplete creates a turn.complete event.
func NewTurnComplete(reason CompletionReason) AgentEvent {
	return AgentEvent{Kind: EventTurnComplete, Timestamp: time.Now(), Reason: reason}
}

// NewStderr creates a stderr event for one line of process stderr.
func NewStderr(text string) AgentEvent {
	return AgentEvent{Kind: EventStderr, Timestamp: time.Now(), Text: text}
}

// =============================================================================
// Completion
// =============================================================================

// CompletionReason is the single authoritative outcome of a turn.
type CompletionReason string

const (
	ReasonSuccess     CompletionReason = "success"
	ReasonOutOfTokens CompletionReason = "out_of_tokens"
	ReasonError       CompletionReason = "error"
	ReasonKilled      CompletionReason = "killed"
)

// reasonRank orders tracked reasons for escalation: a tracked reason is only
// replaced by a strictly stronger one, so error never downgrades to success
// and out_of_tokens is never diluted to a generic error.
var reasonRank = map[CompletionReason]int{
	ReasonSuccess:     0,
	ReasonError:       1,
	ReasonOutOfTokens: 2,
	ReasonKilled:      3,
}

// Stronger reports whether a outranks b for reason escalation.
func (a CompletionReason) Stronger(b CompletionReason) bool {
	return reasonRank[a] > reasonRank[b]
}

// Completion is the final record of one turn. It is produced exactly once,
// after which the turn's event sequence is closed.
type Completion struct {
	// Reason is the outcome callers should branch on.
	Reason CompletionReason `json:"reason"`

	// ExitCode is the process exit code, or nil when the process was
	// terminated by a signal.
	ExitCode *int `json:"exit_code"`

	// SessionID is the last session identifier observed during the turn,
	// or the initial identifier if the agent never reported one.
	SessionID string `json:"session_id"`

	// Spec is the command specification the turn ran with.
	Spec CommandSpec `json:"spec"`
}
