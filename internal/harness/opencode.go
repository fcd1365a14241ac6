package harness

import (
	"encoding/json"
	"strings"

	"github.com/agentwire/agentwire/internal/core"
)

// openCodeTranslator handles the OpenCode CLI's `run --format json` dialect.
// OpenCode's record shapes shift between releases, so text and tool payloads
// are probed from several nested locations rather than decoded into one
// fixed struct:
//
//	{"type":"step_start","sessionID":"..."}
//	{"type":"text","text":"..."} or {"type":"text","part":{"text":"..."}}
//	{"type":"tool","tool":"bash","args":{...}}
//	{"type":"step_finish","reason":"stop"}
type openCodeTranslator struct{}

func (openCodeTranslator) Harness() ID { return OpenCode }

func (openCodeTranslator) Translate(line []byte) []core.AgentEvent {
	var record map[string]any
	if err := json.Unmarshal(line, &record); err != nil {
		return nil
	}

	switch stringField(record, "type") {
	case "step_start", "step-start":
		return []core.AgentEvent{core.NewTurnStarted()}

	case "text":
		if text := openCodeText(record); text != "" {
			return []core.AgentEvent{core.NewTextDelta(text)}
		}

	case "tool", "tool_use", "tool-invocation":
		return []core.AgentEvent{openCodeToolEvent(record)}

	case "step_finish", "step-finish":
		reason := strings.ToLower(firstString(
			stringField(record, "reason"),
			stringField(record, "finishReason"),
			nestedStringField(record, "part", "reason"),
		))
		switch reason {
		case "error", "failed", "failure", "abort", "aborted", "cancel", "canceled", "cancelled":
			return core.FailureEvents(firstString(openCodeError(record), reason))
		case "tool-calls", "tool_calls":
			// Pause before tool execution, not a terminal.
			return nil
		}
		return []core.AgentEvent{core.NewTurnComplete(core.ReasonSuccess)}

	case "error":
		return core.FailureEvents(openCodeError(record))
	}

	return nil
}

// openCodeText probes the locations a text record can carry its payload in.
func openCodeText(record map[string]any) string {
	return firstString(
		stringField(record, "text"),
		nestedStringField(record, "part", "text"),
		stringField(record, "content"),
	)
}

func openCodeToolEvent(record map[string]any) core.AgentEvent {
	name := firstString(
		stringField(record, "tool"),
		stringField(record, "name"),
		nestedStringField(record, "part", "tool"),
	)
	if name == "" {
		name = "tool"
	}

	input, _ := record["args"].(map[string]any)
	if input == nil {
		input, _ = record["input"].(map[string]any)
	}

	return core.NewToolUse(name, input, "Running: "+name)
}

func openCodeError(record map[string]any) string {
	if message, ok := record["error"].(string); ok {
		return message
	}
	return firstString(
		nestedStringField(record, "error", "message"),
		stringField(record, "message"),
	)
}
