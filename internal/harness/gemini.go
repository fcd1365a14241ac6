package harness

import (
	"encoding/json"

	"github.com/agentwire/agentwire/internal/core"
)

// geminiTranslator handles the Gemini CLI's stream-json dialect. Gemini does
// not report tool invocations over this protocol, so the translator only
// produces lifecycle and text events:
//
//	{"type":"init","session_id":"...","model":"gemini-2.5-flash"}
//	{"type":"message","role":"assistant","content":"..."}
//	{"type":"result","status":"success"}
type geminiTranslator struct{}

type geminiStreamRecord struct {
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (geminiTranslator) Harness() ID { return Gemini }

func (geminiTranslator) Translate(line []byte) []core.AgentEvent {
	var record geminiStreamRecord
	if err := json.Unmarshal(line, &record); err != nil {
		return nil
	}

	switch record.Type {
	case "init":
		return []core.AgentEvent{core.NewTurnStarted()}

	case "message":
		if record.Role != "assistant" {
			return nil
		}
		text := record.Content
		if text == "" {
			text = record.Text
		}
		if text != "" {
			return []core.AgentEvent{core.NewTextDelta(text)}
		}

	case "result":
		if record.Status == "success" {
			return []core.AgentEvent{core.NewTurnComplete(core.ReasonSuccess)}
		}
		message := record.Error
		if message == "" {
			message = record.Status
		}
		return core.FailureEvents(message)

	case "error":
		return []core.AgentEvent{core.NewError(record.Error)}
	}

	return nil
}
