package harness

import (
	"encoding/json"
	"strings"

	"github.com/agentwire/agentwire/internal/core"
)

// claudeTranslator handles Claude Code's stream-json dialect.
// Real format from `claude --print --output-format stream-json --verbose`:
//
//	{"type":"system","subtype":"init","session_id":"...","tools":["Bash","Glob",...]}
//	{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Bash","input":{...}}]}}
//	{"type":"assistant","message":{"content":[{"type":"text","text":"..."}]}}
//	{"type":"stream_event","event":{"type":"content_block_delta","delta":{"type":"text_delta","text":"..."}}}
//	{"type":"result","subtype":"success","result":"...","session_id":"..."}
type claudeTranslator struct{}

type claudeStreamRecord struct {
	Type    string            `json:"type"`
	Subtype string            `json:"subtype"`
	Message *claudeMessage    `json:"message,omitempty"`
	Event   *claudeInnerEvent `json:"event,omitempty"`
	Result  string            `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type claudeMessage struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type  string         `json:"type"`
	Name  string         `json:"name,omitempty"`  // for tool_use
	Text  string         `json:"text,omitempty"`  // for text
	Input map[string]any `json:"input,omitempty"` // for tool_use
}

type claudeInnerEvent struct {
	Type  string       `json:"type"`
	Delta *claudeDelta `json:"delta,omitempty"`
}

type claudeDelta struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// questionMarker prefixes re-emitted AskUserQuestion calls so text-only
// consumers still surface the question to the user.
const questionMarker = "[question]"

func (claudeTranslator) Harness() ID { return Claude }

func (claudeTranslator) Translate(line []byte) []core.AgentEvent {
	var record claudeStreamRecord
	if err := json.Unmarshal(line, &record); err != nil {
		return nil
	}

	var events []core.AgentEvent

	switch record.Type {
	case "system":
		if record.Subtype == "init" {
			events = append(events, core.NewTurnStarted())
		}

	case "assistant":
		if record.Message == nil {
			return nil
		}
		for _, content := range record.Message.Content {
			switch content.Type {
			case "text":
				if content.Text != "" {
					events = append(events, core.NewTextDelta(content.Text))
				}
			case "tool_use":
				events = append(events, claudeToolEvent(content))
			}
		}

	case "stream_event":
		if record.Event != nil && record.Event.Type == "content_block_delta" {
			if d := record.Event.Delta; d != nil && d.Type == "text_delta" && d.Text != "" {
				events = append(events, core.NewTextDelta(d.Text))
			}
		}

	case "result":
		if record.Subtype == "success" {
			events = append(events, core.NewTurnComplete(core.ReasonSuccess))
		} else {
			message := record.Error
			if message == "" {
				message = record.Result
			}
			if message == "" {
				message = record.Subtype
			}
			events = append(events, core.FailureEvents(message)...)
		}

	case "error":
		events = append(events, core.NewError(record.Error))
	}

	return events
}

// claudeToolEvent maps one tool_use content block. AskUserQuestion is
// re-emitted as a text delta carrying a marker instead of a tool event so
// consumers that only render text still show the question.
func claudeToolEvent(content claudeContent) core.AgentEvent {
	if content.Name == "AskUserQuestion" {
		question, _ := content.Input["question"].(string)
		if question == "" {
			if b, err := json.Marshal(content.Input); err == nil {
				question = string(b)
			}
		}
		return core.NewTextDelta(questionMarker + " " + strings.TrimSpace(question))
	}
	return core.NewToolUse(content.Name, content.Input, "Using tool: "+content.Name)
}
