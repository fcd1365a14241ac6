package harness

import (
	"encoding/json"
	"strings"

	"github.com/agentwire/agentwire/internal/core"
)

// codexTranslator handles the Codex CLI's `exec --json` dialect.
// Real format:
//
//	{"type":"thread.started","thread_id":"..."}
//	{"type":"turn.started"}
//	{"type":"item.started","item":{"type":"command_execution","command":"ls"}}
//	{"type":"item.completed","item":{"type":"command_execution","command":"ls","exit_code":0}}
//	{"type":"item.completed","item":{"type":"agent_message","text":"..."}}
//	{"type":"turn.completed","usage":{"input_tokens":...,"output_tokens":...}}
//	{"type":"turn.failed","error":{"message":"..."}}
type codexTranslator struct{}

type codexStreamRecord struct {
	Type  string      `json:"type"`
	Item  *codexItem  `json:"item,omitempty"`
	Error *codexError `json:"error,omitempty"`
}

type codexItem struct {
	Type     string `json:"type"` // "command_execution", "agent_message", "file_change", "mcp_tool_call", "web_search"
	Command  string `json:"command,omitempty"`
	Text     string `json:"text,omitempty"`
	Path     string `json:"path,omitempty"`
	Server   string `json:"server,omitempty"`
	Tool     string `json:"tool,omitempty"`
	Query    string `json:"query,omitempty"`
	ExitCode *int   `json:"exit_code,omitempty"`
}

type codexError struct {
	Message string `json:"message"`
}

func (codexTranslator) Harness() ID { return Codex }

func (codexTranslator) Translate(line []byte) []core.AgentEvent {
	var record codexStreamRecord
	if err := json.Unmarshal(line, &record); err != nil {
		return nil
	}

	switch record.Type {
	case "turn.started":
		return []core.AgentEvent{core.NewTurnStarted()}

	case "item.started":
		if record.Item != nil && record.Item.Type == "command_execution" {
			return []core.AgentEvent{codexCommandEvent(record.Item, "Running: ")}
		}

	case "item.completed":
		if record.Item == nil {
			return nil
		}
		switch record.Item.Type {
		case "agent_message":
			if record.Item.Text != "" {
				return []core.AgentEvent{core.NewTextDelta(record.Item.Text)}
			}
		case "command_execution":
			return []core.AgentEvent{codexCommandEvent(record.Item, "Ran: ")}
		case "file_change":
			display := "Editing file"
			if record.Item.Path != "" {
				display = "Editing " + record.Item.Path
			}
			return []core.AgentEvent{core.NewToolUse("file_change", codexItemInput(record.Item), display)}
		case "mcp_tool_call":
			name := record.Item.Tool
			if name == "" {
				name = "mcp_tool_call"
			}
			return []core.AgentEvent{core.NewToolUse(name, codexItemInput(record.Item), "MCP tool: "+name)}
		case "web_search":
			return []core.AgentEvent{core.NewToolUse("web_search", codexItemInput(record.Item), "Searching: "+record.Item.Query)}
		}

	case "turn.completed":
		return []core.AgentEvent{core.NewTurnComplete(core.ReasonSuccess)}

	case "turn.failed":
		var message string
		if record.Error != nil {
			message = record.Error.Message
		}
		return core.FailureEvents(message)

	case "error":
		var message string
		if record.Error != nil {
			message = record.Error.Message
		}
		return core.FailureEvents(message)
	}

	return nil
}

// codexCommandEvent maps a command execution item, shortening long shell
// invocations for display while keeping the full command in the input.
func codexCommandEvent(item *codexItem, verb string) core.AgentEvent {
	display := item.Command
	if len(display) > 60 {
		fields := strings.Fields(display)
		if len(fields) > 0 {
			display = fields[0]
		}
		if len(display) > 60 {
			display = display[:60] + "..."
		}
	}
	return core.NewToolUse("command_execution", codexItemInput(item), verb+display)
}

func codexItemInput(item *codexItem) map[string]any {
	input := make(map[string]any)
	if item.Command != "" {
		input["command"] = item.Command
	}
	if item.Path != "" {
		input["path"] = item.Path
	}
	if item.Server != "" {
		input["server"] = item.Server
	}
	if item.Tool != "" {
		input["tool"] = item.Tool
	}
	if item.Query != "" {
		input["query"] = item.Query
	}
	if item.ExitCode != nil {
		input["exit_code"] = *item.ExitCode
	}
	if len(input) == 0 {
		return nil
	}
	return input
}
