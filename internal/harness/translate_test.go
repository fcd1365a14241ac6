package harness

import (
	"strings"
	"testing"

	"github.com/agentwire/agentwire/internal/core"
)

func TestClaudeTranslate(t *testing.T) {
	tr := claudeTranslator{}

	tests := []struct {
		name     string
		line     string
		wantKind core.EventKind
		wantText string
		wantTool string
	}{
		{
			name:     "system init",
			line:     `{"type":"system","subtype":"init","session_id":"abc123","tools":["Bash","Glob"]}`,
			wantKind: core.EventTurnStarted,
		},
		{
			name:     "text content",
			line:     `{"type":"assistant","message":{"content":[{"type":"text","text":"Hello world"}]}}`,
			wantKind: core.EventTextDelta,
			wantText: "Hello world",
		},
		{
			name:     "tool_use",
			line:     `{"type":"assistant","message":{"content":[{"type":"tool_use","id":"toolu_123","name":"Bash","input":{"command":"ls"}}]}}`,
			wantKind: core.EventToolUse,
			wantTool: "Bash",
		},
		{
			name:     "stream text delta",
			line:     `{"type":"stream_event","event":{"type":"content_block_delta","delta":{"type":"text_delta","text":"chunk"}}}`,
			wantKind: core.EventTextDelta,
			wantText: "chunk",
		},
		{
			name:     "result success",
			line:     `{"type":"result","subtype":"success","result":"Done","session_id":"abc123"}`,
			wantKind: core.EventTurnComplete,
		},
		{
			name:     "error record",
			line:     `{"type":"error","error":"Connection failed"}`,
			wantKind: core.EventError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := tr.Translate([]byte(tt.line))
			if len(events) == 0 {
				t.Fatal("expected at least one event")
			}

			event := events[0]
			if event.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", event.Kind, tt.wantKind)
			}
			if tt.wantText != "" && event.Text != tt.wantText {
				t.Errorf("text = %q, want %q", event.Text, tt.wantText)
			}
			if tt.wantTool != "" {
				if event.Tool == nil || event.Tool.Name != tt.wantTool {
					t.Errorf("tool = %+v, want name %q", event.Tool, tt.wantTool)
				}
			}
		})
	}
}

func TestClaudeTranslate_ResultFailure(t *testing.T) {
	tr := claudeTranslator{}

	events := tr.Translate([]byte(`{"type":"result","subtype":"error_during_execution","error":"rate limit exceeded"}`))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Kind != core.EventOutOfTokens {
		t.Errorf("first kind = %v, want %v", events[0].Kind, core.EventOutOfTokens)
	}
	if events[1].Kind != core.EventTurnComplete {
		t.Errorf("second kind = %v, want %v", events[1].Kind, core.EventTurnComplete)
	}
	if events[1].Reason != core.ReasonOutOfTokens {
		t.Errorf("reason = %v, want %v", events[1].Reason, core.ReasonOutOfTokens)
	}
}

func TestClaudeTranslate_AskUserQuestion(t *testing.T) {
	tr := claudeTranslator{}

	line := `{"type":"assistant","message":{"content":[{"type":"tool_use","name":"AskUserQuestion","input":{"question":"Which branch?"}}]}}`
	events := tr.Translate([]byte(line))
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Kind != core.EventTextDelta {
		t.Errorf("kind = %v, want %v", events[0].Kind, core.EventTextDelta)
	}
	if !strings.HasPrefix(events[0].Text, questionMarker) {
		t.Errorf("text %q missing marker %q", events[0].Text, questionMarker)
	}
	if !strings.Contains(events[0].Text, "Which branch?") {
		t.Errorf("text %q missing question", events[0].Text)
	}
}

func TestClaudeTranslate_UnknownType(t *testing.T) {
	tr := claudeTranslator{}
	if events := tr.Translate([]byte(`{"type":"user","message":{}}`)); events != nil {
		t.Errorf("expected nil events, got %v", events)
	}
}

func TestCodexTranslate(t *testing.T) {
	tr := codexTranslator{}

	tests := []struct {
		name     string
		line     string
		wantKind core.EventKind
		wantText string
		wantTool string
	}{
		{
			name:     "turn started",
			line:     `{"type":"turn.started"}`,
			wantKind: core.EventTurnStarted,
		},
		{
			name:     "command start",
			line:     `{"type":"item.started","item":{"type":"command_execution","command":"ls -la"}}`,
			wantKind: core.EventToolUse,
			wantTool: "command_execution",
		},
		{
			name:     "command finish",
			line:     `{"type":"item.completed","item":{"type":"command_execution","command":"ls -la","exit_code":0}}`,
			wantKind: core.EventToolUse,
			wantTool: "command_execution",
		},
		{
			name:     "agent message",
			line:     `{"type":"item.completed","item":{"type":"agent_message","text":"All done."}}`,
			wantKind: core.EventTextDelta,
			wantText: "All done.",
		},
		{
			name:     "file change",
			line:     `{"type":"item.completed","item":{"type":"file_change","path":"main.go"}}`,
			wantKind: core.EventToolUse,
			wantTool: "file_change",
		},
		{
			name:     "mcp tool call",
			line:     `{"type":"item.completed","item":{"type":"mcp_tool_call","server":"github","tool":"create_issue"}}`,
			wantKind: core.EventToolUse,
			wantTool: "create_issue",
		},
		{
			name:     "web search",
			line:     `{"type":"item.completed","item":{"type":"web_search","query":"go context cancellation"}}`,
			wantKind: core.EventToolUse,
			wantTool: "web_search",
		},
		{
			name:     "turn completed",
			line:     `{"type":"turn.completed","usage":{"input_tokens":100,"output_tokens":50}}`,
			wantKind: core.EventTurnComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := tr.Translate([]byte(tt.line))
			if len(events) == 0 {
				t.Fatal("expected at least one event")
			}

			event := events[0]
			if event.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", event.Kind, tt.wantKind)
			}
			if tt.wantText != "" && event.Text != tt.wantText {
				t.Errorf("text = %q, want %q", event.Text, tt.wantText)
			}
			if tt.wantTool != "" {
				if event.Tool == nil || event.Tool.Name != tt.wantTool {
					t.Errorf("tool = %+v, want name %q", event.Tool, tt.wantTool)
				}
			}
		})
	}
}

func TestCodexTranslate_TurnFailed(t *testing.T) {
	tr := codexTranslator{}

	events := tr.Translate([]byte(`{"type":"turn.failed","error":{"message":"429 Too Many Requests"}}`))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Kind != core.EventOutOfTokens {
		t.Errorf("first kind = %v, want %v", events[0].Kind, core.EventOutOfTokens)
	}
	if events[1].Reason != core.ReasonOutOfTokens {
		t.Errorf("reason = %v, want %v", events[1].Reason, core.ReasonOutOfTokens)
	}
}

func TestCodexTranslate_ThreadStartedYieldsNoEvents(t *testing.T) {
	tr := codexTranslator{}
	if events := tr.Translate([]byte(`{"type":"thread.started","thread_id":"th_123"}`)); events != nil {
		t.Errorf("expected nil events, got %v", events)
	}
}

func TestOpenCodeTranslate(t *testing.T) {
	tr := openCodeTranslator{}

	tests := []struct {
		name     string
		line     string
		wantKind core.EventKind
		wantText string
		wantTool string
	}{
		{
			name:     "step start",
			line:     `{"type":"step_start","sessionID":"ses_42"}`,
			wantKind: core.EventTurnStarted,
		},
		{
			name:     "top-level text",
			line:     `{"type":"text","text":"Hello"}`,
			wantKind: core.EventTextDelta,
			wantText: "Hello",
		},
		{
			name:     "nested part text",
			line:     `{"type":"text","part":{"text":"nested"}}`,
			wantKind: core.EventTextDelta,
			wantText: "nested",
		},
		{
			name:     "content text",
			line:     `{"type":"text","content":"from content"}`,
			wantKind: core.EventTextDelta,
			wantText: "from content",
		},
		{
			name:     "tool record",
			line:     `{"type":"tool","tool":"bash","args":{"command":"ls"}}`,
			wantKind: core.EventToolUse,
			wantTool: "bash",
		},
		{
			name:     "tool_use record",
			line:     `{"type":"tool_use","name":"read","input":{"path":"go.mod"}}`,
			wantKind: core.EventToolUse,
			wantTool: "read",
		},
		{
			name:     "step finish success",
			line:     `{"type":"step_finish","reason":"stop"}`,
			wantKind: core.EventTurnComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := tr.Translate([]byte(tt.line))
			if len(events) == 0 {
				t.Fatal("expected at least one event")
			}

			event := events[0]
			if event.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", event.Kind, tt.wantKind)
			}
			if tt.wantText != "" && event.Text != tt.wantText {
				t.Errorf("text = %q, want %q", event.Text, tt.wantText)
			}
			if tt.wantTool != "" {
				if event.Tool == nil || event.Tool.Name != tt.wantTool {
					t.Errorf("tool = %+v, want name %q", event.Tool, tt.wantTool)
				}
			}
		})
	}
}

func TestOpenCodeTranslate_ToolCallsPauseIsNotTerminal(t *testing.T) {
	tr := openCodeTranslator{}
	if events := tr.Translate([]byte(`{"type":"step_finish","reason":"tool-calls"}`)); events != nil {
		t.Errorf("expected nil events, got %v", events)
	}
}

func TestOpenCodeTranslate_StepFinishFailure(t *testing.T) {
	tr := openCodeTranslator{}

	events := tr.Translate([]byte(`{"type":"step_finish","reason":"error","error":"model refused"}`))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Kind != core.EventError {
		t.Errorf("first kind = %v, want %v", events[0].Kind, core.EventError)
	}
	if events[1].Reason != core.ReasonError {
		t.Errorf("reason = %v, want %v", events[1].Reason, core.ReasonError)
	}
}

func TestGeminiTranslate(t *testing.T) {
	tr := geminiTranslator{}

	tests := []struct {
		name     string
		line     string
		wantKind core.EventKind
		wantText string
	}{
		{
			name:     "init",
			line:     `{"type":"init","session_id":"g-1","model":"gemini-2.5-flash"}`,
			wantKind: core.EventTurnStarted,
		},
		{
			name:     "assistant message",
			line:     `{"type":"message","role":"assistant","content":"Hi there"}`,
			wantKind: core.EventTextDelta,
			wantText: "Hi there",
		},
		{
			name:     "result success",
			line:     `{"type":"result","status":"success"}`,
			wantKind: core.EventTurnComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := tr.Translate([]byte(tt.line))
			if len(events) == 0 {
				t.Fatal("expected at least one event")
			}
			if events[0].Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", events[0].Kind, tt.wantKind)
			}
			if tt.wantText != "" && events[0].Text != tt.wantText {
				t.Errorf("text = %q, want %q", events[0].Text, tt.wantText)
			}
		})
	}
}

func TestGeminiTranslate_UserMessageIgnored(t *testing.T) {
	tr := geminiTranslator{}
	if events := tr.Translate([]byte(`{"type":"message","role":"user","content":"prompt echo"}`)); events != nil {
		t.Errorf("expected nil events, got %v", events)
	}
}

func TestGeminiTranslate_ResultFailure(t *testing.T) {
	tr := geminiTranslator{}

	events := tr.Translate([]byte(`{"type":"result","status":"quota_exceeded","error":"quota exhausted for today"}`))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Kind != core.EventOutOfTokens {
		t.Errorf("first kind = %v, want %v", events[0].Kind, core.EventOutOfTokens)
	}
	if events[1].Reason != core.ReasonOutOfTokens {
		t.Errorf("reason = %v, want %v", events[1].Reason, core.ReasonOutOfTokens)
	}
}

func TestTranslatorFor_AllHarnesses(t *testing.T) {
	for _, id := range All() {
		tr, err := TranslatorFor(id)
		if err != nil {
			t.Fatalf("TranslatorFor(%s): %v", id, err)
		}
		if tr.Harness() != id {
			t.Errorf("Harness() = %v, want %v", tr.Harness(), id)
		}
	}
}

func TestTranslate_GarbledJSONYieldsNoEvents(t *testing.T) {
	for _, id := range All() {
		tr, err := TranslatorFor(id)
		if err != nil {
			t.Fatalf("TranslatorFor(%s): %v", id, err)
		}
		if events := tr.Translate([]byte(`{"type":`)); events != nil {
			t.Errorf("%s: expected nil events for garbled input, got %v", id, events)
		}
	}
}
