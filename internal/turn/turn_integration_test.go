//go:build !windows

package turn

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentwire/agentwire/internal/core"
	"github.com/agentwire/agentwire/internal/harness"
	"github.com/agentwire/agentwire/internal/logging"
)

// installFakeBinary writes an executable shell script onto PATH under the
// given name so Start launches it instead of the real CLI.
func installFakeBinary(t *testing.T, name, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestStart_EndToEnd(t *testing.T) {
	installFakeBinary(t, "claude", `#!/bin/sh
cat > /dev/null
printf '%s\n' '{"type":"system","subtype":"init","session_id":"ses-real"}'
printf '%s\n' '{"type":"assistant","message":{"content":[{"type":"text","text":"hello"}]}}'
printf '%s\n' '{"type":"result","subtype":"success","result":"done","session_id":"ses-real"}'
`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tn, err := Start(ctx, harness.Claude, core.TurnOptions{
		Prompt:  "say hello",
		OneShot: true,
	}, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	var events []core.AgentEvent
	for ev := range tn.Events() {
		events = append(events, ev)
	}

	c, err := tn.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c.Reason != core.ReasonSuccess {
		t.Errorf("reason = %v, want success", c.Reason)
	}
	if c.SessionID != "ses-real" {
		t.Errorf("session = %q, want ses-real", c.SessionID)
	}

	// The synthetic initial session id is superseded by the reported one.
	if n := countKind(events, core.EventSessionStarted); n != 2 {
		t.Errorf("session.started count = %d, want 2", n)
	}
	if n := countKind(events, core.EventTurnComplete); n != 1 {
		t.Errorf("turn.complete count = %d, want 1", n)
	}
	if n := countKind(events, core.EventTextDelta); n != 1 {
		t.Errorf("text.delta count = %d, want 1", n)
	}

	sid, err := tn.SessionID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sid != "ses-real" {
		t.Errorf("SessionID() = %q, want ses-real", sid)
	}
}

func TestStart_StopKillsProcess(t *testing.T) {
	installFakeBinary(t, "gemini", `#!/bin/sh
printf '%s\n' '{"type":"init","session_id":"g-1"}'
exec sleep 30
`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tn, err := Start(ctx, harness.Gemini, core.TurnOptions{
		Prompt:  "spin",
		OneShot: true,
	}, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	// Wait for the init record so the process is definitely up.
	if _, err := tn.SessionID(ctx); err != nil {
		t.Fatal(err)
	}
	if err := tn.Stop(); err != nil {
		t.Fatal(err)
	}

	go func() {
		for range tn.Events() {
		}
	}()

	c, err := tn.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c.Reason != core.ReasonKilled {
		t.Errorf("reason = %v, want killed", c.Reason)
	}
}

func TestStart_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Start(context.Background(), harness.OpenCode, core.TurnOptions{
		Prompt:  "p",
		OneShot: true,
	}, logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !core.IsCategory(err, core.ErrCatTransport) {
		t.Errorf("category = %v, want transport", core.GetCategory(err))
	}
}
