// Package turn runs one agent turn: it launches the harness process, frames
// its stdout into JSON records, translates them into unified events, and
// settles a single authoritative completion even when the process dies
// without saying goodbye.
package turn

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentwire/agentwire/internal/core"
	"github.com/agentwire/agentwire/internal/harness"
	"github.com/agentwire/agentwire/internal/logging"
)

// Turn is a handle to one running agent invocation. Events are consumed from
// Events(); the final outcome from Wait(). A Turn is settled exactly once.
type Turn struct {
	harness    harness.ID
	spec       core.CommandSpec
	translator harness.Translator
	logger     *logging.Logger
	detached   bool

	cmd   *exec.Cmd
	stdin io.WriteCloser

	queue  *eventQueue
	framer lineFramer

	mu              sync.Mutex
	started         bool
	terminalSeen    bool
	observedReason  core.CompletionReason
	trackedReason   core.CompletionReason
	sessionID       string
	cancelRequested bool
	signaled        bool
	completion      *core.Completion

	sessionOnce  sync.Once
	sessionReady chan struct{}
	done         chan struct{}
}

func newTurn(id harness.ID, spec core.CommandSpec, translator harness.Translator, logger *logging.Logger, detached bool) *Turn {
	return &Turn{
		harness:       id,
		spec:          spec,
		translator:    translator,
		logger:        logger,
		detached:      detached,
		queue:         newEventQueue(),
		trackedReason: core.ReasonSuccess,
		sessionReady:  make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start builds the command for the harness, launches it, and begins pumping
// its output. The returned Turn is live; the caller must drain Events() or
// call Wait.
func Start(ctx context.Context, id harness.ID, opts core.TurnOptions, logger *logging.Logger) (*Turn, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	translator, err := harness.TranslatorFor(id)
	if err != nil {
		return nil, err
	}
	spec, err := harness.BuildSpec(id, opts)
	if err != nil {
		return nil, err
	}
	path, err := harness.Resolve(spec.Binary())
	if err != nil {
		return nil, err
	}

	t := newTurn(id, spec, translator, logger.WithHarness(string(id)), opts.Detached)

	cmd := exec.Command(path, spec.Args()...)
	cmd.Dir = opts.WorkDir
	cmd.Env = buildEnv(spec.Env, opts.Env)
	configureProcAttr(cmd, opts.Detached)

	switch spec.Stdin {
	case core.StdinPrompt:
		cmd.Stdin = strings.NewReader(spec.Prompt)
	case core.StdinPipe:
		stdin, err := cmd.StdinPipe()
		if err != nil {
			t.queue.Close()
			return nil, core.ErrTransport(core.CodeSpawnFailed, "open stdin pipe").WithCause(err)
		}
		t.stdin = stdin
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		t.queue.Close()
		return nil, core.ErrTransport(core.CodeSpawnFailed, "open stdout pipe").WithCause(err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		t.queue.Close()
		return nil, core.ErrTransport(core.CodeSpawnFailed, "open stderr pipe").WithCause(err)
	}

	if err := cmd.Start(); err != nil {
		t.queue.Close()
		return nil, core.ErrTransport(core.CodeSpawnFailed, "start "+spec.Binary()).WithCause(err)
	}
	t.cmd = cmd
	t.logger.Debug("turn started", "pid", cmd.Process.Pid, "argv", spec.Argv)

	// The turn begins under a synthetic session id; the harness's own id, if
	// it ever reports one, supersedes it.
	initial := opts.SessionID
	if initial == "" {
		initial = uuid.NewString()
	}
	t.mu.Lock()
	t.sessionID = initial
	t.mu.Unlock()
	t.queue.Push(core.NewSessionStarted(initial))

	go t.run(ctx, stdout, stderr)
	return t, nil
}

// Events returns the unified event stream. The channel closes after the
// terminal turn.complete event has been delivered.
func (t *Turn) Events() <-chan core.AgentEvent {
	return t.queue.Events()
}

// SessionID blocks until the harness reports its own session identifier, or
// until the turn settles, and returns the identifier in effect.
func (t *Turn) SessionID(ctx context.Context) (string, error) {
	select {
	case <-t.sessionReady:
	case <-t.done:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID, nil
}

// Wait blocks until the turn settles and returns its completion.
func (t *Turn) Wait(ctx context.Context) (*core.Completion, error) {
	select {
	case <-t.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completion, nil
}

// Stop requests cancellation: it flags the turn as cancelled and sends one
// termination signal if the process is still running. The actual outcome
// still flows through exit inference, where the cancellation flag wins when
// no explicit terminal event arrived.
func (t *Turn) Stop() error {
	t.mu.Lock()
	t.cancelRequested = true
	skip := t.signaled || t.completion != nil || t.cmd == nil
	t.signaled = true
	cmd := t.cmd
	t.mu.Unlock()

	if skip {
		return nil
	}
	t.logger.Debug("terminating turn", "pid", cmd.Process.Pid)
	return terminate(cmd, t.detached)
}

// Pid returns the process id, or 0 when no process was started.
func (t *Turn) Pid() int {
	if t.cmd == nil || t.cmd.Process == nil {
		return 0
	}
	return t.cmd.Process.Pid
}

// Spec returns the command specification the turn ran with.
func (t *Turn) Spec() core.CommandSpec {
	return t.spec
}

// Stdin returns the write end of the process's stdin when the spec asked for
// a pipe, nil otherwise.
func (t *Turn) Stdin() io.WriteCloser {
	return t.stdin
}

func (t *Turn) run(ctx context.Context, stdout, stderr io.Reader) {
	pumps := new(errgroup.Group)
	pumps.Go(func() error {
		t.pumpStdout(stdout)
		return nil
	})
	pumps.Go(func() error {
		t.pumpStderr(stderr)
		return nil
	})

	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = t.Stop()
		case <-watchDone:
		}
	}()

	// Both pipes must reach EOF before Wait reaps the process.
	_ = pumps.Wait()
	_ = t.cmd.Wait()
	close(watchDone)
	t.handleExit(exitCodeOf(t.cmd))
}

func (t *Turn) pumpStdout(r io.Reader) {
	switch t.spec.Stdout {
	case core.StdoutIgnore:
		_, _ = io.Copy(io.Discard, r)

	case core.StdoutText:
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				t.queue.Push(core.NewTextDelta(line + "\n"))
			}
		}

	default:
		buf := make([]byte, 32*1024)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				for _, line := range t.framer.Push(buf[:n]) {
					t.handleLine(line)
				}
			}
			if err != nil {
				return
			}
		}
	}
}

func (t *Turn) pumpStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			t.queue.Push(core.NewStderr(line))
		}
	}
}

// handleLine decodes one framed stdout line. A mid-stream line that is not
// valid JSON produces a non-fatal error event; the stream continues.
func (t *Turn) handleLine(line string) {
	if !t.decodeLine(line) {
		t.logger.Debug("unparseable output line", "line", truncate(line, 200))
		t.queue.Push(core.NewError("unparseable output line: " + truncate(line, 200)))
	}
}

// decodeLine resolves the session id and dispatches the translated events
// for one record. It reports whether the line was valid JSON.
func (t *Turn) decodeLine(line string) bool {
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return false
	}

	if sid := harness.SessionID(t.harness, record); sid != "" {
		t.adoptSession(sid)
	}

	for _, ev := range t.translator.Translate([]byte(line)) {
		t.dispatch(ev)
	}
	return true
}

// adoptSession records a harness-reported session id. A changed id emits a
// fresh session.started; the last observed value wins.
func (t *Turn) adoptSession(sessionID string) {
	t.mu.Lock()
	changed := sessionID != t.sessionID
	t.sessionID = sessionID
	t.mu.Unlock()

	if changed {
		t.queue.Push(core.NewSessionStarted(sessionID))
	}
	t.sessionOnce.Do(func() { close(t.sessionReady) })
}

// dispatch applies the lifecycle rules to one translated event and forwards
// it. Duplicate turn.started and turn.complete events are dropped; error and
// out_of_tokens escalate the tracked reason used by exit inference, never
// downgrading a stronger one.
func (t *Turn) dispatch(ev core.AgentEvent) {
	t.mu.Lock()
	switch ev.Kind {
	case core.EventTurnStarted:
		if t.started {
			t.mu.Unlock()
			return
		}
		t.started = true

	case core.EventTurnComplete:
		if t.terminalSeen {
			t.mu.Unlock()
			return
		}
		t.terminalSeen = true
		t.observedReason = ev.Reason
		if ev.Reason.Stronger(t.trackedReason) {
			t.trackedReason = ev.Reason
		}

	case core.EventError:
		if !t.terminalSeen && core.ReasonError.Stronger(t.trackedReason) {
			t.trackedReason = core.ReasonError
		}

	case core.EventOutOfTokens:
		if !t.terminalSeen && core.ReasonOutOfTokens.Stronger(t.trackedReason) {
			t.trackedReason = core.ReasonOutOfTokens
		}
	}
	t.mu.Unlock()
	t.queue.Push(ev)
}

// handleExit settles the turn after the process is gone. A terminal record
// stuck in the framer's final unterminated line is honored first; if no
// terminal event ever arrived, the reason is inferred and a synthetic
// turn.complete is emitted so consumers always see a terminal event.
func (t *Turn) handleExit(exitCode *int) {
	if t.spec.Stdout == core.StdoutJSONL {
		if rest := t.framer.Flush(); rest != "" {
			// One parse attempt; a truncated trailing record is not an error.
			_ = t.decodeLine(rest)
		}
	}

	t.mu.Lock()
	synthetic := !t.terminalSeen
	reason := t.observedReason
	inferredFromSuccess := false
	if synthetic {
		switch {
		case t.cancelRequested || exitCode == nil:
			reason = core.ReasonKilled
		case t.trackedReason == core.ReasonSuccess:
			// The stream never claimed an outcome; absence of a terminal
			// event is itself a failure.
			reason = core.ReasonError
			inferredFromSuccess = true
		default:
			reason = t.trackedReason
		}
		t.terminalSeen = true
	}
	completion := &core.Completion{
		Reason:    reason,
		ExitCode:  exitCode,
		SessionID: t.sessionID,
		Spec:      t.spec,
	}
	t.completion = completion
	t.mu.Unlock()

	if synthetic {
		if inferredFromSuccess {
			msg := "process exited without a terminal event"
			if exitCode != nil && *exitCode != 0 {
				msg = fmt.Sprintf("process exited with code %d without a terminal event", *exitCode)
			}
			t.queue.Push(core.NewError(msg))
		}
		t.queue.Push(core.NewTurnComplete(reason))
	}

	t.sessionOnce.Do(func() { close(t.sessionReady) })
	close(t.done)
	t.queue.Close()
	t.logger.Debug("turn settled", "reason", reason, "session_id", completion.SessionID)
}

func buildEnv(specEnv, optsEnv map[string]string) []string {
	if len(specEnv) == 0 && len(optsEnv) == 0 {
		return nil // inherit as-is
	}
	env := os.Environ()
	for k, v := range specEnv {
		env = append(env, k+"="+v)
	}
	for k, v := range optsEnv {
		env = append(env, k+"="+v)
	}
	return env
}

func exitCodeOf(cmd *exec.Cmd) *int {
	state := cmd.ProcessState
	if state == nil {
		return nil
	}
	code := state.ExitCode()
	if code < 0 {
		// Signal termination has no exit code.
		return nil
	}
	return &code
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...[truncated]"
}
