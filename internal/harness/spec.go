package harness

import (
	"github.com/agentwire/agentwire/internal/core"
)

// Info describes the static properties of one harness: the binary it launches
// and the defaults its spec builder falls back to.
type Info struct {
	Binary       string
	DefaultModel string

	// Efforts lists the reasoning effort levels the CLI accepts, empty when
	// the harness has no effort control.
	Efforts []string
}

var infos = map[ID]Info{
	Claude: {
		Binary:       "claude",
		DefaultModel: "claude-sonnet-4-20250514",
		Efforts:      []string{"low", "medium", "high", "max"},
	},
	Codex: {
		Binary:       "codex",
		DefaultModel: "gpt-5.1-codex",
		Efforts:      []string{"minimal", "low", "medium", "high", "xhigh"},
	},
	OpenCode: {
		Binary: "opencode",
	},
	Gemini: {
		Binary:       "gemini",
		DefaultModel: "gemini-2.5-flash",
	},
}

// InfoFor returns the static description of a harness.
func InfoFor(id ID) (Info, error) {
	info, ok := infos[id]
	if !ok {
		return Info{}, core.ErrValidation(core.CodeUnknownHarness, "unknown harness: "+string(id))
	}
	return info, nil
}

// BuildSpec turns caller options into the exact command invocation for one
// harness. Each harness delivers the prompt its own way: claude reads it from
// stdin, codex takes it as a trailing argument, gemini via a flag, opencode
// after a "--" separator.
func BuildSpec(id ID, opts core.TurnOptions) (core.CommandSpec, error) {
	info, err := InfoFor(id)
	if err != nil {
		return core.CommandSpec{}, err
	}
	if opts.Prompt == "" {
		return core.CommandSpec{}, core.ErrValidation(core.CodeEmptyPrompt, "prompt must not be empty")
	}
	if opts.SessionID != "" && !core.IsSafeSessionID(opts.SessionID) {
		return core.CommandSpec{}, core.ErrValidation(core.CodeBadSessionID, "unsafe session id: "+opts.SessionID)
	}

	model := opts.Model
	if model == "" {
		model = info.DefaultModel
	}
	effort := core.EffectiveEffort(model, opts.ReasoningEffort, info.Efforts)

	switch id {
	case Claude:
		return buildClaudeSpec(info, opts, model, effort), nil
	case Codex:
		return buildCodexSpec(info, opts, model, effort), nil
	case OpenCode:
		return buildOpenCodeSpec(info, opts, model), nil
	case Gemini:
		return buildGeminiSpec(info, opts, model), nil
	}
	return core.CommandSpec{}, core.ErrValidation(core.CodeUnknownHarness, "unknown harness: "+string(id))
}

func buildClaudeSpec(info Info, opts core.TurnOptions, model, effort string) core.CommandSpec {
	argv := []string{info.Binary, "--print", "--output-format", "stream-json", "--verbose"}
	if model != "" {
		argv = append(argv, "--model", model)
	}
	if opts.SessionID != "" {
		if opts.Resume {
			argv = append(argv, "--resume", opts.SessionID)
		} else {
			argv = append(argv, "--session-id", opts.SessionID)
		}
	}
	if opts.Yolo {
		argv = append(argv, "--dangerously-skip-permissions")
	}
	argv = append(argv, opts.ExtraArgs...)

	spec := core.CommandSpec{
		Argv:   argv,
		Stdin:  core.StdinPrompt,
		Stdout: core.StdoutJSONL,
		Prompt: opts.Prompt,
	}
	if !opts.OneShot {
		// Conversational mode keeps stdin open; the caller writes turns.
		spec.Stdin = core.StdinPipe
		spec.Prompt = ""
	}
	if effort != "" {
		spec.Env = map[string]string{"CLAUDE_CODE_EFFORT_LEVEL": effort}
	}
	return spec
}

func buildCodexSpec(info Info, opts core.TurnOptions, model, effort string) core.CommandSpec {
	argv := []string{info.Binary, "exec", "--json", "--skip-git-repo-check"}
	if opts.Resume && opts.SessionID != "" {
		argv = append(argv, "resume", opts.SessionID)
	}

	sandbox := `sandbox_mode="workspace-write"`
	if opts.Yolo {
		sandbox = `sandbox_mode="danger-full-access"`
	}
	argv = append(argv,
		"-c", `approval_policy="never"`,
		"-c", sandbox,
	)
	if effort != "" {
		argv = append(argv, "-c", `model_reasoning_effort="`+effort+`"`)
	}
	if model != "" {
		argv = append(argv, "--model", model)
	}
	argv = append(argv, opts.ExtraArgs...)
	argv = append(argv, opts.Prompt)

	return core.CommandSpec{
		Argv:   argv,
		Stdin:  core.StdinClose,
		Stdout: core.StdoutJSONL,
	}
}

func buildOpenCodeSpec(info Info, opts core.TurnOptions, model string) core.CommandSpec {
	argv := []string{info.Binary, "run", "--print-logs", "--format", "json"}
	if model != "" {
		argv = append(argv, "--model", model)
	}
	if opts.SessionID != "" {
		argv = append(argv, "--session", opts.SessionID)
	}
	argv = append(argv, opts.ExtraArgs...)
	argv = append(argv, "--", opts.Prompt)

	return core.CommandSpec{
		Argv:   argv,
		Stdin:  core.StdinClose,
		Stdout: core.StdoutJSONL,
	}
}

func buildGeminiSpec(info Info, opts core.TurnOptions, model string) core.CommandSpec {
	argv := []string{info.Binary, "--output-format", "stream-json"}
	if model != "" {
		argv = append(argv, "--model", model)
	}
	if opts.Resume && opts.SessionID != "" {
		argv = append(argv, "--resume", opts.SessionID)
	}
	if opts.Yolo {
		argv = append(argv, "--approval-mode", "yolo")
	}
	argv = append(argv, opts.ExtraArgs...)
	argv = append(argv, "--prompt", opts.Prompt)

	return core.CommandSpec{
		Argv:   argv,
		Stdin:  core.StdinClose,
		Stdout: core.StdoutJSONL,
	}
}
