package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentwire/agentwire/internal/core"
	"github.com/agentwire/agentwire/internal/harness"
	"github.com/agentwire/agentwire/internal/render"
	"github.com/agentwire/agentwire/internal/turn"
)

var (
	runHarness  string
	runModel    string
	runSession  string
	runResume   bool
	runEffort   string
	runDir      string
	runYolo     bool
	runDetached bool
	runJSON     bool
)

var runCmd = &cobra.Command{
	Use:   "run [prompt...]",
	Short: "Run one agent turn",
	Long: `Run a single turn against an agent CLI and stream its unified events.

The prompt is the joined positional arguments. The exit status reflects the
turn's outcome: 0 success, 1 error, 2 out of tokens, 130 killed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTurn,
}

func init() {
	runCmd.Flags().StringVarP(&runHarness, "harness", "H", "",
		"agent CLI to run (claude, codex, opencode, gemini)")
	runCmd.Flags().StringVarP(&runModel, "model", "m", "",
		"model identifier (default: harness default)")
	runCmd.Flags().StringVarP(&runSession, "session", "s", "",
		"session id to create or resume")
	runCmd.Flags().BoolVar(&runResume, "resume", false,
		"resume the session named by --session")
	runCmd.Flags().StringVar(&runEffort, "effort", "",
		"reasoning effort (minimal, low, medium, high, xhigh, max)")
	runCmd.Flags().StringVarP(&runDir, "dir", "C", "",
		"working directory for the agent process")
	runCmd.Flags().BoolVar(&runYolo, "yolo", false,
		"enable the harness's bypass-permissions mode")
	runCmd.Flags().BoolVar(&runDetached, "detached", false,
		"run the agent in its own process group")
	runCmd.Flags().BoolVar(&runJSON, "json", false,
		"emit unified events as JSON lines instead of rendered output")

	rootCmd.AddCommand(runCmd)
}

func runTurn(cobraCmd *cobra.Command, args []string) error {
	cfg, logger, err := initRuntime()
	if err != nil {
		return err
	}

	name := runHarness
	if name == "" {
		name = cfg.Turn.Harness
	}
	id, err := harness.Parse(name)
	if err != nil {
		return err
	}

	opts := core.TurnOptions{
		Model:           runModel,
		Prompt:          strings.Join(args, " "),
		SessionID:       runSession,
		Resume:          runResume,
		WorkDir:         runDir,
		ReasoningEffort: runEffort,
		OneShot:         true,
		Detached:        runDetached || cfg.Turn.Detached,
		Yolo:            runYolo || cfg.Turn.Yolo,
	}
	applyHarnessConfig(cfg, id, &opts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	t, err := turn.Start(ctx, id, opts, logger)
	if err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()
	if runJSON {
		enc := json.NewEncoder(out)
		for ev := range t.Events() {
			_ = enc.Encode(ev)
		}
	} else {
		r := render.New(out, !noColor && isStdoutTerminal(), quiet)
		for ev := range t.Events() {
			r.Event(ev)
		}
	}

	// The event channel closing means the turn has settled.
	completion, err := t.Wait(context.Background())
	if err != nil {
		return err
	}

	exitCode = completionExitCode(completion.Reason)
	return nil
}

func completionExitCode(reason core.CompletionReason) int {
	switch reason {
	case core.ReasonSuccess:
		return 0
	case core.ReasonOutOfTokens:
		return 2
	case core.ReasonKilled:
		return 130
	default:
		return 1
	}
}

func isStdoutTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
