package core

// StdinMode tells the launcher what to do with the child's standard input.
type StdinMode string

const (
	// StdinClose closes standard input immediately after spawn.
	StdinClose StdinMode = "close"

	// StdinPrompt writes the prompt to standard input, then closes it.
	StdinPrompt StdinMode = "prompt"

	// StdinPipe leaves standard input open for the caller to write.
	StdinPipe StdinMode = "pipe"
)

// StdoutMode describes the shape expected on the child's standard output.
type StdoutMode string

const (
	// StdoutJSONL is newline-delimited JSON, one record per line.
	StdoutJSONL StdoutMode = "jsonl"

	// StdoutText is plain text with no record structure.
	StdoutText StdoutMode = "text"

	// StdoutIgnore means output carries no information worth parsing.
	StdoutIgnore StdoutMode = "ignore"
)

// CommandSpec is the immutable recipe for one turn's process: the argument
// vector (argv[0] is the binary name, unresolved), how the prompt is
// delivered, and what to expect on the standard streams. One instance per
// turn, produced by the harness spec builders.
type CommandSpec struct {
	Argv   []string   `json:"argv"`
	Stdin  StdinMode  `json:"stdin"`
	Stdout StdoutMode `json:"stdout"`

	// Prompt is the prompt text when Stdin is StdinPrompt; otherwise the
	// prompt is already embedded in Argv and this stays empty.
	Prompt string `json:"prompt,omitempty"`

	// Env holds environment variables the harness needs beyond the inherited
	// environment (e.g. effort levels that have no CLI flag).
	Env map[string]string `json:"env,omitempty"`
}

// Binary returns the unresolved binary name (argv[0]).
func (s CommandSpec) Binary() string {
	if len(s.Argv) == 0 {
		return ""
	}
	return s.Argv[0]
}

// Args returns the arguments after the binary name.
func (s CommandSpec) Args() []string {
	if len(s.Argv) <= 1 {
		return nil
	}
	return s.Argv[1:]
}
