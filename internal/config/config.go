package config

// Config holds all application configuration.
type Config struct {
	Log       LogConfig                `mapstructure:"log"`
	Turn      TurnConfig               `mapstructure:"turn"`
	Harnesses map[string]HarnessConfig `mapstructure:"harnesses"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TurnConfig configures turn execution defaults.
type TurnConfig struct {
	// Harness is the agent CLI used when none is named on the command line.
	Harness string `mapstructure:"harness"`

	// Yolo enables each harness's bypass-permissions mode.
	Yolo bool `mapstructure:"yolo"`

	// Detached places agent processes in their own process group.
	Detached bool `mapstructure:"detached"`
}

// HarnessConfig overrides defaults for a single agent CLI.
type HarnessConfig struct {
	Model           string   `mapstructure:"model"`
	ReasoningEffort string   `mapstructure:"reasoning_effort"`
	ExtraArgs       []string `mapstructure:"extra_args"`
}

// DefaultConfigYAML is the starter configuration written by `agentwire config init`.
const DefaultConfigYAML = `# agentwire configuration
#
# Values not specified here use sensible defaults.

log:
  level: info
  format: auto

turn:
  harness: claude
  yolo: false
  detached: false

harnesses:
  claude:
    model: claude-sonnet-4-20250514
  codex:
    model: gpt-5.1-codex
    reasoning_effort: high
  gemini:
    model: gemini-2.5-flash
  opencode: {}
`
