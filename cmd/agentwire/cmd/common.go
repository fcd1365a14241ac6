package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/agentwire/agentwire/internal/config"
	"github.com/agentwire/agentwire/internal/core"
	"github.com/agentwire/agentwire/internal/harness"
	"github.com/agentwire/agentwire/internal/logging"
)

// initRuntime loads and validates configuration and builds the logger.
func initRuntime() (*config.Config, *logging.Logger, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("validating config: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	return cfg, logger, nil
}

// applyHarnessConfig fills TurnOptions fields the flags left empty from the
// per-harness configuration section.
func applyHarnessConfig(cfg *config.Config, id harness.ID, opts *core.TurnOptions) {
	hc, ok := cfg.Harnesses[string(id)]
	if !ok {
		return
	}
	if opts.Model == "" {
		opts.Model = hc.Model
	}
	if opts.ReasoningEffort == "" {
		opts.ReasoningEffort = hc.ReasoningEffort
	}
	if len(opts.ExtraArgs) == 0 {
		opts.ExtraArgs = hc.ExtraArgs
	}
}
