package config

import (
	"fmt"
	"strings"

	"github.com/agentwire/agentwire/internal/core"
	"github.com/agentwire/agentwire/internal/harness"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate checks a loaded configuration and returns every problem found.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Value:   cfg.Log.Level,
			Message: "must be one of debug, info, warn, error",
		})
	}

	switch cfg.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Value:   cfg.Log.Format,
			Message: "must be one of auto, text, json",
		})
	}

	if _, err := harness.Parse(cfg.Turn.Harness); err != nil {
		errs = append(errs, ValidationError{
			Field:   "turn.harness",
			Value:   cfg.Turn.Harness,
			Message: "unknown harness",
		})
	}

	for name, hc := range cfg.Harnesses {
		if _, err := harness.Parse(name); err != nil {
			errs = append(errs, ValidationError{
				Field:   "harnesses." + name,
				Value:   name,
				Message: "unknown harness",
			})
			continue
		}
		if hc.ReasoningEffort != "" && !core.IsKnownEffort(hc.ReasoningEffort) {
			errs = append(errs, ValidationError{
				Field:   "harnesses." + name + ".reasoning_effort",
				Value:   hc.ReasoningEffort,
				Message: "unknown reasoning effort level",
			})
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
