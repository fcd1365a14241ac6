package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Log:  LogConfig{Level: "info", Format: "auto"},
		Turn: TurnConfig{Harness: "claude"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("error %q should name log.level", err)
	}
}

func TestValidate_BadHarness(t *testing.T) {
	cfg := validConfig()
	cfg.Turn.Harness = "copilot"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for unknown harness")
	}
}

func TestValidate_BadEffort(t *testing.T) {
	cfg := validConfig()
	cfg.Harnesses = map[string]HarnessConfig{
		"codex": {ReasoningEffort: "turbo"},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error for unknown effort")
	}
	if !strings.Contains(err.Error(), "reasoning_effort") {
		t.Errorf("error %q should name the effort field", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Log:  LogConfig{Level: "nope", Format: "nope"},
		Turn: TurnConfig{Harness: "nope"},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected errors")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type = %T, want ValidationErrors", err)
	}
	if len(verrs) != 3 {
		t.Errorf("error count = %d, want 3: %v", len(verrs), verrs)
	}
}
