package core

import "testing"

func TestNormalizeEffort(t *testing.T) {
	t.Parallel()
	supported := []string{"low", "medium", "high", "xhigh"}
	tests := []struct {
		name      string
		in        string
		supported []string
		expect    string
	}{
		{
			name:      "empty",
			in:        "",
			supported: supported,
			expect:    "",
		},
		{
			name:      "no supported set passthrough",
			in:        "minimal",
			supported: nil,
			expect:    "minimal",
		},
		{
			name:      "exact match",
			in:        "high",
			supported: supported,
			expect:    "high",
		},
		{
			name:      "minimal clamps to low",
			in:        "minimal",
			supported: supported,
			expect:    "low",
		},
		{
			name:      "max maps to xhigh",
			in:        "max",
			supported: supported,
			expect:    "xhigh",
		},
		{
			name:      "xhigh clamps to high when not offered",
			in:        "xhigh",
			supported: []string{"minimal", "low", "medium", "high"},
			expect:    "high",
		},
		{
			name:      "unknown effort passthrough",
			in:        "turbo",
			supported: supported,
			expect:    "turbo",
		},
		{
			name:      "case insensitive",
			in:        "HIGH",
			supported: supported,
			expect:    "high",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeEffort(tt.in, tt.supported)
			if got != tt.expect {
				t.Errorf("NormalizeEffort(%q) = %q, want %q", tt.in, got, tt.expect)
			}
		})
	}
}

func TestModelEncodesEffort(t *testing.T) {
	t.Parallel()
	tests := []struct {
		model  string
		expect bool
	}{
		{"gpt-5.2-codex-high", true},
		{"gpt-5.2-codex-xhigh", true},
		{"o4-mini-low", true},
		{"claude-opus-max", true},
		{"gpt-5.2-codex", false},
		{"claude-sonnet-4-20250514", false},
		{"", false},
		{"gemini-2.5-flash", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.model, func(t *testing.T) {
			t.Parallel()
			if got := ModelEncodesEffort(tt.model); got != tt.expect {
				t.Errorf("ModelEncodesEffort(%q) = %v, want %v", tt.model, got, tt.expect)
			}
		})
	}
}

func TestEffectiveEffort(t *testing.T) {
	t.Parallel()
	supported := []string{"low", "medium", "high"}

	// Standalone effort applies for plain model identifiers.
	if got := EffectiveEffort("gpt-5.2-codex", "high", supported); got != "high" {
		t.Errorf("EffectiveEffort plain model = %q, want %q", got, "high")
	}

	// Model-encoded effort silently supersedes the standalone option.
	if got := EffectiveEffort("gpt-5.2-codex-xhigh", "low", supported); got != "" {
		t.Errorf("EffectiveEffort encoded model = %q, want empty", got)
	}

	// No effort requested stays empty.
	if got := EffectiveEffort("gpt-5.2-codex", "", supported); got != "" {
		t.Errorf("EffectiveEffort no effort = %q, want empty", got)
	}
}
