package core

import "strings"

// effortRank maps reasoning effort levels to numeric ranks for normalization.
// The scale merges the Codex and Claude vocabularies; "max" and "xhigh" are
// treated as equivalent extremes.
var effortRank = map[string]int{
	"minimal": 0,
	"low":     1,
	"medium":  2,
	"high":    3,
	"xhigh":   4,
	"max":     4,
}

// KnownEfforts lists the reasoning effort levels accepted by TurnOptions.
var KnownEfforts = []string{"minimal", "low", "medium", "high", "xhigh", "max"}

// IsKnownEffort reports whether s is a recognized reasoning effort level.
func IsKnownEffort(s string) bool {
	_, ok := effortRank[strings.TrimSpace(strings.ToLower(s))]
	return ok
}

// modelEffortSuffixes are the effort levels a model identifier can encode
// directly, e.g. "gpt-5.2-codex-high" or "o4-mini-xhigh". Ordered longest
// first so "-xhigh" is not mistaken for "-high".
var modelEffortSuffixes = []string{"-minimal", "-medium", "-xhigh", "-high", "-low", "-max"}

// ModelEncodesEffort reports whether the model identifier already carries a
// reasoning effort suffix. A standalone effort option is ignored for such
// models: the suffix wins.
func ModelEncodesEffort(model string) bool {
	model = strings.ToLower(strings.TrimSpace(model))
	for _, suffix := range modelEffortSuffixes {
		if strings.HasSuffix(model, suffix) {
			return true
		}
	}
	return false
}

// NormalizeEffort clamps a requested effort to the closest level the given
// set supports. Unknown efforts and empty sets pass through unchanged.
func NormalizeEffort(effort string, supported []string) string {
	effort = strings.TrimSpace(strings.ToLower(effort))
	if effort == "" || len(supported) == 0 {
		return effort
	}

	for _, s := range supported {
		if effort == s {
			return effort
		}
	}

	reqRank, ok := effortRank[effort]
	if !ok {
		return effort
	}

	best := supported[0]
	bestDiff := int(^uint(0) >> 1)
	for _, s := range supported {
		r, ok := effortRank[s]
		if !ok {
			continue
		}
		diff := r - reqRank
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best = s
			bestDiff = diff
		}
	}
	return best
}

// EffectiveEffort resolves the reasoning effort one spec builder should use:
// empty when no effort applies, and empty when the model identifier already
// encodes an effort level (the standalone option is silently superseded).
func EffectiveEffort(model, effort string, supported []string) string {
	if effort == "" {
		return ""
	}
	if ModelEncodesEffort(model) {
		return ""
	}
	return NormalizeEffort(effort, supported)
}
