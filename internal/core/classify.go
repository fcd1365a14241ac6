package core

import "strings"

// OutOfTokensPrefix is the normalized marker prepended to quota-exhaustion
// messages so consumers can render them uniformly.
const OutOfTokensPrefix = "Out of tokens:"

// outOfTokensPatterns are the case-insensitive phrasings agents use when the
// real problem is exhausted usage rather than a genuine failure. Patterns are
// deliberately multi-word or numeric: a bare "token" would misfire on parser
// messages like "unexpected token at line 4".
var outOfTokensPatterns = []string{
	"rate limit",
	"rate-limit",
	"too many requests",
	"429",
	"quota",
	"usage limit",
	"out of tokens",
	"out of credit",
	"credit balance",
	"insufficient credit",
}

// ClassifyFailure decides whether a free-text failure message represents
// exhausted usage (out_of_tokens) or a generic error, and normalizes the
// message. This is the single point where free-text failures become
// structured outcomes, regardless of which harness produced the text.
func ClassifyFailure(message string) (CompletionReason, string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ReasonError, "Unknown error"
	}

	lower := strings.ToLower(message)
	for _, pattern := range outOfTokensPatterns {
		if strings.Contains(lower, pattern) {
			if !strings.HasPrefix(lower, strings.ToLower(OutOfTokensPrefix)) {
				message = OutOfTokensPrefix + " " + message
			}
			return ReasonOutOfTokens, message
		}
	}

	return ReasonError, message
}

// FailureEvents builds the event pair for a failure terminal: the classified
// semantic event followed by the turn.complete carrying the same reason.
func FailureEvents(message string) []AgentEvent {
	reason, normalized := ClassifyFailure(message)
	if reason == ReasonOutOfTokens {
		return []AgentEvent{NewOutOfTokens(normalized), NewTurnComplete(ReasonOutOfTokens)}
	}
	return []AgentEvent{NewError(normalized), NewTurnComplete(ReasonError)}
}
