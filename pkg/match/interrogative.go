package match

import (
	"regexp"
	"strings"
)

// Interrogative and open-ended phrasings mark claim-specific questions. Such
// fields are never standard profile fields no matter how much vocabulary they
// share with the schema, so they skip the tier pipeline entirely.
var interrogativePrefixes = []string{
	"did you", "do you", "have you", "has your", "were you", "was your",
	"are you", "is your", "how many", "how much", "how often", "how long",
	"when did", "where did", "what is your reason", "why did", "which of",
	"describe", "explain", "list any", "tell us",
}

var interrogativePattern = regexp.MustCompile(`\?\s*$`)

// IsInterrogative reports whether text reads as an interrogative or
// open-ended prompt. Triage uses it to route claim questions away from
// profile matching.
func IsInterrogative(text string) bool {
	return isQuestion(text)
}

// isQuestion reports whether the combined label and description reads as an
// interrogative or open-ended prompt.
func isQuestion(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if interrogativePattern.MatchString(trimmed) {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, prefix := range interrogativePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
