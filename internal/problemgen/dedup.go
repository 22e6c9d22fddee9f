package problemgen

import (
	"fmt"
	"strings"
)

// buildDedup formats recent questions for the prompt, respecting the max limit.
// Returns "None" if there are no recent questions.
func buildDedup(recent []string, max int) string {
	if len(recent) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(recent) > max {
		recent = recent[len(recent)-max:]
	}

	var b strings.Builder
	for i, q := range recent {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// seenSet builds a lookup of normalized question texts.
func seenSet(recent []string) map[string]bool {
	seen := make(map[string]bool, len(recent))
	for _, q := range recent {
		seen[normalize(q)] = true
	}
	return seen
}
