package problemgen

import "context"

// Generator produces quiz questions for a field and difficulty.
type Generator interface {
	// Generate produces a single question for the given input context.
	// Implementations may be slow or fail; callers are expected to bound
	// the call with a deadline and fall back to FallbackQuestion.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}
