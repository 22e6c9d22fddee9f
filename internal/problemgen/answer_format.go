package problemgen

import (
	"fmt"
	"strings"
)

// AnswerFormatValidator checks the answer against the declared kind:
// numeric answers must parse, multiple-choice questions must carry
// distinct non-empty options containing the answer, and other kinds
// must not carry options.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	switch q.Kind {
	case KindNumeric:
		if _, err := parseNumber(normalize(q.Answer)); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid numeric answer %q: %s", q.Answer, err),
				Retryable: true,
			}
		}
	case KindMultipleChoice:
		return v.validateChoices(q)
	}

	if q.Kind != KindMultipleChoice && len(q.Choices) > 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s questions must have empty options", q.Kind),
			Retryable: true,
		}
	}
	return nil
}

func (v *AnswerFormatValidator) validateChoices(q *Question) *ValidationError {
	if len(q.Choices) < 2 || len(q.Choices) > 6 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("multiple choice must have 2 to 6 options, got %d", len(q.Choices)),
			Retryable: true,
		}
	}
	// All choices must be non-empty and distinct.
	seen := make(map[string]bool, len(q.Choices))
	for i, c := range q.Choices {
		c = strings.TrimSpace(c)
		if c == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d is empty", i+1),
				Retryable: true,
			}
		}
		key := strings.ToLower(c)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option %q", c),
				Retryable: true,
			}
		}
		seen[key] = true
	}
	if !containsChoice(q.Choices, q.Answer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q not found in options", q.Answer),
			Retryable: true,
		}
	}
	return nil
}
