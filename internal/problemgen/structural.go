package problemgen

import "fmt"

// StructuralValidator checks that required fields are present, within
// length limits, and consistent with the request.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question is empty",
			Retryable: true,
		}
	}
	if len(q.Text) > 500 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question exceeds 500 characters",
			Retryable: true,
		}
	}
	if len(q.Explanation) > 1000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1000 characters",
			Retryable: true,
		}
	}
	if q.Answer == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "correct_answer is empty",
			Retryable: true,
		}
	}
	if !q.Kind.Valid() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("type must be %q, %q or %q", KindMultipleChoice, KindFreeText, KindNumeric),
			Retryable: true,
		}
	}
	if q.Points < MinPoints || q.Points > MaxPoints {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("points must be between %d and %d", MinPoints, MaxPoints),
			Retryable: true,
		}
	}
	if q.Field != input.Field {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("field %q does not match requested %q", q.Field, input.Field),
			Retryable: false,
		}
	}
	return nil
}
