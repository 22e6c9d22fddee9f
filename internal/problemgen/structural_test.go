package problemgen

import (
	"strings"
	"testing"
)

func validStructuralQuestion() Question {
	return Question{
		Field:       FieldLogic,
		Difficulty:  2,
		Text:        "What comes next: 1, 2, 4, ___?",
		Kind:        KindNumeric,
		Answer:      "8",
		Explanation: "Each term doubles.",
		Points:      4,
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	input := GenerateInput{Field: FieldLogic, Difficulty: 2}

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"empty text", func(q *Question) { q.Text = "" }, true},
		{"long text", func(q *Question) { q.Text = strings.Repeat("a", 501) }, true},
		{"empty explanation allowed", func(q *Question) { q.Explanation = "" }, false},
		{"long explanation", func(q *Question) { q.Explanation = strings.Repeat("b", 1001) }, true},
		{"empty answer", func(q *Question) { q.Answer = "" }, true},
		{"unknown kind", func(q *Question) { q.Kind = "essay" }, true},
		{"zero points", func(q *Question) { q.Points = 0 }, true},
		{"too many points", func(q *Question) { q.Points = 11 }, true},
		{"wrong field", func(q *Question) { q.Field = FieldMath }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validStructuralQuestion()
			tc.mutate(&q)
			err := v.Validate(&q, input)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestStructuralValidator_FieldMismatchNotRetryable(t *testing.T) {
	v := &StructuralValidator{}
	q := validStructuralQuestion()
	q.Field = FieldLanguage

	err := v.Validate(&q, GenerateInput{Field: FieldLogic})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Retryable {
		t.Error("field mismatch should not be retryable")
	}
}
