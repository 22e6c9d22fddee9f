package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestValidateResponse_QuestionShapes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"numeric", numericQuestion, false},
		{"multiple choice", choiceQuestion, false},
		{"free text", `{"question":"Name the largest ocean.","type":"free-text","options":[],` +
			`"correct_answer":"Pacific","explanation":"The Pacific covers about a third of the surface.","points":3}`, false},
		{"missing answer", strings.Replace(numericQuestion, `"correct_answer":"56",`, "", 1), true},
		{"points as string", strings.Replace(numericQuestion, `"points":2`, `"points":"2"`, 1), true},
		{"points below range", strings.Replace(numericQuestion, `"points":2`, `"points":0`, 1), true},
		{"points above range", strings.Replace(numericQuestion, `"points":2`, `"points":11`, 1), true},
		{"unknown type", strings.Replace(numericQuestion, `"numeric"`, `"essay"`, 1), true},
		{"options not strings", strings.Replace(choiceQuestion, `"Venus"`, `1`, 1), true},
		{"extra field", strings.Replace(numericQuestion, `"points":2`, `"points":2,"hint":"times table"`, 1), true},
		{"malformed", `{"question":"What is 7 x 8?"`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(quizSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Fatalf("error content = %q", inv.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json at all`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_BrokenSchema(t *testing.T) {
	broken := &Schema{
		Name:       "broken-question",
		Definition: map[string]any{"type": "object", "minProperties": "two"},
	}
	err := validateResponse(broken, json.RawMessage(numericQuestion))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse for uncompilable schema, got %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", numericQuestion, numericQuestion},
		{"json fence", "```json\n" + numericQuestion + "\n```", numericQuestion},
		{"plain fence", "```\n" + choiceQuestion + "\n```", choiceQuestion},
		{"single line fence", "```" + numericQuestion + "```", numericQuestion},
		{"surrounding space", "  ```json\n" + numericQuestion + "\n```\n", numericQuestion},
		{"unterminated", "```json\n" + numericQuestion, "```json\n" + numericQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(stripCodeFence(json.RawMessage(tt.in))); got != tt.want {
				t.Fatalf("stripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}
