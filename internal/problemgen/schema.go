package problemgen

import "github.com/abhisek/iqfieldbot/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single quiz question with answer, explanation and points",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner",
			},
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{"multiple-choice", "free-text", "numeric"},
				"description": "How the learner answers",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Options for multiple-choice questions. Empty array otherwise.",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For multiple-choice: the text of the correct option.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Short explanation of the correct answer",
			},
			"points": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     10,
				"description": "Points awarded for a correct answer",
			},
		},
		"required":             []any{"question", "type", "options", "correct_answer", "explanation", "points"},
		"additionalProperties": false,
	},
}
