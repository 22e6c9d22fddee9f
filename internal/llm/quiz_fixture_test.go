package llm

import "encoding/json"

// Question payloads in the shape the quiz generator requests.
const (
	numericQuestion = `{"question":"What is 7 x 8?","type":"numeric","options":[],` +
		`"correct_answer":"56","explanation":"7 x 8 = 56.","points":2}`
	choiceQuestion = `{"question":"Which planet is closest to the Sun?","type":"multiple-choice",` +
		`"options":["Venus","Mercury","Mars","Earth"],"correct_answer":"Mercury",` +
		`"explanation":"Mercury orbits at about 0.39 AU.","points":1}`
)

// quizSchema mirrors the question schema sent by the quiz generator.
func quizSchema() *Schema {
	return &Schema{
		Name:        "quiz-question",
		Description: "A single quiz question with answer, explanation and points",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"type": map[string]any{
					"type": "string",
					"enum": []any{"multiple-choice", "free-text", "numeric"},
				},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correct_answer": map[string]any{"type": "string"},
				"explanation":    map[string]any{"type": "string"},
				"points":         map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
			},
			"required":             []any{"question", "type", "options", "correct_answer", "explanation", "points"},
			"additionalProperties": false,
		},
	}
}

// questionRequest is a single-turn question generation request.
func questionRequest() Request {
	return Request{
		System:    "You write quiz questions for an adaptive quiz.",
		Messages:  []Message{{Role: RoleUser, Content: "Field: math\nDifficulty tier: 2"}},
		Schema:    quizSchema(),
		MaxTokens: 512,
	}
}

// sameJSON reports whether two JSON documents are semantically equal.
func sameJSON(a, b []byte) bool {
	var x, y any
	if json.Unmarshal(a, &x) != nil || json.Unmarshal(b, &y) != nil {
		return false
	}
	xb, _ := json.Marshal(x)
	yb, _ := json.Marshal(y)
	return string(xb) == string(yb)
}
