package problemgen

import (
	"fmt"
	"strings"
)

// Field is a fixed category of question subject matter.
type Field string

const (
	FieldMath           Field = "math"
	FieldLogic          Field = "logic"
	FieldProgramming    Field = "programming"
	FieldLanguage       Field = "language"
	FieldVisualPatterns Field = "visual-patterns"
)

// NumFields is the size of the closed field enumeration.
const NumFields = 5

// AllFields lists every field in display order. The order defines Index.
var AllFields = [NumFields]Field{
	FieldMath,
	FieldLogic,
	FieldProgramming,
	FieldLanguage,
	FieldVisualPatterns,
}

// Index returns the position of f in AllFields, or -1 if f is unknown.
func (f Field) Index() int {
	for i, known := range AllFields {
		if known == f {
			return i
		}
	}
	return -1
}

// Valid reports whether f belongs to the field enumeration.
func (f Field) Valid() bool {
	return f.Index() >= 0
}

// Title returns the display name, e.g. "Visual Patterns".
func (f Field) Title() string {
	words := strings.Split(string(f), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ParseField resolves a user-supplied field name. Matching ignores case,
// surrounding whitespace, and accepts spaces or underscores in place of
// hyphens ("Visual Patterns" parses as FieldVisualPatterns).
func ParseField(s string) (Field, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	f := Field(norm)
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return f, nil
}

// AnswerKind describes how a question is answered and evaluated.
type AnswerKind string

const (
	// KindMultipleChoice means the learner picks one of Choices.
	KindMultipleChoice AnswerKind = "multiple-choice"

	// KindFreeText means the learner types a short phrase.
	KindFreeText AnswerKind = "free-text"

	// KindNumeric means the learner types a number.
	KindNumeric AnswerKind = "numeric"
)

// Valid reports whether k is a known answer kind.
func (k AnswerKind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindFreeText, KindNumeric:
		return true
	}
	return false
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
	MinPoints     = 1
	MaxPoints     = 10
)

// Question is an issued quiz question. It is never mutated after it has
// been attached to a session.
type Question struct {
	// ID is unique per generated question, e.g. "math_3_4821".
	ID string `json:"id"`

	Field Field `json:"field"`

	// Difficulty is the integer tier (1-5) the question was generated for.
	Difficulty int `json:"difficulty"`

	// Text is the prompt shown to the learner.
	Text string `json:"question"`

	Kind AnswerKind `json:"type"`

	// Choices is populated only when Kind is KindMultipleChoice and always
	// contains Answer.
	Choices []string `json:"options,omitempty"`

	// Answer is the canonical correct answer.
	Answer string `json:"correct_answer"`

	// Explanation is shown after the learner answers. May be empty.
	Explanation string `json:"explanation,omitempty"`

	// Points is awarded for a correct answer (1-10).
	Points int `json:"points"`

	// TimeLimit is the suggested answer time in seconds. Zero means none.
	TimeLimit int `json:"time_limit,omitempty"`
}

// Validate checks the question invariants.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}
	if !q.Field.Valid() {
		return fmt.Errorf("unknown field %q", q.Field)
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty %d out of range [%d, %d]", q.Difficulty, MinDifficulty, MaxDifficulty)
	}
	if q.Points < MinPoints || q.Points > MaxPoints {
		return fmt.Errorf("points %d out of range [%d, %d]", q.Points, MinPoints, MaxPoints)
	}
	if !q.Kind.Valid() {
		return fmt.Errorf("unknown answer kind %q", q.Kind)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("correct answer is empty")
	}
	if q.Kind == KindMultipleChoice {
		if len(q.Choices) == 0 {
			return fmt.Errorf("multiple-choice question has no choices")
		}
		if !containsChoice(q.Choices, q.Answer) {
			return fmt.Errorf("answer %q not found in choices", q.Answer)
		}
	}
	if q.TimeLimit < 0 {
		return fmt.Errorf("negative time limit")
	}
	return nil
}

func containsChoice(choices []string, answer string) bool {
	want := normalize(answer)
	for _, c := range choices {
		if normalize(c) == want {
			return true
		}
	}
	return false
}

// PointsFor returns the default award for a difficulty tier.
func PointsFor(difficulty int) int {
	return ClampDifficulty(difficulty) * 2
}

// TimeLimitFor returns the default time limit in seconds for a tier.
func TimeLimitFor(difficulty int) int {
	return 30 + ClampDifficulty(difficulty)*15
}

// ClampDifficulty bounds d to the valid tier range.
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	Field Field

	// Difficulty is the integer tier (1-5).
	Difficulty int

	// RecentQuestions contains the text of the most recent questions asked
	// in the session, oldest first. Used to avoid repeats.
	RecentQuestions []string

	// SessionID tags provider requests in the LLM request log. Optional.
	SessionID string
}
