package session

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

// State is derived from the session fields; it is never stored.
type State int

const (
	StateAwaitingField  State = iota // No field selected yet
	StateAwaitingAnswer              // A question is pending
	StateComplete                    // Terminal
)

func (s State) String() string {
	switch s {
	case StateAwaitingField:
		return "awaiting_field"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// MessageKind identifies who produced a chat message.
type MessageKind string

const (
	KindBot      MessageKind = "bot"
	KindUser     MessageKind = "user"
	KindQuestion MessageKind = "question"
)

// ChatMessage is one entry of the session log. Messages are never mutated
// after they are appended.
type ChatMessage struct {
	// ID is a ULID, so ids sort in creation order.
	ID string `json:"id"`

	Kind    MessageKind `json:"type"`
	Content string      `json:"content"`

	// Question is set only for KindQuestion messages.
	Question *problemgen.Question `json:"question,omitempty"`

	// IsCorrect is set only on answer feedback messages.
	IsCorrect *bool `json:"is_correct,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Session is the aggregate for one quiz run.
type Session struct {
	ID     string `json:"session_id"`
	UserID string `json:"user_id,omitempty"`

	// SelectedField is empty until a field has been selected.
	SelectedField problemgen.Field `json:"selected_field,omitempty"`

	// CurrentQuestion is the pending question, nil before field selection
	// and after completion.
	CurrentQuestion *problemgen.Question `json:"current_question"`

	Score          int `json:"score"`
	TotalQuestions int `json:"total_questions"`
	CorrectAnswers int `json:"correct_answers"`

	// Difficulty is continuous within [MinDifficulty, DifficultyParams.Max].
	Difficulty float64 `json:"difficulty"`

	FieldScores FieldScores `json:"field_scores"`

	// DifficultyHistory holds the difficulty in force when each answered
	// question was asked, in answer order.
	DifficultyHistory []float64 `json:"difficulty_history"`

	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	IsComplete bool       `json:"is_complete"`

	Messages []ChatMessage `json:"messages"`
}

// State returns the state machine position of s.
func (s *Session) State() State {
	switch {
	case s.IsComplete:
		return StateComplete
	case s.SelectedField == "":
		return StateAwaitingField
	default:
		return StateAwaitingAnswer
	}
}

// Accuracy returns CorrectAnswers / TotalQuestions, or 0 with no answers.
func (s *Session) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions)
}

// recentQuestions returns the texts of the last n question messages,
// oldest first.
func (s *Session) recentQuestions(n int) []string {
	var texts []string
	for i := len(s.Messages) - 1; i >= 0 && len(texts) < n; i-- {
		if s.Messages[i].Kind == KindQuestion {
			texts = append(texts, s.Messages[i].Content)
		}
	}
	for i, j := 0, len(texts)-1; i < j; i, j = i+1, j-1 {
		texts[i], texts[j] = texts[j], texts[i]
	}
	return texts
}

// recentOutcomes returns correct and total over the last n scored answers.
func (s *Session) recentOutcomes(n int) (correct, total int) {
	for i := len(s.Messages) - 1; i >= 0 && total < n; i-- {
		if ok := s.Messages[i].IsCorrect; ok != nil {
			total++
			if *ok {
				correct++
			}
		}
	}
	return correct, total
}

func (s *Session) appendMessage(m ChatMessage) {
	if m.ID == "" {
		m.ID = ulid.Make().String()
	}
	s.Messages = append(s.Messages, m)
}
