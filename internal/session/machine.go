package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

// WelcomeMessage is the first message of every session.
const WelcomeMessage = "Hello! I'm IQFieldBot, your personalized intelligence testing assistant. " +
	"I'll adapt questions to your preferred field and adjust difficulty based on your performance. " +
	"Which field would you like to be tested on?"

// Asker returns the next question for input. It must always return a
// question; the Engine wraps the provider with a deterministic fallback.
type Asker func(input problemgen.GenerateInput) *problemgen.Question

// AnswerResult is the outcome of SubmitAnswer.
type AnswerResult struct {
	IsCorrect    bool                 `json:"is_correct"`
	Explanation  string               `json:"explanation"`
	Score        int                  `json:"score"`
	NextQuestion *problemgen.Question `json:"next_question"`
	IsComplete   bool                 `json:"is_complete"`
	Difficulty   float64              `json:"difficulty"`

	// Session is the updated session.
	Session *Session `json:"-"`
}

// Machine applies state transitions to an in-memory Session. It performs
// no I/O; questions come from the Asker passed to each transition.
type Machine struct {
	cfg Config
	now func() time.Time
}

// NewMachine creates a Machine. A nil now uses time.Now.
func NewMachine(cfg Config, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{cfg: cfg, now: now}
}

// Config returns the machine configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

func (m *Machine) timestamp() time.Time {
	return m.now().UTC()
}

// NewSession returns a session in StateAwaitingField holding only the
// welcome message.
func (m *Machine) NewSession(id, userID string) *Session {
	start := m.timestamp()
	s := &Session{
		ID:                id,
		UserID:            userID,
		Difficulty:        clampDifficulty(m.cfg.InitialDifficulty, m.cfg.Difficulty.Max),
		DifficultyHistory: []float64{},
		StartTime:         start,
	}
	s.appendMessage(ChatMessage{Kind: KindBot, Content: WelcomeMessage, Timestamp: start})
	return s
}

// SelectField chooses the quiz field and attaches the first question.
// It is only valid in StateAwaitingField; otherwise s is left untouched.
func (m *Machine) SelectField(s *Session, field problemgen.Field, ask Asker) error {
	if st := s.State(); st != StateAwaitingField {
		return fmt.Errorf("%w: cannot select a field while %s", ErrInvalidState, st)
	}
	if !field.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	s.SelectedField = field
	s.FieldScores.Reset(field)

	q := m.ask(s, ask)
	s.CurrentQuestion = q

	now := m.timestamp()
	s.appendMessage(ChatMessage{
		Kind:      KindBot,
		Content:   fmt.Sprintf("Excellent! You've selected %s. Let's begin with your first question.", field.Title()),
		Timestamp: now,
	})
	s.appendQuestion(q, now)
	return nil
}

// SubmitAnswer scores raw against the pending question, adapts the
// difficulty and either attaches the next question or completes the
// session.
func (m *Machine) SubmitAnswer(s *Session, raw string, ask Asker) (*AnswerResult, error) {
	switch st := s.State(); st {
	case StateComplete, StateAwaitingField:
		return nil, fmt.Errorf("%w: cannot answer while %s", ErrInvalidState, st)
	}
	q := s.CurrentQuestion
	if q == nil {
		return nil, ErrNoActiveQuestion
	}

	correct, explanation := problemgen.Evaluate(q, raw)

	s.DifficultyHistory = append(s.DifficultyHistory, s.Difficulty)
	s.TotalQuestions++
	if correct {
		s.CorrectAnswers++
		s.Score += q.Points
	}
	s.FieldScores.Record(q.Field, correct)

	now := m.timestamp()
	s.appendMessage(ChatMessage{Kind: KindUser, Content: raw, Timestamp: now})
	s.appendMessage(ChatMessage{
		Kind:      KindBot,
		Content:   feedbackText(correct, explanation),
		IsCorrect: &correct,
		Timestamp: now,
	})

	c, t := s.CorrectAnswers, s.TotalQuestions
	if w := m.cfg.Difficulty.Window; w > 0 {
		c, t = s.recentOutcomes(w)
	}
	s.Difficulty = NextDifficulty(s.Difficulty, c, t, m.cfg.Difficulty)

	if s.TotalQuestions >= m.cfg.Length {
		s.IsComplete = true
		s.EndTime = &now
		s.CurrentQuestion = nil
		s.appendMessage(ChatMessage{
			Kind: KindBot,
			Content: fmt.Sprintf("Session complete! You scored %d points with %d/%d correct answers.",
				s.Score, s.CorrectAnswers, s.TotalQuestions),
			Timestamp: now,
		})
	} else {
		next := m.ask(s, ask)
		s.CurrentQuestion = next
		s.appendQuestion(next, now)
	}

	return &AnswerResult{
		IsCorrect:    correct,
		Explanation:  explanation,
		Score:        s.Score,
		NextQuestion: s.CurrentQuestion,
		IsComplete:   s.IsComplete,
		Difficulty:   s.Difficulty,
		Session:      s,
	}, nil
}

func (m *Machine) ask(s *Session, ask Asker) *problemgen.Question {
	input := problemgen.GenerateInput{
		Field:           s.SelectedField,
		Difficulty:      Tier(s.Difficulty),
		RecentQuestions: s.recentQuestions(m.cfg.HistorySize),
		SessionID:       s.ID,
	}
	var q *problemgen.Question
	if ask != nil {
		q = ask(input)
	}
	if q == nil {
		q = problemgen.FallbackQuestion(input.Field, input.Difficulty)
	}
	return q
}

func (s *Session) appendQuestion(q *problemgen.Question, at time.Time) {
	s.appendMessage(ChatMessage{
		Kind:      KindQuestion,
		Content:   q.Text,
		Question:  q,
		Timestamp: at,
	})
}

func feedbackText(correct bool, explanation string) string {
	verdict := "Incorrect."
	if correct {
		verdict = "Correct!"
	}
	return strings.TrimSpace(verdict + " " + explanation)
}
