package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

// Replies for chat input that does not change the session.
const (
	MsgUnrecognized = "I didn't understand that. Please select a field to get started or answer the current question."
	MsgComplete     = "This session is complete. Start a new session to test yourself again."
)

// ChatInput is a free-form chat message. Field, when set, selects the
// field directly instead of parsing Message.
type ChatInput struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ChatStats summarizes progress for chat replies.
type ChatStats struct {
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
}

// ChatReply is the response to a chat message.
type ChatReply struct {
	SessionID  string               `json:"session_id"`
	Response   string               `json:"response"`
	Question   *problemgen.Question `json:"question"`
	Score      int                  `json:"score"`
	IsComplete bool                 `json:"is_complete"`
	Difficulty float64              `json:"difficulty"`
	Stats      ChatStats            `json:"stats"`
}

// Chat routes a message by session state: a field name while awaiting a
// field, an answer while awaiting an answer. Input that matches neither is
// answered with guidance and nothing is stored.
func (e *Engine) Chat(ctx context.Context, id string, in ChatInput) (*ChatReply, error) {
	s, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}

	switch s.State() {
	case StateAwaitingField:
		name := in.Field
		if name == "" {
			name = in.Message
		}
		field, err := problemgen.ParseField(name)
		if err != nil {
			if in.Field != "" {
				return nil, fmt.Errorf("%w: %q", ErrInvalidField, in.Field)
			}
			return newChatReply(s, MsgUnrecognized+" Available fields: "+fieldList()+"."), nil
		}
		s, err = e.SelectField(ctx, id, field)
		if err != nil {
			return nil, err
		}
		return newChatReply(s, fmt.Sprintf("Great choice! Let's test your %s skills. Here's your first question:", field.Title())), nil

	case StateAwaitingAnswer:
		if strings.TrimSpace(in.Message) == "" {
			return newChatReply(s, MsgUnrecognized), nil
		}
		res, err := e.SubmitAnswer(ctx, id, in.Message)
		if err != nil {
			return nil, err
		}
		s = res.Session
		return newChatReply(s, s.Messages[feedbackIndex(s)].Content), nil

	default:
		return newChatReply(s, MsgComplete), nil
	}
}

func newChatReply(s *Session, response string) *ChatReply {
	total := s.TotalQuestions
	if total < 1 {
		total = 1
	}
	return &ChatReply{
		SessionID:  s.ID,
		Response:   response,
		Question:   s.CurrentQuestion,
		Score:      s.Score,
		IsComplete: s.IsComplete,
		Difficulty: s.Difficulty,
		Stats: ChatStats{
			TotalQuestions: s.TotalQuestions,
			CorrectAnswers: s.CorrectAnswers,
			Accuracy:       float64(s.CorrectAnswers) / float64(total),
		},
	}
}

// feedbackIndex returns the index of the latest answer feedback message.
func feedbackIndex(s *Session) int {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].IsCorrect != nil {
			return i
		}
	}
	return len(s.Messages) - 1
}

func fieldList() string {
	names := make([]string, len(problemgen.AllFields))
	for i, f := range problemgen.AllFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
