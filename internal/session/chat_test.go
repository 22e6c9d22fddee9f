package session

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

func TestChat_SelectsFieldFromMessage(t *testing.T) {
	e := testEngine(t, &stubGenerator{})
	ctx := context.Background()
	s, err := e.Create(ctx, "")
	require.NoError(t, err)

	reply, err := e.Chat(ctx, s.ID, ChatInput{Message: "  Visual Patterns "})
	require.NoError(t, err)
	assert.Equal(t, "Great choice! Let's test your Visual Patterns skills. Here's your first question:", reply.Response)
	require.NotNil(t, reply.Question)
	assert.Equal(t, problemgen.FieldVisualPatterns, reply.Question.Field)
	assert.False(t, reply.IsComplete)

	stored, err := e.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, problemgen.FieldVisualPatterns, stored.SelectedField)
}

func TestChat_ExplicitField(t *testing.T) {
	e := testEngine(t, &stubGenerator{})
	ctx := context.Background()
	s, err := e.Create(ctx, "")
	require.NoError(t, err)

	reply, err := e.Chat(ctx, s.ID, ChatInput{Message: "let's go", Field: "logic"})
	require.NoError(t, err)
	assert.Equal(t, problemgen.FieldLogic, reply.Question.Field)

	s2, err := e.Create(ctx, "")
	require.NoError(t, err)
	_, err = e.Chat(ctx, s2.ID, ChatInput{Field: "chemistry"})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestChat_UnrecognizedInputIsNotStored(t *testing.T) {
	e := testEngine(t, &stubGenerator{})
	ctx := context.Background()
	s, err := e.Create(ctx, "")
	require.NoError(t, err)

	reply, err := e.Chat(ctx, s.ID, ChatInput{Message: "hello there"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply.Response, MsgUnrecognized))
	assert.Contains(t, reply.Response, "visual-patterns")
	assert.Nil(t, reply.Question)

	stored, err := e.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 1)
}

func TestChat_Answers(t *testing.T) {
	e := testEngine(t, &stubGenerator{})
	ctx := context.Background()
	s, err := e.Create(ctx, "")
	require.NoError(t, err)
	_, err = e.Chat(ctx, s.ID, ChatInput{Message: "math"})
	require.NoError(t, err)

	reply, err := e.Chat(ctx, s.ID, ChatInput{Message: "4"})
	require.NoError(t, err)
	assert.Equal(t, "Correct! 2 + 2 = 4.", reply.Response)
	assert.Equal(t, 1, reply.Stats.TotalQuestions)
	assert.Equal(t, 1, reply.Stats.CorrectAnswers)
	assert.Equal(t, 1.0, reply.Stats.Accuracy)
	assert.Equal(t, 1.5, reply.Difficulty)
	assert.NotNil(t, reply.Question)

	reply, err = e.Chat(ctx, s.ID, ChatInput{Message: "3"})
	require.NoError(t, err)
	assert.Equal(t, "Incorrect. 2 + 2 = 4.", reply.Response)
	assert.Equal(t, 0.5, reply.Stats.Accuracy)

	reply, err = e.Chat(ctx, s.ID, ChatInput{Message: "   "})
	require.NoError(t, err)
	assert.Equal(t, MsgUnrecognized, reply.Response)
	assert.Equal(t, 2, reply.Stats.TotalQuestions)
}

func TestChat_CompleteSession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = 1
	e := NewEngine(newTestStore(), &stubGenerator{}, cfg)
	ctx := context.Background()
	s, err := e.Create(ctx, "")
	require.NoError(t, err)
	_, err = e.Chat(ctx, s.ID, ChatInput{Message: "math"})
	require.NoError(t, err)

	reply, err := e.Chat(ctx, s.ID, ChatInput{Message: "4"})
	require.NoError(t, err)
	assert.True(t, reply.IsComplete)
	assert.Nil(t, reply.Question)

	reply, err = e.Chat(ctx, s.ID, ChatInput{Message: "4"})
	require.NoError(t, err)
	assert.Equal(t, MsgComplete, reply.Response)

	stored, err := e.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalQuestions)
}

func TestChat_UnknownSession(t *testing.T) {
	e := testEngine(t, &stubGenerator{})
	_, err := e.Chat(context.Background(), "nope", ChatInput{Message: "math"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChat_StatsWithoutAnswers(t *testing.T) {
	r := newChatReply(&Session{ID: "s"}, "hi")
	assert.Equal(t, 0.0, r.Stats.Accuracy)
}
