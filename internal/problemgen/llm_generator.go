package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/iqfieldbot/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
}

// Generate produces a single question for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	if input.SessionID != "" {
		ctx = llm.WithSessionID(ctx, input.SessionID)
	}
	input.Difficulty = ClampDifficulty(input.Difficulty)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	points := raw.Points
	if points == 0 {
		points = PointsFor(input.Difficulty)
	}

	q := &Question{
		ID:          newQuestionID(input.Field, input.Difficulty),
		Field:       input.Field,
		Difficulty:  input.Difficulty,
		Text:        strings.TrimSpace(raw.Question),
		Kind:        AnswerKind(raw.Type),
		Choices:     raw.Options,
		Answer:      strings.TrimSpace(raw.CorrectAnswer),
		Explanation: strings.TrimSpace(raw.Explanation),
		Points:      points,
		TimeLimit:   TimeLimitFor(input.Difficulty),
	}
	if q.Kind != KindMultipleChoice {
		q.Choices = nil
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}

// newQuestionID returns an identifier such as "math_3_1f0c9a2e".
func newQuestionID(f Field, difficulty int) string {
	return fmt.Sprintf("%s_%d_%s", f, difficulty, uuid.NewString()[:8])
}
