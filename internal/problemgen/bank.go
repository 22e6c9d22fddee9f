package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// BankGenerator serves questions from the static bank and, for the math
// field, from parametrized arithmetic templates. It never fails for a
// valid field.
type BankGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBankGenerator creates a BankGenerator. A nil rng seeds one from the
// clock; tests pass a seeded source for reproducible picks.
func NewBankGenerator(rng *rand.Rand) *BankGenerator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	return &BankGenerator{rng: rng}
}

// Generate picks a question for the field within one tier of the requested
// difficulty, skipping recently asked questions when possible.
func (g *BankGenerator) Generate(_ context.Context, input GenerateInput) (*Question, error) {
	if !input.Field.Valid() {
		return nil, fmt.Errorf("unknown field %q", input.Field)
	}
	d := ClampDifficulty(input.Difficulty)

	g.mu.Lock()
	defer g.mu.Unlock()

	if input.Field == FieldMath && g.rng.IntN(2) == 0 {
		if q := g.fromTemplate(d); q != nil {
			return q, nil
		}
	}

	seen := seenSet(input.RecentQuestions)
	var fresh, all []bankEntry
	for _, e := range questionBank {
		if e.Field != input.Field || absInt(e.Difficulty-d) > 1 {
			continue
		}
		all = append(all, e)
		if !seen[normalize(e.Text)] {
			fresh = append(fresh, e)
		}
	}

	pool := fresh
	if len(pool) == 0 {
		pool = all
	}
	if len(pool) == 0 {
		return FallbackQuestion(input.Field, d), nil
	}

	// Prefer exact-tier entries when available.
	var exact []bankEntry
	for _, e := range pool {
		if e.Difficulty == d {
			exact = append(exact, e)
		}
	}
	if len(exact) > 0 && g.rng.IntN(3) > 0 {
		pool = exact
	}

	e := pool[g.rng.IntN(len(pool))]
	return e.issue(newQuestionID(e.Field, e.Difficulty)), nil
}

func (g *BankGenerator) fromTemplate(d int) *Question {
	templates := mathTemplates[d]
	if len(templates) == 0 {
		return nil
	}
	t := templates[g.rng.IntN(len(templates))]
	text, answer, explanation := t(g.rng, d)
	return &Question{
		ID:          newQuestionID(FieldMath, d),
		Field:       FieldMath,
		Difficulty:  d,
		Text:        text,
		Kind:        KindNumeric,
		Answer:      formatNumber(answer),
		Explanation: explanation,
		Points:      PointsFor(d),
		TimeLimit:   TimeLimitFor(d),
	}
}

// issue converts a bank entry into a Question with the given ID.
func (e bankEntry) issue(id string) *Question {
	var choices []string
	if len(e.Choices) > 0 {
		choices = append([]string(nil), e.Choices...)
	}
	return &Question{
		ID:          id,
		Field:       e.Field,
		Difficulty:  e.Difficulty,
		Text:        e.Text,
		Kind:        e.Kind,
		Choices:     choices,
		Answer:      e.Answer,
		Explanation: e.Explanation,
		Points:      PointsFor(e.Difficulty),
		TimeLimit:   TimeLimitFor(e.Difficulty),
	}
}

// FallbackQuestion returns the statically defined question for a field and
// tier. The result is deterministic: the same inputs always produce an
// identical question, including its ID. Out-of-range tiers are clamped and
// an unknown field falls back to math.
func FallbackQuestion(field Field, difficulty int) *Question {
	d := ClampDifficulty(difficulty)
	if !field.Valid() {
		field = FieldMath
	}
	for _, e := range questionBank {
		if e.Field == field && e.Difficulty == d {
			return e.issue(fmt.Sprintf("fallback_%s_%d", field, d))
		}
	}
	return &Question{
		ID:          fmt.Sprintf("fallback_%s_%d", field, d),
		Field:       field,
		Difficulty:  d,
		Text:        "What is 1 + 1?",
		Kind:        KindNumeric,
		Answer:      "2",
		Explanation: "1 + 1 = 2.",
		Points:      PointsFor(d),
		TimeLimit:   TimeLimitFor(d),
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
