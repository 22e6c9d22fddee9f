package problemgen

import (
	"context"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"
)

// DefaultAIRatio is the share of questions requested from the AI generator.
const DefaultAIRatio = 0.7

// MixGenerator routes each request to the AI generator with probability
// ratio and to the bank otherwise. An AI failure falls through to the bank.
type MixGenerator struct {
	ai     Generator
	bank   Generator
	ratio  float64
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMix creates a MixGenerator. A nil ai generator routes everything to
// the bank.
func NewMix(ai, bank Generator, ratio float64, rng *rand.Rand, logger *zap.Logger) *MixGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MixGenerator{ai: ai, bank: bank, ratio: ratio, rng: rng, logger: logger}
}

func (m *MixGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	if m.ai != nil && m.roll() < m.ratio {
		q, err := m.ai.Generate(ctx, input)
		if err == nil {
			return q, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		m.logger.Warn("AI question generation failed, using question bank",
			zap.String("field", string(input.Field)),
			zap.Int("difficulty", input.Difficulty),
			zap.Error(err))
	}
	return m.bank.Generate(ctx, input)
}

func (m *MixGenerator) roll() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64()
}
