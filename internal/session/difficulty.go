package session

import (
	"math"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

// MinDifficulty is the lower bound of the continuous difficulty.
const MinDifficulty = 1.0

// DifficultyParams tunes the difficulty controller.
type DifficultyParams struct {
	// Threshold is the accuracy above which difficulty increases.
	// Difficulty decreases below Threshold - 0.2.
	Threshold float64 `mapstructure:"threshold"`

	Step float64 `mapstructure:"step"`

	// Max is the upper bound, at most problemgen.MaxDifficulty.
	Max float64 `mapstructure:"max"`

	// Window is the number of most recent answers used to compute accuracy.
	// Zero uses the whole session.
	Window int `mapstructure:"window"`
}

// DefaultDifficultyParams returns threshold 0.7, step 0.5, max 5.0,
// cumulative accuracy.
func DefaultDifficultyParams() DifficultyParams {
	return DifficultyParams{
		Threshold: 0.7,
		Step:      0.5,
		Max:       5.0,
	}
}

// NextDifficulty returns the difficulty after an answer given correct out
// of total answers. With no answers the current value is kept. The result
// is always within [MinDifficulty, p.Max].
func NextDifficulty(current float64, correct, total int, p DifficultyParams) float64 {
	next := current
	if total > 0 {
		accuracy := float64(correct) / float64(total)
		switch {
		case accuracy > p.Threshold:
			next = current + p.Step
		case accuracy < p.Threshold-0.2:
			next = current - p.Step
		}
	}
	return clampDifficulty(next, p.Max)
}

func clampDifficulty(d, max float64) float64 {
	if max < MinDifficulty {
		max = MinDifficulty
	}
	return math.Max(MinDifficulty, math.Min(max, d))
}

// Tier converts a continuous difficulty to the integer tier passed to
// question providers.
func Tier(d float64) int {
	return problemgen.ClampDifficulty(int(math.Round(d)))
}
