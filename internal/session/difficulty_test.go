package session

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNextDifficulty(t *testing.T) {
	p := DefaultDifficultyParams()

	tests := []struct {
		name    string
		current float64
		correct int
		total   int
		want    float64
	}{
		{"no answers keeps current", 2.0, 0, 0, 2.0},
		{"4 of 5 raises", 2.0, 4, 5, 2.5},
		{"2 of 5 lowers", 3.0, 2, 5, 2.5},
		{"exactly threshold holds", 3.0, 7, 10, 3.0},
		{"exactly threshold minus 0.2 holds", 3.0, 1, 2, 3.0},
		{"between bands holds", 3.0, 3, 5, 3.0},
		{"capped at max", 5.0, 5, 5, 5.0},
		{"step capped at max", 4.8, 5, 5, 5.0},
		{"floored at 1", 1.0, 0, 5, 1.0},
		{"step floored at 1", 1.2, 0, 5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDifficulty(tt.current, tt.correct, tt.total, p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NextDifficulty(%v, %d, %d) = %v, want %v", tt.current, tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestNextDifficulty_CustomMax(t *testing.T) {
	p := DifficultyParams{Threshold: 0.7, Step: 1.0, Max: 3.0}
	if got := NextDifficulty(2.5, 1, 1, p); got != 3.0 {
		t.Errorf("got %v, want 3.0", got)
	}
	// An out-of-range current value is pulled back into bounds.
	if got := NextDifficulty(4.0, 0, 0, p); got != 3.0 {
		t.Errorf("got %v, want 3.0", got)
	}
}

func TestNextDifficulty_StaysInBounds(t *testing.T) {
	p := DefaultDifficultyParams()
	rng := rand.New(rand.NewPCG(7, 11))

	d := 1.0
	correct, total := 0, 0
	for i := 0; i < 1000; i++ {
		total++
		if rng.IntN(2) == 0 {
			correct++
		}
		d = NextDifficulty(d, correct, total, p)
		if d < MinDifficulty || d > p.Max {
			t.Fatalf("step %d: difficulty %v out of [1, %v]", i, d, p.Max)
		}
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		d    float64
		want int
	}{
		{1.0, 1},
		{1.4, 1},
		{1.5, 2},
		{2.5, 3},
		{4.9, 5},
		{5.0, 5},
		{0.2, 1},
		{7.0, 5},
	}
	for _, tt := range tests {
		if got := Tier(tt.d); got != tt.want {
			t.Errorf("Tier(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
