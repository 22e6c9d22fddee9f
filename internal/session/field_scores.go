package session

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

// Boundaries used by Summarize.
const (
	StrengthAccuracy = 0.8
	WeaknessAccuracy = 0.5
)

// FieldScore tracks cumulative answers for one field.
type FieldScore struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"` // Correct / Total (computed)
}

// record adds a new answer result to the score.
func (fs *FieldScore) record(correct bool) {
	fs.Total++
	if correct {
		fs.Correct++
	}
	fs.Accuracy = float64(fs.Correct) / float64(fs.Total)
}

// FieldScores holds one FieldScore per field, indexed by
// problemgen.Field.Index. Only fields that were reset or recorded are
// considered present.
type FieldScores struct {
	scores [problemgen.NumFields]FieldScore
	active [problemgen.NumFields]bool
}

// Record updates the score for field. Unknown fields are ignored.
func (f *FieldScores) Record(field problemgen.Field, correct bool) {
	i := field.Index()
	if i < 0 {
		return
	}
	f.active[i] = true
	f.scores[i].record(correct)
}

// Reset zeroes the score for field and marks it present.
func (f *FieldScores) Reset(field problemgen.Field) {
	i := field.Index()
	if i < 0 {
		return
	}
	f.active[i] = true
	f.scores[i] = FieldScore{}
}

// Get returns the score for field and whether it is present.
func (f *FieldScores) Get(field problemgen.Field) (FieldScore, bool) {
	i := field.Index()
	if i < 0 || !f.active[i] {
		return FieldScore{}, false
	}
	return f.scores[i], true
}

// Summarize splits scored fields into strengths (accuracy at or above
// StrengthAccuracy) and weaknesses (below WeaknessAccuracy). Fields with
// no answers are skipped. Results follow problemgen.AllFields order.
func (f *FieldScores) Summarize() (strengths, weaknesses []problemgen.Field) {
	for i, field := range problemgen.AllFields {
		s := f.scores[i]
		if !f.active[i] || s.Total == 0 {
			continue
		}
		switch {
		case s.Accuracy >= StrengthAccuracy:
			strengths = append(strengths, field)
		case s.Accuracy < WeaknessAccuracy:
			weaknesses = append(weaknesses, field)
		}
	}
	return strengths, weaknesses
}

// Map returns the present scores keyed by field.
func (f *FieldScores) Map() map[problemgen.Field]FieldScore {
	m := make(map[problemgen.Field]FieldScore)
	for i, field := range problemgen.AllFields {
		if f.active[i] {
			m[field] = f.scores[i]
		}
	}
	return m
}

func (f FieldScores) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Map())
}

func (f *FieldScores) UnmarshalJSON(data []byte) error {
	var m map[string]FieldScore
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*f = FieldScores{}
	for name, s := range m {
		i := problemgen.Field(name).Index()
		if i < 0 {
			return fmt.Errorf("field scores: unknown field %q", name)
		}
		f.active[i] = true
		f.scores[i] = s
	}
	return nil
}
