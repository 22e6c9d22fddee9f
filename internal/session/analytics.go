package session

import (
	"strings"
	"time"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

// Analytics is the performance report for a session.
type Analytics struct {
	SessionID             string                          `json:"session_id"`
	TotalScore            int                             `json:"total_score"`
	Accuracy              float64                         `json:"accuracy"`
	QuestionsAnswered     int                             `json:"questions_answered"`
	DifficultyReached     float64                         `json:"difficulty_reached"`
	DifficultyProgression []float64                       `json:"difficulty_progression"`
	FieldPerformance      map[problemgen.Field]FieldScore `json:"field_performance"`
	TimeSpentSeconds      float64                         `json:"time_spent"`
	Strengths             []string                        `json:"strengths"`
	Weaknesses            []string                        `json:"weaknesses"`
	Recommendations       []string                        `json:"recommendations"`
	IsComplete            bool                            `json:"is_complete"`
}

// BuildAnalytics creates the report for s. Open sessions measure time
// spent up to now.
func BuildAnalytics(s *Session, now time.Time) *Analytics {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	spent := end.Sub(s.StartTime).Seconds()
	if spent < 0 {
		spent = 0
	}

	strengths, weaknesses := s.FieldScores.Summarize()
	a := &Analytics{
		SessionID:             s.ID,
		TotalScore:            s.Score,
		Accuracy:              s.Accuracy(),
		QuestionsAnswered:     s.TotalQuestions,
		DifficultyReached:     s.Difficulty,
		DifficultyProgression: append([]float64{}, s.DifficultyHistory...),
		FieldPerformance:      s.FieldScores.Map(),
		TimeSpentSeconds:      spent,
		Strengths:             fieldTitles(strengths),
		Weaknesses:            fieldTitles(weaknesses),
		IsComplete:            s.IsComplete,
	}
	a.Recommendations = recommend(s.TotalQuestions, a.Accuracy, a.Weaknesses)
	return a
}

func recommend(answered int, accuracy float64, weaknesses []string) []string {
	recs := []string{}
	if answered > 0 {
		switch {
		case accuracy < 0.6:
			recs = append(recs,
				"Focus on fundamental concepts in your chosen field",
				"Take more time to read questions carefully",
			)
		case accuracy > 0.8:
			recs = append(recs,
				"Try more challenging problems to push your limits",
				"Explore advanced topics in your field",
			)
		}
	}
	if len(weaknesses) > 0 {
		recs = append(recs, "Consider practicing more in: "+strings.Join(weaknesses, ", "))
	}
	return recs
}

func fieldTitles(fields []problemgen.Field) []string {
	titles := make([]string, len(fields))
	for i, f := range fields {
		titles[i] = f.Title()
	}
	return titles
}
