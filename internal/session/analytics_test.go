package session

import (
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

func TestBuildAnalytics_Recommendations(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    []string
	}{
		{
			name:    "low accuracy",
			correct: 2,
			total:   5,
			want: []string{
				"Focus on fundamental concepts in your chosen field",
				"Take more time to read questions carefully",
				"Consider practicing more in: Math",
			},
		},
		{
			name:    "high accuracy",
			correct: 9,
			total:   10,
			want: []string{
				"Try more challenging problems to push your limits",
				"Explore advanced topics in your field",
			},
		},
		{
			name:    "middling accuracy",
			correct: 7,
			total:   10,
			want:    []string{},
		},
		{
			name:  "no answers",
			total: 0,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{TotalQuestions: tt.total, CorrectAnswers: tt.correct, StartTime: testNow}
			for i := 0; i < tt.total; i++ {
				s.FieldScores.Record(problemgen.FieldMath, i < tt.correct)
			}
			a := BuildAnalytics(s, testNow)
			if !reflect.DeepEqual(a.Recommendations, tt.want) {
				t.Errorf("Recommendations = %q, want %q", a.Recommendations, tt.want)
			}
		})
	}
}

func TestBuildAnalytics_Report(t *testing.T) {
	end := testNow.Add(90 * time.Second)
	s := &Session{
		ID:                "s1",
		Score:             14,
		TotalQuestions:    5,
		CorrectAnswers:    4,
		Difficulty:        2.5,
		DifficultyHistory: []float64{1.0, 1.5, 2.0, 2.5, 2.0},
		StartTime:         testNow,
		EndTime:           &end,
		IsComplete:        true,
	}
	for _, ok := range []bool{true, true, false, true, true} {
		s.FieldScores.Record(problemgen.FieldLogic, ok)
	}

	a := BuildAnalytics(s, testNow.Add(time.Hour))

	if a.TotalScore != 14 || a.QuestionsAnswered != 5 || a.Accuracy != 0.8 {
		t.Errorf("totals = %+v", a)
	}
	if a.TimeSpentSeconds != 90 {
		t.Errorf("TimeSpentSeconds = %v, want 90 (end time wins over now)", a.TimeSpentSeconds)
	}
	if a.DifficultyReached != 2.5 {
		t.Errorf("DifficultyReached = %v", a.DifficultyReached)
	}
	if !reflect.DeepEqual(a.DifficultyProgression, s.DifficultyHistory) {
		t.Errorf("DifficultyProgression = %v", a.DifficultyProgression)
	}
	if !reflect.DeepEqual(a.Strengths, []string{"Logic"}) {
		t.Errorf("Strengths = %v, want [Logic]", a.Strengths)
	}
	if len(a.Weaknesses) != 0 {
		t.Errorf("Weaknesses = %v", a.Weaknesses)
	}
	if fs := a.FieldPerformance[problemgen.FieldLogic]; fs.Correct != 4 || fs.Total != 5 {
		t.Errorf("FieldPerformance = %+v", a.FieldPerformance)
	}

	// The report does not alias session state.
	a.DifficultyProgression[0] = 9
	if s.DifficultyHistory[0] != 1.0 {
		t.Error("DifficultyProgression aliases the session history")
	}
}

func TestBuildAnalytics_OpenSessionUsesNow(t *testing.T) {
	s := &Session{StartTime: testNow}
	a := BuildAnalytics(s, testNow.Add(2*time.Minute))
	if a.TimeSpentSeconds != 120 {
		t.Errorf("TimeSpentSeconds = %v, want 120", a.TimeSpentSeconds)
	}
}
