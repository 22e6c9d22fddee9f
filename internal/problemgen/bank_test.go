package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
)

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestQuestionBank_CoversEveryFieldAndTier(t *testing.T) {
	for _, f := range AllFields {
		for d := MinDifficulty; d <= MaxDifficulty; d++ {
			found := false
			for _, e := range questionBank {
				if e.Field == f && e.Difficulty == d {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no bank entry for %s tier %d", f, d)
			}
		}
	}
}

func TestQuestionBank_EntriesPassValidators(t *testing.T) {
	cfg := DefaultConfig()
	for i, e := range questionBank {
		q := e.issue("bank")
		if err := q.Validate(); err != nil {
			t.Errorf("entry %d (%q): %v", i, e.Text, err)
			continue
		}
		input := GenerateInput{Field: e.Field, Difficulty: e.Difficulty}
		for _, v := range cfg.Validators {
			if verr := v.Validate(q, input); verr != nil {
				t.Errorf("entry %d (%q): %v", i, e.Text, verr)
			}
		}
		if q.Kind == KindMultipleChoice {
			if ok, _ := Evaluate(q, q.Answer); !ok {
				t.Errorf("entry %d: canonical answer evaluated incorrect", i)
			}
		}
	}
}

func TestMathTemplates_PassValidators(t *testing.T) {
	r := seededRand()
	cfg := DefaultConfig()
	for d, templates := range mathTemplates {
		for _, tmpl := range templates {
			for range 20 {
				text, answer, explanation := tmpl(r, d)
				q := &Question{
					Field:       FieldMath,
					Difficulty:  d,
					Text:        text,
					Kind:        KindNumeric,
					Answer:      formatNumber(answer),
					Explanation: explanation,
					Points:      PointsFor(d),
				}
				for _, v := range cfg.Validators {
					if verr := v.Validate(q, GenerateInput{Field: FieldMath, Difficulty: d}); verr != nil {
						t.Fatalf("tier %d %q = %s: %v", d, text, q.Answer, verr)
					}
				}
				if ok, _ := Evaluate(q, q.Answer); !ok {
					t.Fatalf("tier %d %q: answer %s evaluated incorrect", d, text, q.Answer)
				}
			}
		}
	}
}

func TestFallbackQuestion_Deterministic(t *testing.T) {
	for _, f := range AllFields {
		for d := MinDifficulty; d <= MaxDifficulty; d++ {
			a := FallbackQuestion(f, d)
			b := FallbackQuestion(f, d)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("%s/%d: fallback not deterministic", f, d)
			}
			if a.Field != f || a.Difficulty != d {
				t.Errorf("%s/%d: got %s/%d", f, d, a.Field, a.Difficulty)
			}
			if err := a.Validate(); err != nil {
				t.Errorf("%s/%d: %v", f, d, err)
			}
		}
	}
}

func TestFallbackQuestion_Examples(t *testing.T) {
	q := FallbackQuestion(FieldMath, 1)
	if q.ID != "fallback_math_1" {
		t.Errorf("unexpected id %q", q.ID)
	}
	if q.Text != "What is 7 + 5?" || q.Answer != "12" {
		t.Errorf("unexpected question %q = %q", q.Text, q.Answer)
	}
	if q.Points != 2 {
		t.Errorf("expected 2 points, got %d", q.Points)
	}

	q = FallbackQuestion(FieldLogic, 3)
	if q.Kind != KindMultipleChoice || q.Answer != "A > C" {
		t.Errorf("unexpected logic fallback: %+v", q)
	}
}

func TestFallbackQuestion_ClampsAndDefaults(t *testing.T) {
	if q := FallbackQuestion(FieldLanguage, 0); q.Difficulty != 1 {
		t.Errorf("expected tier 1, got %d", q.Difficulty)
	}
	if q := FallbackQuestion(FieldLanguage, 12); q.Difficulty != 5 {
		t.Errorf("expected tier 5, got %d", q.Difficulty)
	}
	if q := FallbackQuestion(Field("history"), 2); q.Field != FieldMath {
		t.Errorf("expected math for unknown field, got %s", q.Field)
	}
}

func TestFallbackQuestion_ChoicesNotShared(t *testing.T) {
	q := FallbackQuestion(FieldLogic, 3)
	q.Choices[0] = "mutated"
	if FallbackQuestion(FieldLogic, 3).Choices[0] == "mutated" {
		t.Error("fallback choices alias the bank")
	}
}

func TestBankGenerator_StaysNearTier(t *testing.T) {
	g := NewBankGenerator(seededRand())
	for _, f := range AllFields {
		for d := MinDifficulty; d <= MaxDifficulty; d++ {
			for range 10 {
				q, err := g.Generate(context.Background(), GenerateInput{Field: f, Difficulty: d})
				if err != nil {
					t.Fatalf("%s/%d: %v", f, d, err)
				}
				if q.Field != f {
					t.Errorf("expected field %s, got %s", f, q.Field)
				}
				if absInt(q.Difficulty-d) > 1 {
					t.Errorf("%s: requested tier %d, got %d", f, d, q.Difficulty)
				}
				if err := q.Validate(); err != nil {
					t.Errorf("%s/%d: %v", f, d, err)
				}
			}
		}
	}
}

func TestBankGenerator_AvoidsRecent(t *testing.T) {
	g := NewBankGenerator(seededRand())
	recent := []string{
		"How many sides does a triangle have?",
		"Which shape comes next: circle, square, circle, square, ___?",
	}
	for range 20 {
		q, err := g.Generate(context.Background(), GenerateInput{
			Field:           FieldVisualPatterns,
			Difficulty:      1,
			RecentQuestions: recent,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, r := range recent {
			if q.Text == r {
				t.Errorf("repeated recent question %q", r)
			}
		}
	}
}

func TestBankGenerator_UnknownField(t *testing.T) {
	g := NewBankGenerator(seededRand())
	if _, err := g.Generate(context.Background(), GenerateInput{Field: "history", Difficulty: 1}); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLCMTemplate_LeastCommonMultiple(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 50 {
		text, v, _ := lcmTemplate(r, 3)
		var a, b int64
		if _, err := fmt.Sscanf(text, "What is the least common multiple of %d and %d?", &a, &b); err != nil {
			t.Fatalf("unexpected question %q: %v", text, err)
		}
		lcm := int64(v)
		if lcm%a != 0 || lcm%b != 0 {
			t.Fatalf("%d is not a multiple of %d and %d", lcm, a, b)
		}
		for m := max(a, b); m < lcm; m++ {
			if m%a == 0 && m%b == 0 {
				t.Fatalf("lcm(%d, %d) = %d, but %d is smaller", a, b, lcm, m)
			}
		}
	}

	for _, tc := range [][3]int64{{12, 18, 6}, {7, 0, 7}, {0, 5, 5}, {17, 5, 1}} {
		if got := gcd(tc[0], tc[1]); got != tc[2] {
			t.Errorf("gcd(%d, %d) = %d, want %d", tc[0], tc[1], got, tc[2])
		}
	}
}
