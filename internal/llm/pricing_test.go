package llm

import (
	"math"
	"testing"
)

func TestLookupCost_DefaultModelsPriced(t *testing.T) {
	cfg := DefaultConfig()
	defaults := []string{
		resolveModel(cfg.Anthropic.Model, anthropicModels),
		resolveModel(cfg.OpenAI.Model, openaiModels),
		resolveModel(cfg.Gemini.Model, geminiModels),
		cfg.OpenRouter.Model,
	}
	for _, aliases := range []map[string]string{anthropicModels, openaiModels, geminiModels} {
		for _, id := range aliases {
			defaults = append(defaults, id)
		}
	}
	for _, id := range defaults {
		if LookupCost(id) == nil {
			t.Errorf("no price for %q", id)
		}
	}
	if LookupCost("gpt-2") != nil {
		t.Error("unknown model should have no price")
	}
}

func TestModelCost_Cost(t *testing.T) {
	// A typical question: ~800 prompt tokens, ~150 completion tokens.
	c := LookupCost("gpt-4o-mini")
	got := c.Cost(800, 150)
	want := 800*0.15/1e6 + 150*0.6/1e6
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Cost = %g, want %g", got, want)
	}
}
