package llm

import (
	"math"
	"testing"
)

func TestLookupCost_CoversConfiguredModels(t *testing.T) {
	var ids []string
	for _, m := range []map[string]string{geminiModels, openaiModels, anthropicModels, openRouterModels} {
		for _, id := range m {
			ids = append(ids, id)
		}
	}
	ids = append(ids, DefaultConfig().OpenRouter.Model)

	for _, id := range ids {
		if LookupCost(id) == nil {
			t.Errorf("no price for %q", id)
		}
	}
	if LookupCost("mock") != nil {
		t.Error("mock should have no price")
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	// A nine-question exam: ~1.5k prompt tokens, ~6k reply tokens.
	got := c.Cost(1500, 6000)
	if want := 0.00045 + 0.015; math.Abs(got-want) > 1e-9 {
		t.Errorf("Cost = %v, want %v", got, want)
	}

	if a, b := LookupCost("google/gemini-2.5-pro"), LookupCost("gemini-2.5-pro"); a == nil || *a != *b {
		t.Errorf("OpenRouter id priced as %v, want %v", a, b)
	}
}
