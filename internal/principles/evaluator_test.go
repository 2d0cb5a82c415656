package principles

import (
	"math"
	"testing"
	"time"

	"github.com/sattva-labs/dharmakit/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func seqID() func() string {
	n := 0
	return func() string {
		n++
		return "eval-" + string(rune('a'+n-1))
	}
}

func TestEvaluate_SattvicScenario(t *testing.T) {
	e := NewDefaultEvaluator()
	r, err := e.Evaluate(model.Action{
		ID: "a1",
		Features: model.FeatureVector{
			Altruism: 0.9, Deliberation: 0.85, Attachment: 0.1, Agitation: 0.05,
			Transparency: 0.95, Effort: 0.8, HarmPotential: 0.0, Consistency: 0.9,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.CompositeScore <= 0.85 {
		t.Errorf("composite %.3f, want > 0.85", r.CompositeScore)
	}
	if r.Level != model.LevelHigh {
		t.Errorf("level %v, want high", r.Level)
	}
	if !r.IsAligned {
		t.Error("expected aligned")
	}
	if len(r.Violations) != 0 {
		t.Errorf("unexpected violations: %v", r.Violations)
	}
}

func TestEvaluate_TamasicScenario(t *testing.T) {
	e := NewDefaultEvaluator()
	r, err := e.Evaluate(model.Action{
		ID: "a2",
		Features: model.FeatureVector{
			Altruism: 0.0, Deliberation: 0.1, Attachment: 0.95, Agitation: 0.9,
			Transparency: 0.0, Effort: 0.2, HarmPotential: 0.95, Consistency: 0.0,
			DeceptionLevel: 1.0,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.CompositeScore >= 0.15 {
		t.Errorf("composite %.3f, want < 0.15", r.CompositeScore)
	}
	if r.Level != model.LevelCritical {
		t.Errorf("level %v, want critical", r.Level)
	}
	if len(r.Violations) < 4 {
		t.Errorf("got %d violations, want at least 4", len(r.Violations))
	}
	if r.IsAligned {
		t.Error("expected not aligned")
	}
}

func TestEvaluate_CompositeBounds(t *testing.T) {
	e := NewDefaultEvaluator()

	perfect := model.FeatureVector{
		Altruism: 1, Deliberation: 1, Transparency: 1, Effort: 1, Consistency: 1,
	}
	r, err := e.Evaluate(model.Action{ID: "p", Features: perfect})
	if err != nil {
		t.Fatal(err)
	}
	if r.CompositeScore != 1.0 {
		t.Errorf("all sub-scores 1.0 should give composite 1.0, got %f", r.CompositeScore)
	}

	worst := model.FeatureVector{
		Attachment: 1, Agitation: 1, HarmPotential: 1, DeceptionLevel: 1,
	}
	r, err = e.Evaluate(model.Action{ID: "w", Features: worst})
	if err != nil {
		t.Fatal(err)
	}
	if r.CompositeScore != 0.0 {
		t.Errorf("all sub-scores 0.0 should give composite 0.0, got %f", r.CompositeScore)
	}
}

func TestEvaluate_ZeroTotalWeightDefinesCompositeZero(t *testing.T) {
	e := NewEvaluator(Config{
		Principles: []Principle{
			{ID: "weightless", Name: "Weightless", Weight: 0,
				Score: func(model.FeatureVector) float64 { return 1 }},
		},
		ReplaceDefaults: true,
	})

	r, err := e.Evaluate(model.Action{ID: "z"})
	if err != nil {
		t.Fatal(err)
	}
	if r.CompositeScore != 0 {
		t.Errorf("zero total weight must yield 0, got %f", r.CompositeScore)
	}
	if r.Level != model.LevelCritical {
		t.Errorf("level %v, want critical", r.Level)
	}
}

func TestEvaluate_ReplaceVsMergePrinciples(t *testing.T) {
	custom := Principle{ID: "custom", Name: "Custom", Weight: 0.5,
		Score: func(model.FeatureVector) float64 { return 0.5 }}

	replaced := NewEvaluator(Config{Principles: []Principle{custom}, ReplaceDefaults: true})
	if got := len(replaced.Principles()); got != 1 {
		t.Errorf("replace: got %d principles, want 1", got)
	}

	merged := NewEvaluator(Config{Principles: []Principle{custom}})
	if got := len(merged.Principles()); got != len(DefaultPrinciples())+1 {
		t.Errorf("merge: got %d principles, want %d", got, len(DefaultPrinciples())+1)
	}
}

func TestEvaluate_ClampsOutOfRangeSubScores(t *testing.T) {
	e := NewEvaluator(Config{
		Principles: []Principle{
			{ID: "hot", Name: "Hot", Weight: 1,
				Score: func(model.FeatureVector) float64 { return 3.7 }},
		},
		ReplaceDefaults: true,
	})

	r, err := e.Evaluate(model.Action{ID: "c"})
	if err != nil {
		t.Fatal(err)
	}
	if r.CompositeScore != 1.0 {
		t.Errorf("clamped composite should be 1.0, got %f", r.CompositeScore)
	}
	if r.PrincipleScores[0].Score != 1.0 {
		t.Errorf("clamped sub-score should be 1.0, got %f", r.PrincipleScores[0].Score)
	}
}

func TestEvaluateBatch_SortsDescendingAndCapturesErrors(t *testing.T) {
	e := NewEvaluator(Config{NewID: seqID(), Now: fixedClock})

	good := model.FeatureVector{Altruism: 0.9, Deliberation: 0.9, Transparency: 0.9,
		Effort: 0.9, Consistency: 0.9}
	bad := model.FeatureVector{HarmPotential: 0.9, Attachment: 0.9, Agitation: 0.9,
		DeceptionLevel: 0.9}

	results, errs := e.EvaluateBatch([]model.Action{
		{ID: "low", Features: bad},
		{ID: "high", Features: good},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected batch errors: %v", errs)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Action.ID != "high" || results[1].Action.ID != "low" {
		t.Errorf("batch not sorted descending: %s, %s",
			results[0].Action.ID, results[1].Action.ID)
	}

	// A NaN-producing principle fails its item without aborting the batch.
	broken := NewEvaluator(Config{
		Principles: []Principle{
			{ID: "nan", Name: "NaN", Weight: 1,
				Score: func(fv model.FeatureVector) float64 {
					if fv.Altruism > 0.5 {
						return 0.9
					}
					return math.NaN()
				}},
		},
		ReplaceDefaults: true,
	})
	results, errs = broken.EvaluateBatch([]model.Action{
		{ID: "ok", Features: model.FeatureVector{Altruism: 1}},
		{ID: "nan-item"},
	})
	if len(results) != 1 || results[0].Action.ID != "ok" {
		t.Errorf("expected the healthy item to survive, got %v", results)
	}
	if len(errs) != 1 || errs[0].ActionID != "nan-item" {
		t.Errorf("expected one captured error for nan-item, got %v", errs)
	}
}

func TestEvaluate_ViolationAndCommendationThresholds(t *testing.T) {
	e := NewDefaultEvaluator()
	r, err := e.Evaluate(model.Action{
		ID: "mixed",
		Features: model.FeatureVector{
			// satya scores 1.0 (commendation), seva scores 0.0 (violation).
			Transparency: 1.0, Altruism: 0.0, Effort: 0.0,
			Deliberation: 0.5, Consistency: 0.5,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Commendations) == 0 {
		t.Error("expected a commendation for satya")
	}
	if len(r.Violations) == 0 {
		t.Error("expected a violation for seva")
	}
}
