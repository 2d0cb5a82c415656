package guna

import (
	"math"
	"strings"
	"testing"

	"github.com/sattva-labs/dharmakit/internal/model"
)

func TestClassify_SattvicAction(t *testing.T) {
	c := NewDefaultClassifier()
	out := c.Classify(model.FeatureVector{
		Altruism: 0.9, Deliberation: 0.85, Attachment: 0.1, Agitation: 0.05,
		Transparency: 0.95, Effort: 0.8, HarmPotential: 0.0, Consistency: 0.9,
	})

	if out.Primary != model.GunaSattva {
		t.Errorf("expected sattva, got %v", out.Primary)
	}
	if out.Scores.Sattva <= out.Scores.Rajas || out.Scores.Sattva <= out.Scores.Tamas {
		t.Errorf("sattva probability should dominate: %+v", out.Scores)
	}
	if !strings.Contains(out.Reasoning, "dominant sattva") {
		t.Errorf("unexpected reasoning: %s", out.Reasoning)
	}
}

func TestClassify_TamasicAction(t *testing.T) {
	c := NewDefaultClassifier()
	out := c.Classify(model.FeatureVector{
		Altruism: 0.0, Deliberation: 0.1, Attachment: 0.6, Agitation: 0.2,
		Transparency: 0.05, Effort: 0.1, HarmPotential: 0.95, Consistency: 0.1,
		DeceptionLevel: 0.9,
	})

	if out.Primary != model.GunaTamas {
		t.Errorf("expected tamas, got %v", out.Primary)
	}
}

func TestClassify_ScoresSumToOne(t *testing.T) {
	c := NewDefaultClassifier()
	vectors := []model.FeatureVector{
		{},
		{Altruism: 1, Deliberation: 1, Transparency: 1, Effort: 1, Consistency: 1},
		{Attachment: 1, Agitation: 1, HarmPotential: 1, DeceptionLevel: 1},
		{Altruism: 0.5, Deliberation: 0.5, Attachment: 0.5, Agitation: 0.5,
			Transparency: 0.5, Effort: 0.5, HarmPotential: 0.5, Consistency: 0.5},
	}

	for i, fv := range vectors {
		out := c.Classify(fv)
		sum := out.Scores.Sattva + out.Scores.Rajas + out.Scores.Tamas
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("vector %d: scores sum %.12f, want 1.0", i, sum)
		}
		for _, p := range []float64{out.Scores.Sattva, out.Scores.Rajas, out.Scores.Tamas} {
			if p < 0 || p > 1 {
				t.Errorf("vector %d: probability %f out of [0,1]", i, p)
			}
		}
	}
}

func TestClassify_ZeroVectorTieBreaksToPrecedence(t *testing.T) {
	// All-equal raw scores softmax to a three-way tie; precedence keeps
	// sattva as primary.
	c := NewClassifier(Config{DominanceThreshold: 0.1})
	out := c.Classify(model.FeatureVector{})

	if out.Primary != model.GunaSattva {
		t.Errorf("expected sattva on tie, got %v", out.Primary)
	}
	if out.Margin != 0 {
		t.Errorf("expected zero margin, got %f", out.Margin)
	}
	if !strings.Contains(out.Reasoning, "mixed classification") {
		t.Errorf("tie should read as mixed: %s", out.Reasoning)
	}
}

func TestClassify_MixedReasoningNamesRunnerUp(t *testing.T) {
	c := NewClassifier(Config{
		Sattva:             DimWeights{Altruism: 1},
		Rajas:              DimWeights{Effort: 1},
		Tamas:              DimWeights{HarmPotential: 1},
		DominanceThreshold: 0.1,
	})
	// Raw scores 0.50 vs 0.48 land well inside the dominance threshold.
	out := c.Classify(model.FeatureVector{Altruism: 0.5, Effort: 0.48})

	if out.Primary != model.GunaSattva {
		t.Fatalf("expected sattva primary, got %v", out.Primary)
	}
	if !strings.Contains(out.Reasoning, "mixed classification") {
		t.Errorf("expected mixed reasoning, got: %s", out.Reasoning)
	}
	if !strings.Contains(out.Reasoning, "tendencies") {
		t.Errorf("mixed reasoning should name the runner-up: %s", out.Reasoning)
	}
}

func TestClassify_LargeValuesStayFinite(t *testing.T) {
	// Softmax must not overflow for raw scores far outside the assumed
	// [0,1] feature range.
	c := NewDefaultClassifier()
	out := c.Classify(model.FeatureVector{
		Altruism: 500, HarmPotential: -500, Transparency: 400,
	})

	sum := out.Scores.Sattva + out.Scores.Rajas + out.Scores.Tamas
	if math.IsNaN(sum) || math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("softmax unstable for large inputs: sum=%f", sum)
	}
	if out.Primary != model.GunaSattva {
		t.Errorf("expected sattva, got %v", out.Primary)
	}
}
