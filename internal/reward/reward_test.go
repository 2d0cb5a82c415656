package reward

import (
	"math"
	"testing"

	"github.com/sattva-labs/dharmakit/internal/model"
)

func carefulAction() model.Action {
	return model.Action{
		ID: "careful",
		Features: model.FeatureVector{
			Altruism: 0.8, Deliberation: 0.9, Attachment: 0.1, Agitation: 0.1,
			Transparency: 0.9, Effort: 0.8, HarmPotential: 0.05, Consistency: 0.85,
		},
	}
}

func recklessAction() model.Action {
	return model.Action{
		ID: "reckless",
		Features: model.FeatureVector{
			Attachment: 0.9, Agitation: 0.8, HarmPotential: 0.9,
			DeceptionLevel: 0.7, Transparency: 0.1,
		},
	}
}

func TestConventional_IsIdentity(t *testing.T) {
	rewards := []float64{-1, -0.5, 0, 0.33, 1}
	for _, want := range rewards {
		r := Conventional(func(any, model.Action, any) float64 { return want })
		out := r.Compute(nil, recklessAction(), nil)
		if math.Abs(out.ModifiedReward-want) > 1e-12 {
			t.Errorf("lambda=0 must be a no-op: got %f, want %f", out.ModifiedReward, want)
		}
		if out.DampingFactor != 1 {
			t.Errorf("lambda=0 damping %f, want 1", out.DampingFactor)
		}
	}
}

func TestPureNishkama_IgnoresRewardFunction(t *testing.T) {
	r := PureNishkama()
	a := carefulAction()

	first := r.Compute(nil, a, nil)
	second := r.Compute("different state", a, 42)

	if first.ModifiedReward != second.ModifiedReward {
		t.Errorf("pure preset must not vary with transition inputs: %f vs %f",
			first.ModifiedReward, second.ModifiedReward)
	}
	if first.DampingFactor != first.ProcessQuality {
		t.Errorf("lambda=1 damping must equal quality: %f vs %f",
			first.DampingFactor, first.ProcessQuality)
	}
}

func TestCompute_DampensRewardForPoorProcess(t *testing.T) {
	fn := func(any, model.Action, any) float64 { return 1.0 }
	r := New(fn, DefaultConfig())

	careful := r.Compute(nil, carefulAction(), nil)
	reckless := r.Compute(nil, recklessAction(), nil)

	if reckless.ModifiedReward >= careful.ModifiedReward {
		t.Errorf("reckless process should earn less: %f >= %f",
			reckless.ModifiedReward, careful.ModifiedReward)
	}
	if reckless.Recommended {
		t.Error("reckless action should not be recommended")
	}
	if !careful.Recommended {
		t.Error("careful action should be recommended")
	}
}

func TestCompute_FloorsNegativeRewardForHighQuality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FloorNonNegative = true
	r := New(func(any, model.Action, any) float64 { return -0.8 }, cfg)

	out := r.Compute(nil, carefulAction(), nil)
	if out.ProcessQuality < cfg.HighQualityThreshold {
		t.Fatalf("fixture quality %f below floor threshold; adjust fixture", out.ProcessQuality)
	}
	if out.ModifiedReward < 0 {
		t.Errorf("high-quality action should not score negative, got %f", out.ModifiedReward)
	}

	// Without the floor the same transition stays negative.
	cfg.FloorNonNegative = false
	bare := New(func(any, model.Action, any) float64 { return -0.8 }, cfg)
	if out := bare.Compute(nil, carefulAction(), nil); out.ModifiedReward >= 0 {
		t.Errorf("expected negative reshaped reward without floor, got %f", out.ModifiedReward)
	}
}

func TestCompute_CustomRangeRescales(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProcessWeight = 0
	cfg.RMin, cfg.RMax = 0, 100
	r := New(func(any, model.Action, any) float64 { return 75 }, cfg)

	out := r.Compute(nil, carefulAction(), nil)
	if math.Abs(out.ModifiedReward-75) > 1e-9 {
		t.Errorf("identity reshaping in [0,100]: got %f, want 75", out.ModifiedReward)
	}
}

func TestCompute_DegenerateRangeFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RMin, cfg.RMax = 3, 3
	r := New(func(any, model.Action, any) float64 { return 0.5 }, cfg)

	out := r.Compute(nil, carefulAction(), nil)
	if math.IsNaN(out.ModifiedReward) || math.IsInf(out.ModifiedReward, 0) {
		t.Errorf("degenerate range must not produce non-finite reward: %f", out.ModifiedReward)
	}
}

func TestDefaultQuality_Bounds(t *testing.T) {
	cases := []model.FeatureVector{
		{},
		{Altruism: 1, Deliberation: 1, Transparency: 1, Effort: 1, Consistency: 1},
		{HarmPotential: 1, Attachment: 1, DeceptionLevel: 1},
	}
	for i, fv := range cases {
		q := DefaultQuality(fv)
		if q < 0 || q > 1 {
			t.Errorf("case %d: quality %f out of [0,1]", i, q)
		}
	}
}
