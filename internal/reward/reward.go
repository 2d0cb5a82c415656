// Package reward reshapes an external scalar reward signal by blending it
// with a process-quality score (nishkama karma: the quality of the action,
// not its fruits, carries the weight).
package reward

import (
	"fmt"

	"github.com/sattva-labs/dharmakit/internal/model"
)

// Fn is the wrapped external reward function over a state transition.
type Fn func(state any, action model.Action, nextState any) float64

// QualityFn maps a feature vector to a [0,1] process-quality score.
type QualityFn func(model.FeatureVector) float64

// DefaultQuality is the built-in process-quality function: a weighted
// average of six sub-terms with its own weight set, independent of the
// evaluator's principle weights.
func DefaultQuality(fv model.FeatureVector) float64 {
	terms := []struct {
		weight float64
		score  float64
	}{
		{0.25, 1 - fv.HarmPotential},                           // ahimsa
		{0.2, 0.6*fv.Transparency + 0.4*(1-fv.DeceptionLevel)}, // satya
		{0.2, 1 - fv.Attachment},                               // nishkama
		{0.15, fv.Deliberation},                                // viveka
		{0.1, 0.5*fv.Altruism + 0.5*fv.Effort},                 // seva
		{0.1, fv.Consistency},                                  // consistency
	}
	var weighted, total float64
	for _, t := range terms {
		weighted += t.weight * model.Clamp01(t.score)
		total += t.weight
	}
	if total == 0 {
		return 0
	}
	return model.Clamp01(weighted / total)
}

// Config holds the reshaper's parameters.
type Config struct {
	// ProcessWeight is the blend coefficient lambda in [0,1] (clamped). 0
	// leaves the reward untouched; 1 lets quality alone determine it.
	ProcessWeight float64

	// RMin and RMax are the assumed range of the wrapped reward, used to
	// normalize into [-1,1] and back. Defaults [-1,1]. A degenerate
	// range (RMax <= RMin) falls back to the default.
	RMin float64
	RMax float64

	// Quality overrides the default process-quality function.
	Quality QualityFn

	// FloorNonNegative floors the reshaped reward at 0 when process
	// quality is at or above HighQualityThreshold: a well-conducted
	// action is not punished for an unlucky outcome.
	FloorNonNegative     bool
	HighQualityThreshold float64 // default 0.7

	// RecommendationThreshold marks the action recommended when quality
	// reaches it, independent of the reward value. Default 0.3.
	RecommendationThreshold float64
}

// DefaultConfig returns the reshaper defaults (lambda=0.5, range [-1,1]).
func DefaultConfig() Config {
	return Config{
		ProcessWeight:           0.5,
		RMin:                    -1,
		RMax:                    1,
		HighQualityThreshold:    0.7,
		RecommendationThreshold: 0.3,
	}
}

// Outcome is the reshaper's output for one transition.
type Outcome struct {
	OriginalReward float64 `json:"originalReward"`
	ProcessQuality float64 `json:"processQuality"`
	ModifiedReward float64 `json:"modifiedReward"`
	DampingFactor  float64 `json:"dampingFactor"`
	Recommended    bool    `json:"recommended"`
	Reasoning      string  `json:"reasoning"`
}

// Reshaper wraps an external reward function. Pure: configuration is fixed
// at construction.
type Reshaper struct {
	fn  Fn
	cfg Config
}

// New builds a reshaper around fn. A nil fn is treated as a constant zero
// reward.
func New(fn Fn, cfg Config) *Reshaper {
	def := DefaultConfig()
	cfg.ProcessWeight = model.Clamp01(cfg.ProcessWeight)
	if cfg.RMax <= cfg.RMin {
		cfg.RMin, cfg.RMax = def.RMin, def.RMax
	}
	if cfg.Quality == nil {
		cfg.Quality = DefaultQuality
	}
	if cfg.HighQualityThreshold == 0 {
		cfg.HighQualityThreshold = def.HighQualityThreshold
	}
	if cfg.RecommendationThreshold == 0 {
		cfg.RecommendationThreshold = def.RecommendationThreshold
	}
	cfg.HighQualityThreshold = model.Clamp01(cfg.HighQualityThreshold)
	cfg.RecommendationThreshold = model.Clamp01(cfg.RecommendationThreshold)
	if fn == nil {
		fn = func(any, model.Action, any) float64 { return 0 }
	}
	return &Reshaper{fn: fn, cfg: cfg}
}

// Conventional is the lambda=0 preset: reshaping is a no-op and the modified
// reward tracks the original exactly.
func Conventional(fn Fn) *Reshaper {
	cfg := DefaultConfig()
	cfg.ProcessWeight = 0
	return New(fn, cfg)
}

// PureNishkama is the lambda=1 preset. It wraps no reward function at all — the
// notional reward is pinned to RMax, so process quality alone determines
// the output.
func PureNishkama() *Reshaper {
	cfg := DefaultConfig()
	cfg.ProcessWeight = 1
	return New(func(any, model.Action, any) float64 { return cfg.RMax }, cfg)
}

// Compute runs the wrapped reward function on the transition, scores the
// action's process quality, and dampens the reward by
// (1-lambda) + lambda*quality inside the normalized [-1,1] window.
func (r *Reshaper) Compute(state any, action model.Action, nextState any) Outcome {
	original := r.fn(state, action, nextState)
	quality := model.Clamp01(r.cfg.Quality(action.Features))

	span := r.cfg.RMax - r.cfg.RMin
	normalized := -1 + 2*(original-r.cfg.RMin)/span

	damping := (1 - r.cfg.ProcessWeight) + r.cfg.ProcessWeight*quality
	modified := normalized * damping

	floored := false
	if r.cfg.FloorNonNegative && quality >= r.cfg.HighQualityThreshold && modified < 0 {
		modified = 0
		floored = true
	}

	rescaled := r.cfg.RMin + (modified+1)/2*span

	out := Outcome{
		OriginalReward: original,
		ProcessQuality: quality,
		ModifiedReward: rescaled,
		DampingFactor:  damping,
		Recommended:    quality >= r.cfg.RecommendationThreshold,
	}
	out.Reasoning = r.reasoning(out, floored)
	return out
}

func (r *Reshaper) reasoning(o Outcome, floored bool) string {
	s := fmt.Sprintf("reward %.3f reshaped to %.3f (quality %.2f, damping %.2f, lambda=%.2f)",
		o.OriginalReward, o.ModifiedReward, o.ProcessQuality, o.DampingFactor, r.cfg.ProcessWeight)
	if floored {
		s += "; negative reward floored for high-quality process"
	}
	if !o.Recommended {
		s += "; process quality below recommendation threshold"
	}
	return s
}
