// Package optimizer ranks candidate actions by dharmic fitness and selects
// one, deterministically or by softmax sampling.
package optimizer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/sattva-labs/dharmakit/internal/guna"
	"github.com/sattva-labs/dharmakit/internal/model"
)

// ErrNoCandidates is returned when Optimize is called with an empty
// candidate list. This is the one hard precondition in the library.
var ErrNoCandidates = errors.New("optimizer: no candidate actions")

// Principle is an optimizer-specific scoring rule. The optimizer carries its
// own principle set, distinct from the evaluator's five.
type Principle struct {
	ID     string
	Name   string
	Weight float64
	Score  func(model.FeatureVector) float64
}

// DefaultPrinciples returns the six built-in optimizer principles.
func DefaultPrinciples() []Principle {
	return []Principle{
		{ID: "nishkama", Name: "Desireless action", Weight: 0.2,
			Score: func(fv model.FeatureVector) float64 {
				return 1 - fv.Attachment
			}},
		{ID: "ahimsa", Name: "Non-harm", Weight: 0.2,
			Score: func(fv model.FeatureVector) float64 {
				return 1 - fv.HarmPotential
			}},
		{ID: "satya", Name: "Truthfulness", Weight: 0.15,
			Score: func(fv model.FeatureVector) float64 {
				return 0.7*fv.Transparency + 0.3*(1-fv.DeceptionLevel)
			}},
		{ID: "seva", Name: "Service", Weight: 0.15,
			Score: func(fv model.FeatureVector) float64 {
				return 0.5*fv.Altruism + 0.5*fv.Effort
			}},
		{ID: "viveka", Name: "Discrimination", Weight: 0.15,
			Score: func(fv model.FeatureVector) float64 {
				return fv.Deliberation
			}},
		{ID: "sthitaprajna", Name: "Equanimity", Weight: 0.15,
			Score: func(fv model.FeatureVector) float64 {
				return 0.6*(1-fv.Agitation) + 0.4*fv.Consistency
			}},
	}
}

// Config holds the optimizer's configuration.
type Config struct {
	// Principles supplied by the caller; nil means the six defaults.
	Principles []Principle

	// DutyContext is the optimizer's svadharma tag. Candidates declaring a
	// matching tag receive ContextBonus.
	DutyContext string

	// MinimumFitness filters candidates strictly below it. Default 0 (no
	// filtering). If filtering empties the pool the unfiltered set is
	// used instead; a non-empty input never yields an empty selection.
	MinimumFitness float64

	// Temperature controls selection. 0 (default) is deterministic
	// argmax; above 0 selects by Boltzmann sampling exp(fitness/T).
	Temperature float64

	// GunaBonus scales the classifier adjustment: +GunaBonus·P(sattva)
	// − GunaBonus·P(tamas). Default 0.15.
	GunaBonus float64

	// ContextBonus is added on a duty-context match. Default 0.2.
	ContextBonus float64

	// Rand is the sampling source for Temperature > 0. Nil means a
	// time-seeded source; tests inject a fixed seed.
	Rand *rand.Rand
}

// DefaultConfig returns the optimizer defaults.
func DefaultConfig() Config {
	return Config{GunaBonus: 0.15, ContextBonus: 0.2}
}

// Ranked is one candidate with its fitness breakdown.
type Ranked struct {
	Action         model.EvaluatedAction `json:"action"`
	Fitness        float64               `json:"fitness"`
	BaseFitness    float64               `json:"baseFitness"`
	GunaAdjustment float64               `json:"gunaAdjustment"`
	ContextBonus   float64               `json:"contextBonus"`
	Guna           model.Guna            `json:"guna"`
}

// Selection is the optimizer's output: the full ranking plus the chosen
// candidate. Selected is always a member of the ranked pool.
type Selection struct {
	Ranked    []Ranked `json:"ranked"`
	Selected  Ranked   `json:"selected"`
	Reasoning string   `json:"reasoning"`
}

// Optimizer scores and selects among candidate actions.
type Optimizer struct {
	cfg        Config
	principles []Principle
	classifier *guna.Classifier
	rng        *rand.Rand
}

// New builds an optimizer. The classifier supplies the guna adjustment; nil
// means the default classifier.
func New(cfg Config, classifier *guna.Classifier) *Optimizer {
	def := DefaultConfig()
	if cfg.GunaBonus == 0 {
		cfg.GunaBonus = def.GunaBonus
	}
	if cfg.ContextBonus == 0 {
		cfg.ContextBonus = def.ContextBonus
	}
	cfg.MinimumFitness = model.Clamp01(cfg.MinimumFitness)

	ps := cfg.Principles
	if len(ps) == 0 {
		ps = DefaultPrinciples()
	}
	for i := range ps {
		ps[i].Weight = model.Clamp01(ps[i].Weight)
	}

	if classifier == nil {
		classifier = guna.NewDefaultClassifier()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Optimizer{cfg: cfg, principles: ps, classifier: classifier, rng: rng}
}

// Optimize ranks the candidates by fitness and selects one. Empty input is
// an error; everything else produces a selection.
func (o *Optimizer) Optimize(candidates []model.EvaluatedAction) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, ErrNoCandidates
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, o.score(c))
	}

	// Fitness filter with fallback: a non-empty input never produces an
	// empty pool.
	pool := ranked
	if o.cfg.MinimumFitness > 0 {
		filtered := make([]Ranked, 0, len(ranked))
		for _, r := range ranked {
			if r.Fitness >= o.cfg.MinimumFitness {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Fitness > pool[j].Fitness
	})

	var selected Ranked
	var how string
	if o.cfg.Temperature > 0 {
		selected = o.sample(pool)
		how = fmt.Sprintf("softmax sample at temperature %.2f", o.cfg.Temperature)
	} else {
		selected = pool[0]
		how = "deterministic argmax"
	}

	return Selection{
		Ranked:   pool,
		Selected: selected,
		Reasoning: fmt.Sprintf("selected %s (fitness %.3f, guna %s) from %d candidate(s) by %s",
			selected.Action.ID, selected.Fitness, selected.Guna, len(pool), how),
	}, nil
}

// score computes a candidate's fitness: principle-weighted base, guna
// adjustment, then duty-context bonus, re-clamped after each stage.
func (o *Optimizer) score(c model.EvaluatedAction) Ranked {
	var weighted, totalWeight float64
	for _, p := range o.principles {
		weighted += p.Weight * model.Clamp01(p.Score(c.Features))
		totalWeight += p.Weight
	}
	base := 0.0
	if totalWeight > 0 {
		base = model.Clamp01(weighted / totalWeight)
	}

	cls := o.classifier.Classify(c.Features)
	adj := o.cfg.GunaBonus*cls.Scores.Sattva - o.cfg.GunaBonus*cls.Scores.Tamas
	fitness := model.Clamp01(base + adj)

	ctxBonus := 0.0
	if o.cfg.DutyContext != "" && c.Svadharma == o.cfg.DutyContext {
		ctxBonus = o.cfg.ContextBonus
		fitness = model.Clamp01(fitness + ctxBonus)
	}

	return Ranked{
		Action:         c,
		Fitness:        fitness,
		BaseFitness:    base,
		GunaAdjustment: adj,
		ContextBonus:   ctxBonus,
		Guna:           cls.Primary,
	}
}

// sample draws one candidate from the pool with probability proportional to
// exp(fitness/T), via a cumulative distribution and a single uniform draw.
func (o *Optimizer) sample(pool []Ranked) Ranked {
	weights := make([]float64, len(pool))
	var sum float64
	for i, r := range pool {
		weights[i] = math.Exp(r.Fitness / o.cfg.Temperature)
		sum += weights[i]
	}

	draw := o.rng.Float64() * sum
	var cum float64
	for i, w := range weights {
		cum += w
		if draw <= cum {
			return pool[i]
		}
	}
	// Floating accumulation can leave draw a hair above cum.
	return pool[len(pool)-1]
}
