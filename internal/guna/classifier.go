// Package guna classifies a feature vector into one of the three gunas
// (sattva, rajas, tamas) via weighted linear scoring and a numerically
// stable softmax.
package guna

import (
	"fmt"
	"math"

	"github.com/sattva-labs/dharmakit/internal/model"
)

// DimWeights holds one guna's per-dimension weights. Weights may be negative:
// a dimension can pull toward one guna and away from another.
type DimWeights struct {
	Altruism       float64 `json:"altruism"`
	Deliberation   float64 `json:"deliberation"`
	Attachment     float64 `json:"attachment"`
	Agitation      float64 `json:"agitation"`
	Transparency   float64 `json:"transparency"`
	Effort         float64 `json:"effort"`
	HarmPotential  float64 `json:"harmPotential"`
	Consistency    float64 `json:"consistency"`
	DeceptionLevel float64 `json:"deceptionLevel"`
}

// Dot returns the raw linear score of a feature vector under these weights.
func (w DimWeights) Dot(fv model.FeatureVector) float64 {
	return w.Altruism*fv.Altruism +
		w.Deliberation*fv.Deliberation +
		w.Attachment*fv.Attachment +
		w.Agitation*fv.Agitation +
		w.Transparency*fv.Transparency +
		w.Effort*fv.Effort +
		w.HarmPotential*fv.HarmPotential +
		w.Consistency*fv.Consistency +
		w.DeceptionLevel*fv.DeceptionLevel
}

// Config holds the classifier's weight matrix and dominance threshold.
type Config struct {
	Sattva DimWeights
	Rajas  DimWeights
	Tamas  DimWeights

	// DominanceThreshold is the minimum gap between the top two
	// probabilities for a classification to count as dominant rather
	// than mixed. Default 0.1.
	DominanceThreshold float64
}

// DefaultConfig returns the hand-authored default weight matrix.
func DefaultConfig() Config {
	return Config{
		Sattva: DimWeights{
			Altruism: 0.8, Deliberation: 0.7, Transparency: 0.7,
			Consistency: 0.6, Effort: 0.3,
			Attachment: -0.5, Agitation: -0.6, HarmPotential: -0.8,
			DeceptionLevel: -0.7,
		},
		Rajas: DimWeights{
			Agitation: 0.8, Attachment: 0.7, Effort: 0.6,
			HarmPotential: 0.2, DeceptionLevel: 0.2,
			Deliberation: -0.4, Altruism: -0.2, Transparency: -0.1,
			Consistency: -0.3,
		},
		Tamas: DimWeights{
			HarmPotential: 0.8, Attachment: 0.3, Agitation: 0.1,
			DeceptionLevel: 0.6,
			Effort:         -0.7, Deliberation: -0.6, Transparency: -0.5,
			Consistency: -0.4, Altruism: -0.5,
		},
		DominanceThreshold: 0.1,
	}
}

// Scores is the softmax-normalized probability triple; the three fields sum
// to 1.0.
type Scores struct {
	Sattva float64 `json:"sattva"`
	Rajas  float64 `json:"rajas"`
	Tamas  float64 `json:"tamas"`
}

// Of returns the probability of a single guna.
func (s Scores) Of(g model.Guna) float64 {
	switch g {
	case model.GunaSattva:
		return s.Sattva
	case model.GunaRajas:
		return s.Rajas
	case model.GunaTamas:
		return s.Tamas
	default:
		return 0
	}
}

// Classification is the classifier's output.
type Classification struct {
	Primary   model.Guna `json:"primary"`
	Scores    Scores     `json:"scores"`
	Margin    float64    `json:"margin"`
	Reasoning string     `json:"reasoning"`
}

// Classifier maps feature vectors to guna classifications. Pure: the only
// state is the immutable weight configuration.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given config. A zero
// DominanceThreshold falls back to the default.
func NewClassifier(cfg Config) *Classifier {
	if cfg.DominanceThreshold == 0 {
		cfg.DominanceThreshold = DefaultConfig().DominanceThreshold
	}
	return &Classifier{cfg: cfg}
}

// NewDefaultClassifier creates a classifier with the default weight matrix.
func NewDefaultClassifier() *Classifier {
	return &Classifier{cfg: DefaultConfig()}
}

// Classify scores the feature vector under each guna's weights, softmaxes
// the raw scores into probabilities, and picks the argmax. Ties break by the
// fixed precedence sattva > rajas > tamas. Accepts any finite feature
// values; [0,1] bounds are not validated.
func (c *Classifier) Classify(fv model.FeatureVector) Classification {
	raw := [3]float64{
		c.cfg.Sattva.Dot(fv),
		c.cfg.Rajas.Dot(fv),
		c.cfg.Tamas.Dot(fv),
	}

	probs := softmax(raw)
	scores := Scores{Sattva: probs[0], Rajas: probs[1], Tamas: probs[2]}

	// Argmax with fixed precedence: strictly-greater wins, so on an exact
	// tie the earlier guna in precedence order is kept.
	primary := model.GunaSattva
	best := probs[0]
	for i, g := range model.Gunas {
		if probs[i] > best {
			best = probs[i]
			primary = g
		}
	}

	runnerUp, second := runnerUpOf(primary, scores)
	margin := best - second

	var reasoning string
	if margin < c.cfg.DominanceThreshold {
		reasoning = fmt.Sprintf(
			"mixed classification: %s (%.2f) with %s tendencies (%.2f), margin %.2f below dominance threshold %.2f",
			primary, best, runnerUp, second, margin, c.cfg.DominanceThreshold)
	} else {
		reasoning = fmt.Sprintf(
			"dominant %s classification (%.2f, margin %.2f)",
			primary, best, margin)
	}

	return Classification{
		Primary:   primary,
		Scores:    scores,
		Margin:    margin,
		Reasoning: reasoning,
	}
}

// softmax applies a max-subtracted exponential normalization, so large raw
// scores cannot overflow.
func softmax(raw [3]float64) [3]float64 {
	max := raw[0]
	for _, v := range raw[1:] {
		if v > max {
			max = v
		}
	}
	var sum float64
	var out [3]float64
	for i, v := range raw {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// runnerUpOf returns the non-primary guna with the highest probability,
// using the same precedence order for ties.
func runnerUpOf(primary model.Guna, s Scores) (model.Guna, float64) {
	var runner model.Guna
	best := math.Inf(-1)
	for _, g := range model.Gunas {
		if g == primary {
			continue
		}
		if s.Of(g) > best {
			best = s.Of(g)
			runner = g
		}
	}
	return runner, best
}
