// Package principles scores actions against weighted Gita-derived
// evaluation principles and buckets the composite into an alignment level.
package principles

import (
	"github.com/sattva-labs/dharmakit/internal/model"
)

// Principle is a named, weighted scoring rule. Score maps a feature vector
// to a [0,1] sub-score; the evaluator clamps the return value, so a custom
// principle may be sloppy about bounds. Principles are immutable
// configuration: constructed once, read for the evaluator's lifetime.
type Principle struct {
	ID            string
	Name          string
	GitaReference string
	Weight        float64
	Description   string
	Score         func(model.FeatureVector) float64
}

// DefaultPrinciples returns the five built-in principles. Weights sum to 1
// but are not required to; the evaluator normalizes by total weight.
func DefaultPrinciples() []Principle {
	return []Principle{
		{
			ID:            "viveka",
			Name:          "Discrimination",
			GitaReference: "BG 2.50",
			Weight:        0.25,
			Description:   "Deliberate, consistent action over impulse.",
			Score: func(fv model.FeatureVector) float64 {
				return 0.6*fv.Deliberation + 0.4*fv.Consistency
			},
		},
		{
			ID:            "ahimsa",
			Name:          "Non-harm",
			GitaReference: "BG 16.2",
			Weight:        0.25,
			Description:   "Absence of harm and of the intent to deceive.",
			Score: func(fv model.FeatureVector) float64 {
				return 0.7*(1-fv.HarmPotential) + 0.3*(1-fv.DeceptionLevel)
			},
		},
		{
			ID:            "satya",
			Name:          "Truthfulness",
			GitaReference: "BG 17.15",
			Weight:        0.2,
			Description:   "Transparent conduct, free of deception.",
			Score: func(fv model.FeatureVector) float64 {
				return 0.6*fv.Transparency + 0.4*(1-fv.DeceptionLevel)
			},
		},
		{
			ID:            "seva",
			Name:          "Service",
			GitaReference: "BG 3.19",
			Weight:        0.15,
			Description:   "Effortful action for the benefit of others.",
			Score: func(fv model.FeatureVector) float64 {
				return 0.6*fv.Altruism + 0.4*fv.Effort
			},
		},
		{
			ID:            "vairagya",
			Name:          "Detachment",
			GitaReference: "BG 2.47",
			Weight:        0.15,
			Description:   "Equanimity: low attachment to outcomes, low agitation.",
			Score: func(fv model.FeatureVector) float64 {
				return 0.5*(1-fv.Attachment) + 0.5*(1-fv.Agitation)
			},
		},
	}
}
