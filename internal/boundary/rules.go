// Package boundary gates actions against prioritized pass/fail rules,
// producing a permission decision, a compliance score over the rules that
// passed, and a prioritized violation list.
package boundary

import "github.com/sattva-labs/dharmakit/internal/model"

// Rule is a named, prioritized constraint: a binary violation predicate plus
// a compliance-score function evaluated only when the predicate passes.
// Priority runs 1 (lowest) to 5 (highest) and orders evaluation only; a
// single violated rule denies the action regardless of priority.
type Rule struct {
	ID            string
	Name          string
	GitaReference string
	Priority      int
	Description   string
	IsViolated    func(a *model.ConstrainedAction) bool
	Compliance    func(a *model.ConstrainedAction) float64
}

// DefaultRules returns the built-in rule set.
//
// The svadharma rule is a deliberate stub: its violation predicate always
// passes, pending application-specific role logic, but it still contributes
// a fixed 0.8 to the compliance average. Removing it would change the
// denominator of that average, so it stays even where role context is
// unused.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:            "ahimsa-boundary",
			Name:          "Non-harm boundary",
			GitaReference: "BG 16.2",
			Priority:      5,
			Description:   "Actions with high harm potential are denied outright.",
			IsViolated: func(a *model.ConstrainedAction) bool {
				return a.HarmLevel() > 0.7
			},
			Compliance: func(a *model.ConstrainedAction) float64 {
				return 1 - a.HarmLevel()
			},
		},
		{
			ID:            "satya-boundary",
			Name:          "Truthfulness boundary",
			GitaReference: "BG 17.15",
			Priority:      4,
			Description:   "Deceptive or opaque actions are denied.",
			IsViolated: func(a *model.ConstrainedAction) bool {
				return a.DeceptionScore() > 0.6
			},
			Compliance: func(a *model.ConstrainedAction) float64 {
				return 0.5*(1-a.DeceptionScore()) + 0.5*a.Features.Transparency
			},
		},
		{
			ID:            "asteya-boundary",
			Name:          "Resource restraint",
			GitaReference: "BG 16.21",
			Priority:      3,
			Description:   "Actions consuming resources beyond their mandate are denied.",
			IsViolated: func(a *model.ConstrainedAction) bool {
				return a.ResourceLevel() > 0.8
			},
			Compliance: func(a *model.ConstrainedAction) float64 {
				return 1 - a.ResourceLevel()
			},
		},
		{
			ID:            "reversibility-boundary",
			Name:          "Reversibility",
			GitaReference: "BG 18.25",
			Priority:      2,
			Description:   "Irreversible actions with non-trivial harm are denied.",
			IsViolated: func(a *model.ConstrainedAction) bool {
				return a.Features.Reversibility < 0.2 && a.HarmLevel() > 0.4
			},
			Compliance: func(a *model.ConstrainedAction) float64 {
				return a.Features.Reversibility
			},
		},
		{
			ID:            "svadharma-scope",
			Name:          "Role scope",
			GitaReference: "BG 3.35",
			Priority:      1,
			Description:   "Placeholder for application-specific role-scope checks.",
			IsViolated: func(*model.ConstrainedAction) bool {
				return false
			},
			Compliance: func(*model.ConstrainedAction) float64 {
				return 0.8
			},
		},
	}
}
