package model

// FeatureVector describes an action's behavioral character as named numeric
// dimensions. Every dimension is expected in [0,1]; the library does not
// enforce the bound, but all scoring formulas assume it. Callers construct
// one per action and the library never mutates it.
type FeatureVector struct {
	Altruism      float64 `json:"altruism"`
	Deliberation  float64 `json:"deliberation"`
	Attachment    float64 `json:"attachment"`
	Agitation     float64 `json:"agitation"`
	Transparency  float64 `json:"transparency"`
	Effort        float64 `json:"effort"`
	HarmPotential float64 `json:"harmPotential"`
	Consistency   float64 `json:"consistency"`

	// Extension dimensions. Optional in the input schema; zero when absent.
	DeceptionLevel float64 `json:"deceptionLevel,omitempty"`
	Reversibility  float64 `json:"reversibility,omitempty"`
	ScopeCreep     float64 `json:"scopeCreep,omitempty"`
}

// Clamp01 bounds v to [0,1]. Every score-valued field the library produces
// passes through this before being stored on a result.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
