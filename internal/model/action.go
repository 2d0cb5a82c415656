package model

import "time"

// Action is the shape the principle scorer and the auditor evaluate.
type Action struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Agent       string        `json:"agent,omitempty"`
	Features    FeatureVector `json:"features"`
	Timestamp   time.Time     `json:"timestamp"`
}

// ConstrainedAction is the shape the boundary gate evaluates. The scalar
// overrides, when set, take precedence over the corresponding feature
// dimension; nil means "read the feature vector".
type ConstrainedAction struct {
	ID           string        `json:"id"`
	Description  string        `json:"description"`
	Features     FeatureVector `json:"features"`
	Harm         *float64      `json:"harm,omitempty"`
	Deception    *float64      `json:"deception,omitempty"`
	ResourceCost *float64      `json:"resourceCost,omitempty"`
	RoleContext  string        `json:"roleContext,omitempty"`
}

// HarmLevel returns the harm override if set, else the feature dimension.
func (a *ConstrainedAction) HarmLevel() float64 {
	if a.Harm != nil {
		return *a.Harm
	}
	return a.Features.HarmPotential
}

// DeceptionScore returns the deception override if set, else the feature
// dimension.
func (a *ConstrainedAction) DeceptionScore() float64 {
	if a.Deception != nil {
		return *a.Deception
	}
	return a.Features.DeceptionLevel
}

// ResourceLevel returns the resource-consumption override if set, else the
// scope-creep feature dimension (the closest behavioral proxy).
func (a *ConstrainedAction) ResourceLevel() float64 {
	if a.ResourceCost != nil {
		return *a.ResourceCost
	}
	return a.Features.ScopeCreep
}

// EvaluatedAction is a selector candidate: an action plus the optional
// svadharma tag matched against the optimizer's duty context, and an opaque
// payload carried through selection untouched.
type EvaluatedAction struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Features    FeatureVector `json:"features"`
	Svadharma   string        `json:"svadharma,omitempty"`
	Payload     any           `json:"payload,omitempty"`
}

// AuditLogEntry is one record of the serialized action-log input schema
// consumed by the auditor and the CLI. Timestamp is milliseconds since the
// Unix epoch, as produced by the logging collaborator.
type AuditLogEntry struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Agent       string        `json:"agent"`
	Features    FeatureVector `json:"features"`
	Timestamp   int64         `json:"timestamp"`
	ParentID    string        `json:"parentId,omitempty"`
	Svadharma   string        `json:"svadharma,omitempty"`
}

// Action converts a log entry into the scorer's input shape, preserving the
// millisecond timestamp.
func (e *AuditLogEntry) Action() Action {
	return Action{
		ID:          e.ID,
		Description: e.Description,
		Agent:       e.Agent,
		Features:    e.Features,
		Timestamp:   time.UnixMilli(e.Timestamp).UTC(),
	}
}
