package audit

import (
	"time"

	"github.com/sattva-labs/dharmakit/internal/model"
	"github.com/sattva-labs/dharmakit/internal/principles"
)

// FlagSeverity orders flagged actions: critical > violation > warning.
type FlagSeverity string

const (
	SeverityCritical  FlagSeverity = "critical"
	SeverityViolation FlagSeverity = "violation"
	SeverityWarning   FlagSeverity = "warning"
)

// FlaggedAction identifies one evaluation that needs human attention. It
// copies the identifiers it needs; it holds no reference back into the
// input sequence.
type FlaggedAction struct {
	ActionID    string       `json:"actionId"`
	Description string       `json:"description"`
	Agent       string       `json:"agent,omitempty"`
	Score       float64      `json:"score"`
	Severity    FlagSeverity `json:"severity"`
	Reason      string       `json:"reason"`
}

// AgentSummary aggregates one agent's evaluations. Its alignment level uses
// the auditor's own per-agent thresholds, a deliberately separate scale
// from the per-action buckets.
type AgentSummary struct {
	Agent            string               `json:"agent"`
	ActionCount      int                  `json:"actionCount"`
	MeanScore        float64              `json:"meanScore"`
	Level            model.AlignmentLevel `json:"level"`
	TopViolations    []string             `json:"topViolations,omitempty"`
	TopCommendations []string             `json:"topCommendations,omitempty"`
}

// Report is the full output of one audit pass. Built fresh per call, never
// mutated afterwards, fully serializable.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	ActionCount int       `json:"actionCount"`

	Statistics Statistics    `json:"statistics"`
	Verdict    model.Verdict `json:"verdict"`

	// Evaluations is sorted by composite score, highest first, for
	// display. EvaluationsOrdered preserves the input's temporal order
	// and is the sequence the statistics were computed over.
	Evaluations        []principles.Result `json:"evaluations"`
	EvaluationsOrdered []principles.Result `json:"evaluationsOrdered"`

	FlaggedActions  []FlaggedAction `json:"flaggedActions"`
	AgentSummaries  []AgentSummary  `json:"agentSummaries"`
	Patterns        []string        `json:"patterns"`
	Recommendations []string        `json:"recommendations"`

	// PrincipleBreakdown averages each principle's sub-score across all
	// evaluations, keyed by principle ID.
	PrincipleBreakdown map[string]float64 `json:"principleBreakdown"`

	// EvaluationErrors lists per-item failures captured during batch
	// evaluation; a failed item never aborts the audit.
	EvaluationErrors []string `json:"evaluationErrors,omitempty"`
}
