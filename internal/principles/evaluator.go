package principles

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sattva-labs/dharmakit/internal/model"
)

// LevelThresholds buckets a composite score into an alignment level. The
// boundaries are strict, ordered and non-overlapping: >= High is high,
// >= Medium is medium, >= Low is low, anything below is critical.
type LevelThresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultLevelThresholds is the per-action bucket set (distinct from the
// auditor's per-agent set, which is its own scale).
func DefaultLevelThresholds() LevelThresholds {
	return LevelThresholds{High: 0.8, Medium: 0.5, Low: 0.25}
}

// Level buckets a clamped composite score.
func (lt LevelThresholds) Level(score float64) model.AlignmentLevel {
	switch {
	case score >= lt.High:
		return model.LevelHigh
	case score >= lt.Medium:
		return model.LevelMedium
	case score >= lt.Low:
		return model.LevelLow
	default:
		return model.LevelCritical
	}
}

// Config holds the evaluator's configuration. Thresholds are clamped to
// [0,1] at construction rather than rejected.
type Config struct {
	// Principles supplied by the caller. Nil or empty means defaults.
	Principles []Principle

	// ReplaceDefaults controls merge-vs-replace when Principles is
	// non-empty: true uses only the supplied list, false appends the
	// supplied principles after the defaults.
	ReplaceDefaults bool

	ViolationThreshold    float64 // sub-score below this adds a violation; default 0.3
	CommendationThreshold float64 // sub-score at/above this adds a commendation; default 0.85
	AlignmentThreshold    float64 // composite at/above this is aligned; default 0.5
	Levels                LevelThresholds

	// NewID and Now are injectable for deterministic tests. Defaults:
	// uuid.NewString and time.Now.
	NewID func() string
	Now   func() time.Time
}

// DefaultConfig returns the evaluator defaults.
func DefaultConfig() Config {
	return Config{
		ViolationThreshold:    0.3,
		CommendationThreshold: 0.85,
		AlignmentThreshold:    0.5,
		Levels:                DefaultLevelThresholds(),
	}
}

// PrincipleScore is one principle's contribution to a result.
type PrincipleScore struct {
	PrincipleID   string  `json:"principleId"`
	Name          string  `json:"name"`
	GitaReference string  `json:"gitaReference"`
	Weight        float64 `json:"weight"`
	Score         float64 `json:"score"`
}

// Result is the evaluation of a single action. Immutable once produced; the
// embedded action is a value copy, not a live pointer.
type Result struct {
	ID              string               `json:"id"`
	Action          model.Action         `json:"action"`
	CompositeScore  float64              `json:"compositeScore"`
	Level           model.AlignmentLevel `json:"level"`
	IsAligned       bool                 `json:"isAligned"`
	PrincipleScores []PrincipleScore     `json:"principleScores"`
	Violations      []string             `json:"violations"`
	Commendations   []string             `json:"commendations"`
	Reasoning       string               `json:"reasoning"`
	Timestamp       time.Time            `json:"timestamp"`
}

// BatchError records a single action's evaluation failure inside a batch.
// Batches capture per-item errors instead of aborting.
type BatchError struct {
	ActionID string
	Err      error
}

// Evaluator scores actions against its configured principles. Not safe for
// concurrent mutation; a single logical owner is assumed.
type Evaluator struct {
	cfg        Config
	principles []Principle
}

// NewEvaluator builds an evaluator from cfg, resolving the effective
// principle list and clamping thresholds into [0,1].
func NewEvaluator(cfg Config) *Evaluator {
	def := DefaultConfig()
	if cfg.ViolationThreshold == 0 {
		cfg.ViolationThreshold = def.ViolationThreshold
	}
	if cfg.CommendationThreshold == 0 {
		cfg.CommendationThreshold = def.CommendationThreshold
	}
	if cfg.AlignmentThreshold == 0 {
		cfg.AlignmentThreshold = def.AlignmentThreshold
	}
	if cfg.Levels == (LevelThresholds{}) {
		cfg.Levels = def.Levels
	}
	cfg.ViolationThreshold = model.Clamp01(cfg.ViolationThreshold)
	cfg.CommendationThreshold = model.Clamp01(cfg.CommendationThreshold)
	cfg.AlignmentThreshold = model.Clamp01(cfg.AlignmentThreshold)
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var ps []Principle
	switch {
	case len(cfg.Principles) == 0:
		ps = DefaultPrinciples()
	case cfg.ReplaceDefaults:
		ps = append(ps, cfg.Principles...)
	default:
		ps = append(DefaultPrinciples(), cfg.Principles...)
	}
	for i := range ps {
		ps[i].Weight = model.Clamp01(ps[i].Weight)
	}

	return &Evaluator{cfg: cfg, principles: ps}
}

// NewDefaultEvaluator builds an evaluator with the five default principles
// and default thresholds.
func NewDefaultEvaluator() *Evaluator {
	return NewEvaluator(DefaultConfig())
}

// Principles returns a copy of the effective principle list.
func (e *Evaluator) Principles() []Principle {
	out := make([]Principle, len(e.principles))
	copy(out, e.principles)
	return out
}

// AddPrinciple appends a principle to the effective list. The weight is
// clamped to [0,1].
func (e *Evaluator) AddPrinciple(p Principle) {
	p.Weight = model.Clamp01(p.Weight)
	e.principles = append(e.principles, p)
}

// Evaluate scores one action. The error path is reserved for principles
// that produce a non-finite sub-score; ordinary out-of-range values are
// clamped, not rejected.
func (e *Evaluator) Evaluate(action model.Action) (Result, error) {
	scores := make([]PrincipleScore, 0, len(e.principles))
	var violations, commendations []string
	var weighted, totalWeight float64

	for _, p := range e.principles {
		raw := p.Score(action.Features)
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			return Result{}, fmt.Errorf("principle %s produced a non-finite score for action %s", p.ID, action.ID)
		}
		s := model.Clamp01(raw)
		scores = append(scores, PrincipleScore{
			PrincipleID:   p.ID,
			Name:          p.Name,
			GitaReference: p.GitaReference,
			Weight:        p.Weight,
			Score:         s,
		})
		weighted += p.Weight * s
		totalWeight += p.Weight

		if s < e.cfg.ViolationThreshold {
			violations = append(violations,
				fmt.Sprintf("%s (%s): score %.2f below threshold %.2f — %s",
					p.Name, p.ID, s, e.cfg.ViolationThreshold, p.Description))
		} else if s >= e.cfg.CommendationThreshold {
			commendations = append(commendations,
				fmt.Sprintf("%s (%s): exemplary score %.2f", p.Name, p.ID, s))
		}
	}

	// Zero total weight is defined as composite 0, not NaN.
	composite := 0.0
	if totalWeight > 0 {
		composite = model.Clamp01(weighted / totalWeight)
	}

	level := e.cfg.Levels.Level(composite)

	return Result{
		ID:              e.cfg.NewID(),
		Action:          action,
		CompositeScore:  composite,
		Level:           level,
		IsAligned:       composite >= e.cfg.AlignmentThreshold,
		PrincipleScores: scores,
		Violations:      violations,
		Commendations:   commendations,
		Reasoning:       e.reasoning(composite, level, violations, commendations),
		Timestamp:       e.cfg.Now(),
	}, nil
}

// EvaluateBatch scores each action and returns the results sorted by
// composite score, highest first. Failed items are captured per-item and
// never abort the batch.
func (e *Evaluator) EvaluateBatch(actions []model.Action) ([]Result, []BatchError) {
	results := make([]Result, 0, len(actions))
	var errs []BatchError
	for _, a := range actions {
		r, err := e.Evaluate(a)
		if err != nil {
			errs = append(errs, BatchError{ActionID: a.ID, Err: err})
			continue
		}
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompositeScore > results[j].CompositeScore
	})
	return results, errs
}

// AlignmentThreshold exposes the configured aligned/not-aligned boundary,
// used by the auditor for its percentage statistics.
func (e *Evaluator) AlignmentThreshold() float64 {
	return e.cfg.AlignmentThreshold
}

func (e *Evaluator) reasoning(composite float64, level model.AlignmentLevel, violations, commendations []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "composite alignment %.2f (%s)", composite, level)
	if len(violations) > 0 {
		fmt.Fprintf(&b, "; %d principle violation(s): %s",
			len(violations), strings.Join(violations, "; "))
	}
	if len(commendations) > 0 {
		fmt.Fprintf(&b, "; %d commendation(s): %s",
			len(commendations), strings.Join(commendations, "; "))
	}
	if len(violations) == 0 && len(commendations) == 0 {
		b.WriteString("; no principle violations or commendations")
	}
	return b.String()
}
