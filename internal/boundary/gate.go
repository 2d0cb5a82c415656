package boundary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sattva-labs/dharmakit/internal/model"
)

// Recommendation is the gate's advisory ladder: deny on any violation or
// very low compliance, caution in between, proceed on high compliance.
type Recommendation string

const (
	RecommendProceed Recommendation = "proceed"
	RecommendCaution Recommendation = "caution"
	RecommendDeny    Recommendation = "deny"
)

// Config holds the gate's thresholds. Clamped to [0,1] at construction.
type Config struct {
	// Rules supplied by the caller, merged with the defaults.
	Rules []Rule

	// ReplaceDefaults uses only the supplied rules when true.
	ReplaceDefaults bool

	ProceedThreshold float64 // compliance at/above this recommends proceed; default 0.6
	CautionThreshold float64 // compliance at/above this recommends caution; default 0.3
}

// DefaultConfig returns the gate defaults.
func DefaultConfig() Config {
	return Config{ProceedThreshold: 0.6, CautionThreshold: 0.3}
}

// Violation is one violated rule's structured record.
type Violation struct {
	RuleID        string `json:"ruleId"`
	RuleName      string `json:"ruleName"`
	Priority      int    `json:"priority"`
	GitaReference string `json:"gitaReference"`
	Message       string `json:"message"`
}

// Decision is the gate's output for one action.
type Decision struct {
	Permitted       bool           `json:"permitted"`
	ComplianceScore float64        `json:"complianceScore"`
	Violations      []Violation    `json:"violations"`
	Passed          []string       `json:"passed"`
	Recommendation  Recommendation `json:"recommendation"`
	Reasoning       string         `json:"reasoning"`
}

// Gate evaluates actions against an ordered rule set. Rules may be added at
// runtime via AddRule; the list is re-sorted by descending priority after
// each addition. Not safe for concurrent mutation.
type Gate struct {
	cfg   Config
	rules []Rule
}

// NewGate builds a gate from cfg, merging (or replacing) the default rules
// and sorting by descending priority.
func NewGate(cfg Config) *Gate {
	def := DefaultConfig()
	if cfg.ProceedThreshold == 0 {
		cfg.ProceedThreshold = def.ProceedThreshold
	}
	if cfg.CautionThreshold == 0 {
		cfg.CautionThreshold = def.CautionThreshold
	}
	cfg.ProceedThreshold = model.Clamp01(cfg.ProceedThreshold)
	cfg.CautionThreshold = model.Clamp01(cfg.CautionThreshold)

	var rules []Rule
	if cfg.ReplaceDefaults {
		rules = append(rules, cfg.Rules...)
	} else {
		rules = append(DefaultRules(), cfg.Rules...)
	}

	g := &Gate{cfg: cfg, rules: rules}
	g.sortRules()
	return g
}

// NewDefaultGate builds a gate with the default rules and thresholds.
func NewDefaultGate() *Gate {
	return NewGate(DefaultConfig())
}

// AddRule appends a rule and re-sorts the rule list by descending priority.
func (g *Gate) AddRule(r Rule) {
	g.rules = append(g.rules, r)
	g.sortRules()
}

// Rules returns a copy of the effective rule list in evaluation order.
func (g *Gate) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

func (g *Gate) sortRules() {
	sort.SliceStable(g.rules, func(i, j int) bool {
		return g.rules[i].Priority > g.rules[j].Priority
	})
}

// Evaluate runs every rule against the action in descending-priority order.
// Permission is the logical AND of "no violated rule": one violation denies
// regardless of how many rules pass. A violated rule is not scored for
// compliance; the compliance score is the mean over passed rules only, and
// 0 when no rule passed.
func (g *Gate) Evaluate(a *model.ConstrainedAction) Decision {
	var violations []Violation
	var passed []string
	var sum float64
	var count int

	for _, r := range g.rules {
		if r.IsViolated(a) {
			violations = append(violations, Violation{
				RuleID:        r.ID,
				RuleName:      r.Name,
				Priority:      r.Priority,
				GitaReference: r.GitaReference,
				Message:       fmt.Sprintf("%s violated: %s", r.Name, r.Description),
			})
			continue
		}
		passed = append(passed, r.ID)
		sum += model.Clamp01(r.Compliance(a))
		count++
	}

	compliance := 0.0
	if count > 0 {
		compliance = sum / float64(count)
	}

	permitted := len(violations) == 0

	var rec Recommendation
	switch {
	case !permitted:
		rec = RecommendDeny
	case compliance >= g.cfg.ProceedThreshold:
		rec = RecommendProceed
	case compliance >= g.cfg.CautionThreshold:
		rec = RecommendCaution
	default:
		rec = RecommendDeny
	}

	return Decision{
		Permitted:       permitted,
		ComplianceScore: compliance,
		Violations:      violations,
		Passed:          passed,
		Recommendation:  rec,
		Reasoning:       g.reasoning(a, permitted, compliance, violations, passed),
	}
}

func (g *Gate) reasoning(a *model.ConstrainedAction, permitted bool, compliance float64, violations []Violation, passed []string) string {
	if permitted {
		return fmt.Sprintf("action %s permitted: %d/%d rules passed, compliance %.2f",
			a.ID, len(passed), len(g.rules), compliance)
	}
	names := make([]string, 0, len(violations))
	for _, v := range violations {
		names = append(names, fmt.Sprintf("%s (priority %d)", v.RuleID, v.Priority))
	}
	return fmt.Sprintf("action %s denied: violated %s", a.ID, strings.Join(names, ", "))
}
