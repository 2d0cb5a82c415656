// Package config loads optional YAML threshold overrides for the CLI. Every
// field is a pointer: nil means "keep the library default". Out-of-range
// values are clamped, not rejected.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sattva-labs/dharmakit/internal/audit"
	"github.com/sattva-labs/dharmakit/internal/boundary"
	"github.com/sattva-labs/dharmakit/internal/guna"
	"github.com/sattva-labs/dharmakit/internal/model"
	"github.com/sattva-labs/dharmakit/internal/principles"
)

// Levels overrides one level-threshold triple.
type Levels struct {
	High   *float64 `yaml:"high"`
	Medium *float64 `yaml:"medium"`
	Low    *float64 `yaml:"low"`
}

// File is the full override document.
type File struct {
	Evaluator struct {
		ViolationThreshold    *float64 `yaml:"violationThreshold"`
		CommendationThreshold *float64 `yaml:"commendationThreshold"`
		AlignmentThreshold    *float64 `yaml:"alignmentThreshold"`
		Levels                Levels   `yaml:"levels"`
	} `yaml:"evaluator"`

	Auditor struct {
		CriticalThreshold *float64 `yaml:"criticalThreshold"`
		AlignedVerdict    *float64 `yaml:"alignedVerdict"`
		ReviewVerdict     *float64 `yaml:"reviewVerdict"`
		AgentLevels       Levels   `yaml:"agentLevels"`
	} `yaml:"auditor"`

	Boundary struct {
		ProceedThreshold *float64 `yaml:"proceedThreshold"`
		CautionThreshold *float64 `yaml:"cautionThreshold"`
	} `yaml:"boundary"`

	Classifier struct {
		DominanceThreshold *float64 `yaml:"dominanceThreshold"`
	} `yaml:"classifier"`
}

// Load reads an override file. A missing path argument ("") returns an
// empty File whose accessors hand back pure defaults.
func Load(path string) (*File, error) {
	f := &File{}
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// EvaluatorConfig merges overrides onto the evaluator defaults.
func (f *File) EvaluatorConfig() principles.Config {
	cfg := principles.DefaultConfig()
	override(&cfg.ViolationThreshold, f.Evaluator.ViolationThreshold)
	override(&cfg.CommendationThreshold, f.Evaluator.CommendationThreshold)
	override(&cfg.AlignmentThreshold, f.Evaluator.AlignmentThreshold)
	override(&cfg.Levels.High, f.Evaluator.Levels.High)
	override(&cfg.Levels.Medium, f.Evaluator.Levels.Medium)
	override(&cfg.Levels.Low, f.Evaluator.Levels.Low)
	return cfg
}

// AuditorConfig merges overrides onto the auditor defaults.
func (f *File) AuditorConfig() audit.Config {
	cfg := audit.DefaultConfig()
	override(&cfg.CriticalThreshold, f.Auditor.CriticalThreshold)
	override(&cfg.AlignedVerdict, f.Auditor.AlignedVerdict)
	override(&cfg.ReviewVerdict, f.Auditor.ReviewVerdict)
	override(&cfg.AgentLevels.High, f.Auditor.AgentLevels.High)
	override(&cfg.AgentLevels.Medium, f.Auditor.AgentLevels.Medium)
	override(&cfg.AgentLevels.Low, f.Auditor.AgentLevels.Low)
	return cfg
}

// BoundaryConfig merges overrides onto the gate defaults.
func (f *File) BoundaryConfig() boundary.Config {
	cfg := boundary.DefaultConfig()
	override(&cfg.ProceedThreshold, f.Boundary.ProceedThreshold)
	override(&cfg.CautionThreshold, f.Boundary.CautionThreshold)
	return cfg
}

// ClassifierConfig merges overrides onto the classifier defaults.
func (f *File) ClassifierConfig() guna.Config {
	cfg := guna.DefaultConfig()
	override(&cfg.DominanceThreshold, f.Classifier.DominanceThreshold)
	return cfg
}

// override writes a clamped value over dst when src is set.
func override(dst *float64, src *float64) {
	if src != nil {
		*dst = model.Clamp01(*src)
	}
}
