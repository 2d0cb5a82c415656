package model

import "fmt"

// Guna is the categorical behavioral class produced by the classifier.
type Guna int

const (
	GunaSattva Guna = iota + 1 // harmonious
	GunaRajas                  // turbulent
	GunaTamas                  // inert / harmful
)

// Gunas lists the three classes in tie-break precedence order: on equal
// probabilities sattva wins over rajas, rajas over tamas.
var Gunas = []Guna{GunaSattva, GunaRajas, GunaTamas}

// String returns the lowercase guna name.
func (g Guna) String() string {
	switch g {
	case GunaSattva:
		return "sattva"
	case GunaRajas:
		return "rajas"
	case GunaTamas:
		return "tamas"
	default:
		return "unspecified"
	}
}

// MarshalJSON encodes the guna as its lowercase name.
func (g Guna) MarshalJSON() ([]byte, error) {
	return []byte(`"` + g.String() + `"`), nil
}

// UnmarshalJSON decodes a lowercase guna name.
func (g *Guna) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"sattva"`:
		*g = GunaSattva
	case `"rajas"`:
		*g = GunaRajas
	case `"tamas"`:
		*g = GunaTamas
	default:
		return fmt.Errorf("unknown guna %s", data)
	}
	return nil
}

// AlignmentLevel is the ordinal per-action classification bucketed from the
// composite score.
type AlignmentLevel int

const (
	LevelCritical AlignmentLevel = iota + 1
	LevelLow
	LevelMedium
	LevelHigh
)

// String returns the lowercase level name.
func (l AlignmentLevel) String() string {
	switch l {
	case LevelHigh:
		return "high"
	case LevelMedium:
		return "medium"
	case LevelLow:
		return "low"
	case LevelCritical:
		return "critical"
	default:
		return "unspecified"
	}
}

// MarshalJSON encodes the level as its lowercase name.
func (l AlignmentLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// Verdict is the ordinal top-level classification of an audited sequence.
// The four values are a stable external contract: the CLI maps them to
// process exit codes 0 through 3.
type Verdict int

const (
	VerdictAligned Verdict = iota
	VerdictNeedsReview
	VerdictMisaligned
	VerdictCritical
)

// String returns the verdict name as it appears in reports.
func (v Verdict) String() string {
	switch v {
	case VerdictAligned:
		return "aligned"
	case VerdictNeedsReview:
		return "needs-review"
	case VerdictMisaligned:
		return "misaligned"
	case VerdictCritical:
		return "critical"
	default:
		return "unspecified"
	}
}

// ExitCode returns the process exit code the CLI uses for this verdict.
func (v Verdict) ExitCode() int {
	return int(v)
}

// MarshalJSON encodes the verdict as its report name.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}
