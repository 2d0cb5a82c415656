// Package guard applies string-pattern heuristics to action descriptions,
// an advisory first-pass screen ahead of the numeric scoring pipeline.
package guard

import "regexp"

// Category tags what a pattern battery screens for.
type Category string

const (
	CategoryHarm      Category = "harm"
	CategoryDeception Category = "deception"
	CategoryOverreach Category = "overreach"
)

// Pre-compiled patterns — compiled once at startup, never per scan.
var harmPatterns = []struct {
	re         *regexp.Regexp
	confidence float64
	detail     string
}{
	{regexp.MustCompile(`(?i)\b(delete|destroy|wipe|erase)\s+(all|every|the entire)\b`), 0.9, "destructive verb with total scope"},
	{regexp.MustCompile(`(?i)\birreversibl[ey]\b`), 0.7, "explicitly irreversible action"},
	{regexp.MustCompile(`(?i)\bwithout\s+(telling|informing|asking|consent)\b`), 0.8, "action concealed from affected party"},
	{regexp.MustCompile(`(?i)\b(harm|damage|hurt|sabotage)\b`), 0.6, "harm vocabulary"},
	{regexp.MustCompile(`(?i)\bforce\s+(the|them|users?)\b`), 0.6, "coercive phrasing"},
}

var deceptionPatterns = []struct {
	re         *regexp.Regexp
	confidence float64
	detail     string
}{
	{regexp.MustCompile(`(?i)\bpretend\s+(to|that|it)\b`), 0.8, "pretense"},
	{regexp.MustCompile(`(?i)\b(hide|conceal|obscure)\s+(the|this|that|evidence)\b`), 0.85, "concealment"},
	{regexp.MustCompile(`(?i)\bmislead(ing)?\b`), 0.85, "misleading vocabulary"},
	{regexp.MustCompile(`(?i)\bfake\s+(data|results?|records?|evidence)\b`), 0.95, "fabricated records"},
	{regexp.MustCompile(`(?i)\bcover\s+up\b`), 0.9, "cover-up phrasing"},
}

var overreachPatterns = []struct {
	re         *regexp.Regexp
	confidence float64
	detail     string
}{
	{regexp.MustCompile(`(?i)\b(bypass|circumvent|override)\s+(the\s+)?(limits?|controls?|review|approval)\b`), 0.85, "control bypass"},
	{regexp.MustCompile(`(?i)\bexpand\s+(my|its|the)\s+(scope|access|permissions?)\b`), 0.75, "scope expansion"},
	{regexp.MustCompile(`(?i)\bwhile\s+(i'?m|we'?re)\s+at\s+it\b`), 0.5, "opportunistic scope creep"},
	{regexp.MustCompile(`(?i)\bjust\s+in\s+case\b`), 0.4, "speculative acquisition"},
}

// Finding is the outcome of one battery scan. The highest-confidence
// matching pattern wins.
type Finding struct {
	Category   Category `json:"category"`
	Triggered  bool     `json:"triggered"`
	Confidence float64  `json:"confidence"`
	Detail     string   `json:"detail"`
}

// Scan runs every battery over the description and returns one finding per
// category, triggered or not.
func Scan(description string) []Finding {
	return []Finding{
		scanBattery(CategoryHarm, harmPatterns, description),
		scanBattery(CategoryDeception, deceptionPatterns, description),
		scanBattery(CategoryOverreach, overreachPatterns, description),
	}
}

// Flagged reports whether any battery triggered at or above the given
// confidence.
func Flagged(description string, minConfidence float64) bool {
	for _, f := range Scan(description) {
		if f.Triggered && f.Confidence >= minConfidence {
			return true
		}
	}
	return false
}

func scanBattery(cat Category, patterns []struct {
	re         *regexp.Regexp
	confidence float64
	detail     string
}, description string) Finding {
	var best Finding
	best.Category = cat
	for _, p := range patterns {
		if p.re.MatchString(description) && p.confidence > best.Confidence {
			best.Triggered = true
			best.Confidence = p.confidence
			best.Detail = p.detail
		}
	}
	return best
}
