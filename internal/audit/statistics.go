package audit

import (
	"math"
	"sort"
)

// Statistics summarizes an ordered sequence of composite scores.
type Statistics struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	// DriftIndex is the score range, max - min, exactly.
	DriftIndex float64 `json:"driftIndex"`

	// Trend is the Pearson correlation between sequence index and score:
	// positive means improving, negative degrading. Defined as 0 for
	// fewer than two points or a zero denominator.
	Trend float64 `json:"trend"`

	AlignedPercent  float64 `json:"alignedPercent"`
	CriticalPercent float64 `json:"criticalPercent"`
}

// computeStatistics builds Statistics over scores in their original temporal
// order, using the given aligned/critical thresholds for the percentage
// fields. An empty sequence yields the zero value.
func computeStatistics(scores []float64, alignedThreshold, criticalThreshold float64) Statistics {
	n := len(scores)
	if n == 0 {
		return Statistics{}
	}

	var sum float64
	min, max := scores[0], scores[0]
	var aligned, critical int
	for _, s := range scores {
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		if s >= alignedThreshold {
			aligned++
		}
		if s < criticalThreshold {
			critical++
		}
	}
	mean := sum / float64(n)

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(n) // population variance

	return Statistics{
		Count:           n,
		Mean:            mean,
		Median:          median(scores),
		StdDev:          math.Sqrt(variance),
		Min:             min,
		Max:             max,
		DriftIndex:      max - min,
		Trend:           indexTrend(scores),
		AlignedPercent:  100 * float64(aligned) / float64(n),
		CriticalPercent: 100 * float64(critical) / float64(n),
	}
}

// median returns the middle element, or the average of the two middle
// elements on an even count. The input is not mutated.
func median(scores []float64) float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// indexTrend is the Pearson correlation coefficient between sequence index
// and score.
func indexTrend(scores []float64) float64 {
	n := len(scores)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}

	fn := float64(n)
	num := fn*sumXY - sumX*sumY
	den := math.Sqrt(fn*sumXX-sumX*sumX) * math.Sqrt(fn*sumYY-sumY*sumY)
	if den == 0 {
		return 0
	}
	return num / den
}
