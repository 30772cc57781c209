package stats

import (
	"math"
	"sort"

	"github.com/sells-group/insights-cli/internal/model"
)

// Distribution shapes as classified by ComputeDistribution.
const (
	ShapeNormal      = "normal"
	ShapeSkewedLeft  = "skewed-left"
	ShapeSkewedRight = "skewed-right"
	ShapeBimodal     = "bimodal"
)

// Skewness past this magnitude classifies the distribution as skewed.
const skewThreshold = 0.5

// Distribution describes the spread of a record set's primary metric.
// Quartiles use exact index selection (floor(n*q) into the ascending
// sort), not interpolation, so results are bit-for-bit reproducible.
type Distribution struct {
	Q1           float64 `json:"q1"`
	Q2           float64 `json:"q2"`
	Q3           float64 `json:"q3"`
	IQR          float64 `json:"iqr"`
	LowerFence   float64 `json:"lower_fence"`
	UpperFence   float64 `json:"upper_fence"`
	OutlierCount int     `json:"outlier_count"`
	Shape        string  `json:"shape"`
}

// ComputeDistribution computes quartiles, Tukey fences, and a shape
// classification. Empty input returns the zero Distribution.
func ComputeDistribution(records []model.CanonicalRecord) Distribution {
	if len(records) == 0 {
		return Distribution{}
	}

	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Value
	}
	sort.Float64s(values)
	n := len(values)

	d := Distribution{
		Q1: values[quartileIndex(n, 0.25)],
		Q2: values[quartileIndex(n, 0.50)],
		Q3: values[quartileIndex(n, 0.75)],
	}
	d.IQR = d.Q3 - d.Q1
	d.LowerFence = d.Q1 - 1.5*d.IQR
	d.UpperFence = d.Q3 + 1.5*d.IQR

	for _, v := range values {
		if v < d.LowerFence || v > d.UpperFence {
			d.OutlierCount++
		}
	}

	d.Shape = classifyShape(values)
	return d
}

// quartileIndex is floor(n*q), clamped to the last element.
func quartileIndex(n int, q float64) int {
	idx := int(math.Floor(float64(n) * q))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// classifyShape labels the distribution by skewness, with a bimodal
// override when two well-separated histogram bins each hold more than
// 10% of the values.
func classifyShape(sorted []float64) string {
	n := len(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range sorted {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(n))

	if bimodal(sorted) {
		return ShapeBimodal
	}
	if std == 0 {
		return ShapeNormal
	}

	var skew float64
	for _, v := range sorted {
		z := (v - mean) / std
		skew += z * z * z
	}
	skew /= float64(n)

	switch {
	case skew > skewThreshold:
		return ShapeSkewedRight
	case skew < -skewThreshold:
		return ShapeSkewedLeft
	default:
		return ShapeNormal
	}
}

// bimodal detects two histogram peaks over 10% of the count separated by
// more than two bucket widths.
func bimodal(sorted []float64) bool {
	n := len(sorted)
	if n < 10 {
		return false
	}

	lo, hi := sorted[0], sorted[n-1]
	if hi == lo {
		return false
	}

	const bins = 10
	width := (hi - lo) / bins
	counts := make([]int, bins)
	for _, v := range sorted {
		b := int((v - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	threshold := float64(n) * 0.10
	var peaks []int
	for b, c := range counts {
		if float64(c) > threshold {
			peaks = append(peaks, b)
		}
	}
	for i := 0; i < len(peaks); i++ {
		for j := i + 1; j < len(peaks); j++ {
			if peaks[j]-peaks[i] > 2 {
				return true
			}
		}
	}
	return false
}
