package stats

import (
	"math"

	"github.com/sells-group/insights-cli/internal/model"
)

// ValueKind tags whether a statistic was measured from the data or
// synthesized as a fallback. Downstream consumers must not treat an
// estimated value as fact.
type ValueKind string

const (
	KindComputed  ValueKind = "computed"
	KindEstimated ValueKind = "estimated"
)

// ScoreBand is one naive score-band cluster with a descriptive label.
type ScoreBand struct {
	Label       string  `json:"label"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Count       int     `json:"count"`
	Description string  `json:"description"`
}

// Correlation is the relationship between the primary metric and one
// auxiliary field. Kind distinguishes measured coefficients from the
// synthetic fallback emitted when no auxiliary field exists.
type Correlation struct {
	Field       string    `json:"field"`
	Coefficient float64   `json:"coefficient"`
	Kind        ValueKind `json:"kind"`
	Confidence  string    `json:"confidence"`
}

// Patterns is the output of DetectPatterns.
type Patterns struct {
	Bands        []ScoreBand   `json:"bands"`
	Correlations []Correlation `json:"correlations"`
}

// Fixed score-band thresholds for the naive clustering.
const (
	bandHighCutoff     = 8.0
	bandModerateCutoff = 6.0
)

// auxFieldSpellings maps an auxiliary concept to the field-name spellings
// tried against record properties, in order.
var auxFieldSpellings = map[string][]string{
	"population": {"value_TOTPOP_CY", "TOTPOP_CY", "population", "total_population"},
	"income":     {"value_MEDDI_CY", "MEDDI_CY", "income", "median_income"},
}

// syntheticCoefficient is the clearly-weak fallback emitted when no
// auxiliary field is present, so consumers always have something to
// render. It is tagged estimated/low and must be surfaced as such.
const syntheticCoefficient = 0.1

// DetectPatterns clusters records into fixed score bands and correlates
// the primary metric against available auxiliary fields.
func DetectPatterns(records []model.CanonicalRecord) Patterns {
	p := Patterns{
		Bands:        []ScoreBand{},
		Correlations: []Correlation{},
	}
	if len(records) == 0 {
		return p
	}

	high := ScoreBand{Label: "high", Min: bandHighCutoff, Max: math.Inf(1), Description: "Strong market performance"}
	moderate := ScoreBand{Label: "moderate", Min: bandModerateCutoff, Max: bandHighCutoff, Description: "Developing market with growth potential"}
	low := ScoreBand{Label: "developing", Min: math.Inf(-1), Max: bandModerateCutoff, Description: "Early-stage market presence"}
	for _, r := range records {
		switch {
		case r.Value >= bandHighCutoff:
			high.Count++
		case r.Value >= bandModerateCutoff:
			moderate.Count++
		default:
			low.Count++
		}
	}
	p.Bands = append(p.Bands, high, moderate, low)

	for _, concept := range []string{"population", "income"} {
		if corr, ok := correlateAgainst(records, auxFieldSpellings[concept]); ok {
			p.Correlations = append(p.Correlations, corr)
		} else {
			p.Correlations = append(p.Correlations, Correlation{
				Field:       concept,
				Coefficient: syntheticCoefficient,
				Kind:        KindEstimated,
				Confidence:  "low",
			})
		}
	}

	return p
}

// correlateAgainst computes a Pearson coefficient for the first auxiliary
// spelling present on enough records.
func correlateAgainst(records []model.CanonicalRecord, spellings []string) (Correlation, bool) {
	for _, field := range spellings {
		xs := make([]float64, 0, len(records))
		ys := make([]float64, 0, len(records))
		for _, r := range records {
			aux, ok := numericProperty(r.Properties, field)
			if !ok {
				continue
			}
			xs = append(xs, r.Value)
			ys = append(ys, aux)
		}
		// Require the field on at least half the records to call it real.
		if len(xs) < 2 || len(xs)*2 < len(records) {
			continue
		}

		r := pearson(xs, ys)
		return Correlation{
			Field:       field,
			Coefficient: r,
			Kind:        KindComputed,
			Confidence:  confidenceFor(r),
		}, true
	}
	return Correlation{}, false
}

func numericProperty(props map[string]any, field string) (float64, bool) {
	v, ok := props[field]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func confidenceFor(r float64) string {
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		return "high"
	case abs >= 0.4:
		return "medium"
	default:
		return "low"
	}
}
