package stats

import "github.com/sells-group/insights-cli/internal/model"

// Summarize folds basic and distributional statistics into the
// AnalysisStatistics block handed to rendering and narrative layers.
// Statistics are computed fresh per record set and never cached.
func Summarize(records []model.CanonicalRecord) model.AnalysisStatistics {
	basic := ComputeBasicStats(records)
	dist := ComputeDistribution(records)

	return model.AnalysisStatistics{
		Total:        basic.Count,
		Mean:         basic.Mean,
		Median:       basic.Median,
		Min:          basic.Min,
		Max:          basic.Max,
		StdDev:       basic.StdDev,
		Percentile25: dist.Q1,
		Percentile75: dist.Q3,
		IQR:          dist.IQR,
		OutlierCount: dist.OutlierCount,
	}
}
