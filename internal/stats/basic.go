// Package stats computes distributional statistics and simple pattern
// detection over canonical record sets. All functions tolerate empty
// input by returning zero-valued structures; they never panic.
package stats

import (
	"math"
	"sort"

	"github.com/sells-group/insights-cli/internal/model"
)

// BasicStats summarizes a record set's primary metric.
type BasicStats struct {
	Count   int                     `json:"count"`
	Mean    float64                 `json:"mean"`
	Median  float64                 `json:"median"`
	StdDev  float64                 `json:"std_dev"`
	Min     float64                 `json:"min"`
	Max     float64                 `json:"max"`
	Top5    []model.CanonicalRecord `json:"top5"`
	Bottom5 []model.CanonicalRecord `json:"bottom5"`
}

// ComputeBasicStats computes count, mean, median, population standard
// deviation, and the top/bottom five records. The median is read from the
// value-descending sort directly rather than re-sorting ascending.
func ComputeBasicStats(records []model.CanonicalRecord) BasicStats {
	out := BasicStats{
		Top5:    []model.CanonicalRecord{},
		Bottom5: []model.CanonicalRecord{},
	}
	if len(records) == 0 {
		return out
	}

	sorted := make([]model.CanonicalRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	n := len(sorted)
	out.Count = n
	out.Max = sorted[0].Value
	out.Min = sorted[n-1].Value

	var sum float64
	for _, r := range sorted {
		sum += r.Value
	}
	out.Mean = sum / float64(n)

	if n%2 == 1 {
		out.Median = sorted[n/2].Value
	} else {
		out.Median = (sorted[n/2-1].Value + sorted[n/2].Value) / 2
	}

	// Population standard deviation: divide by N, not N-1.
	var sq float64
	for _, r := range sorted {
		d := r.Value - out.Mean
		sq += d * d
	}
	out.StdDev = math.Sqrt(sq / float64(n))

	top := n
	if top > 5 {
		top = 5
	}
	out.Top5 = append(out.Top5, sorted[:top]...)
	out.Bottom5 = append(out.Bottom5, sorted[n-top:]...)

	return out
}
