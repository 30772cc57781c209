package pipeline

import (
	"fmt"
	"strings"
)

// summaryTopN bounds how many leading records the textual summary lists,
// keeping prompt size independent of dataset size.
const summaryTopN = 10

// TextSummary renders a bounded plain-text digest of a pipeline result,
// suitable for terminal output and as grounding for narrative prompts.
// The full record set is never inlined.
func TextSummary(res *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Routing: %s", res.Decision.Outcome)
	if res.Decision.Endpoint != "" {
		fmt.Fprintf(&b, " -> %s", res.Decision.Endpoint)
	}
	b.WriteString("\n")

	if len(res.Entities) > 0 {
		names := make([]string, len(res.Entities))
		for i, e := range res.Entities {
			names[i] = e.Name
		}
		fmt.Fprintf(&b, "Geographic focus: %s\n", strings.Join(names, ", "))
	}

	a := res.Analysis
	if a == nil {
		b.WriteString("No single-endpoint analysis produced.\n")
		return b.String()
	}
	if a.NoData {
		fmt.Fprintf(&b, "No data matched the selection for %s.\n", a.Endpoint)
		return b.String()
	}

	s := a.Statistics
	fmt.Fprintf(&b, "Target variable: %s\n", a.TargetVariable)
	fmt.Fprintf(&b, "Areas analyzed: %d\n", s.Total)
	fmt.Fprintf(&b, "Mean %.2f, median %.2f, range %.2f-%.2f, stddev %.2f\n",
		s.Mean, s.Median, s.Min, s.Max, s.StdDev)
	fmt.Fprintf(&b, "IQR %.2f (P25 %.2f, P75 %.2f), outliers %d\n",
		s.IQR, s.Percentile25, s.Percentile75, s.OutlierCount)
	if s.ClusterCount > 0 {
		fmt.Fprintf(&b, "Clusters: %d\n", s.ClusterCount)
	}
	if s.RiskLevel != "" {
		fmt.Fprintf(&b, "Overall risk: %s\n", s.RiskLevel)
	}
	if a.Competitive != nil {
		fmt.Fprintf(&b, "Brand framing: %s vs %s on %s\n",
			a.Competitive.BrandA, a.Competitive.BrandB, a.Competitive.Metric)
	}
	if a.Demographic != nil && len(a.Demographic.Fields) > 0 {
		fmt.Fprintf(&b, "Demographic fields: %s\n", strings.Join(a.Demographic.Fields, ", "))
	}

	top := summaryTopN
	if top > len(a.Records) {
		top = len(a.Records)
	}
	if top > 0 {
		b.WriteString("Top areas:\n")
		for _, r := range a.Records[:top] {
			name := r.AreaName
			if name == "" {
				name = r.AreaID
			}
			fmt.Fprintf(&b, "  %d. %s: %.2f\n", r.Rank, name, r.Value)
		}
	}

	if res.Patterns != nil {
		for _, c := range res.Patterns.Correlations {
			fmt.Fprintf(&b, "Correlation with %s: %.2f (%s, %s confidence)\n",
				c.Field, c.Coefficient, c.Kind, c.Confidence)
		}
	}

	return b.String()
}
