// Package catalog defines the static endpoint catalog: every pre-computed
// analysis the pipeline can route to, with its cache key, scoring keywords,
// primary metric, and processor family. Adding an endpoint means adding one
// Entry here and nothing else.
package catalog

// ScoringKeywords is the per-endpoint keyword configuration consumed by the
// endpoint scorer. Primary keywords match on word boundaries; context
// keywords match as substrings (multi-word phrases); avoid terms indicate
// the query is about a different concept and subtract a flat penalty.
type ScoringKeywords struct {
	Primary []string `yaml:"primary"`
	Context []string `yaml:"context"`
	Avoid   []string `yaml:"avoid"`
	Weight  float64  `yaml:"weight"`
}

// Entry describes one endpoint: its route path, the storage key its
// pre-computed dataset is addressable by, the designated primary metric
// field, the processor family that standardizes its records, and its
// scoring keywords.
type Entry struct {
	Path           string
	Description    string
	CacheKey       string
	TargetVariable string
	Processor      string
	Scoring        ScoringKeywords
}

// DefaultEndpoint is the universal fallback: every query routes somewhere,
// and ambiguous queries land here.
const DefaultEndpoint = "/analyze"

// Processor family names. The processor registry maps these to strategy
// implementations; unknown names fall back to the default family.
const (
	ProcessorDefault     = "default"
	ProcessorCompetitive = "competitive"
	ProcessorDifference  = "brand-difference"
	ProcessorCluster     = "cluster"
	ProcessorDemographic = "demographic"
	ProcessorRisk        = "risk"
)

var entries = []Entry{
	{
		Path:           "/analyze",
		Description:    "General ranked market analysis",
		CacheKey:       "analyze",
		TargetVariable: "value_MP30034A_B",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"analyze", "analysis", "show", "performance"},
			Context: []string{"market performance", "overall", "general analysis"},
			Weight:  0.8,
		},
	},
	{
		Path:           "/competitive-analysis",
		Description:    "Brand competitive positioning by area",
		CacheKey:       "competitive-analysis",
		TargetVariable: "competitive_score",
		Processor:      ProcessorCompetitive,
		Scoring: ScoringKeywords{
			Primary: []string{"competitive", "competition", "compete", "vs", "versus"},
			Context: []string{"competitive analysis", "market share", "competitor analysis", "brand positioning", "head to head"},
			Avoid:   []string{"correlation", "cluster"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/brand-difference",
		Description:    "Pairwise brand share difference by area",
		CacheKey:       "brand-difference",
		TargetVariable: "brand_difference_score",
		Processor:      ProcessorDifference,
		Scoring: ScoringKeywords{
			Primary: []string{"difference", "gap", "lead", "ahead", "behind"},
			Context: []string{"share difference", "difference between", "market share difference", "brand gap", "percentage point"},
			Avoid:   []string{"correlation"},
			Weight:  1.1,
		},
	},
	{
		Path:           "/spatial-clusters",
		Description:    "Geographic similarity clusters",
		CacheKey:       "spatial-clusters",
		TargetVariable: "cluster_id",
		Processor:      ProcessorCluster,
		Scoring: ScoringKeywords{
			Primary: []string{"cluster", "clusters", "segment", "segments", "group", "groups"},
			Context: []string{"spatial clusters", "similar areas", "market segments", "geographic groups", "customer segments"},
			Avoid:   []string{"difference", "versus"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/demographic-insights",
		Description:    "Demographic drivers of the target metric",
		CacheKey:       "demographic-insights",
		TargetVariable: "demographic_opportunity_score",
		Processor:      ProcessorDemographic,
		Scoring: ScoringKeywords{
			Primary: []string{"demographic", "demographics", "population", "income", "age"},
			Context: []string{"demographic insights", "demographic profile", "who lives", "population characteristics", "median income"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/customer-profile",
		Description:    "Ideal customer profile fit by area",
		CacheKey:       "customer-profile",
		TargetVariable: "customer_profile_score",
		Processor:      ProcessorDemographic,
		Scoring: ScoringKeywords{
			Primary: []string{"customer", "customers", "persona", "profile", "lifestyle"},
			Context: []string{"customer profile", "ideal customer", "target customer", "customer fit", "lifestyle fit"},
			Avoid:   []string{"cluster"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/trend-analysis",
		Description:    "Temporal trend strength by area",
		CacheKey:       "trend-analysis",
		TargetVariable: "trend_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"trend", "trends", "trending", "momentum", "growth"},
			Context: []string{"trend analysis", "over time", "growth pattern", "gaining traction"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/correlation-analysis",
		Description:    "Metric correlation strength by area",
		CacheKey:       "correlation-analysis",
		TargetVariable: "correlation_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"correlation", "correlate", "correlated", "relationship"},
			Context: []string{"correlation analysis", "relationship between", "related to", "linked to"},
			Avoid:   []string{"compare", "versus", "difference"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/anomaly-detection",
		Description:    "Statistical anomalies in market behavior",
		CacheKey:       "anomaly-detection",
		TargetVariable: "anomaly_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"anomaly", "anomalies", "unusual", "unexpected", "surprising"},
			Context: []string{"anomaly detection", "stand out", "out of pattern", "doesn't fit"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/outlier-detection",
		Description:    "Outlier areas on the primary metric",
		CacheKey:       "outlier-detection",
		TargetVariable: "outlier_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"outlier", "outliers", "extreme", "exceptional"},
			Context: []string{"outlier detection", "extreme values", "exceptional markets"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/predictive-modeling",
		Description:    "Model-predicted future performance",
		CacheKey:       "predictive-modeling",
		TargetVariable: "prediction_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"predict", "prediction", "forecast", "future", "projected"},
			Context: []string{"predictive modeling", "will perform", "next year", "expected growth"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/feature-interactions",
		Description:    "Interaction effects between explanatory features",
		CacheKey:       "feature-interactions",
		TargetVariable: "interaction_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"interaction", "interactions", "combined", "interplay"},
			Context: []string{"feature interactions", "work together", "combined effect", "amplify"},
			Weight:  0.9,
		},
	},
	{
		Path:           "/segment-profiling",
		Description:    "Market segment profiles",
		CacheKey:       "segment-profiling",
		TargetVariable: "segment_score",
		Processor:      ProcessorCluster,
		Scoring: ScoringKeywords{
			Primary: []string{"segmentation", "profiling", "archetype", "archetypes"},
			Context: []string{"segment profiling", "market segmentation", "segment profile"},
			Weight:  0.9,
		},
	},
	{
		Path:           "/scenario-analysis",
		Description:    "What-if scenario resilience",
		CacheKey:       "scenario-analysis",
		TargetVariable: "scenario_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"scenario", "scenarios", "what-if", "simulate"},
			Context: []string{"scenario analysis", "what if", "what would happen", "under conditions"},
			Weight:  0.9,
		},
	},
	{
		Path:           "/sensitivity-analysis",
		Description:    "Sensitivity of the metric to input shifts",
		CacheKey:       "sensitivity-analysis",
		TargetVariable: "sensitivity_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"sensitivity", "sensitive", "elasticity", "responsive"},
			Context: []string{"sensitivity analysis", "how sensitive", "price sensitivity"},
			Weight:  0.9,
		},
	},
	{
		Path:           "/market-sizing",
		Description:    "Addressable market size by area",
		CacheKey:       "market-sizing",
		TargetVariable: "market_size_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"size", "sizing", "tam", "addressable"},
			Context: []string{"market sizing", "market size", "total addressable", "revenue potential"},
			Weight:  0.9,
		},
	},
	{
		Path:           "/penetration-analysis",
		Description:    "Brand penetration versus potential",
		CacheKey:       "penetration-analysis",
		TargetVariable: "penetration_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"penetration", "untapped", "underserved", "saturation"},
			Context: []string{"penetration analysis", "market penetration", "room to grow", "white space"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/threshold-analysis",
		Description:    "Threshold effects on the primary metric",
		CacheKey:       "threshold-analysis",
		TargetVariable: "threshold_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"threshold", "thresholds", "tipping", "inflection"},
			Context: []string{"threshold analysis", "tipping point", "critical mass"},
			Weight:  0.9,
		},
	},
	{
		Path:           "/comparative-analysis",
		Description:    "Area-versus-area comparison",
		CacheKey:       "comparative-analysis",
		TargetVariable: "comparison_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"compare", "comparison", "between"},
			Context: []string{"comparative analysis", "compare areas", "city comparison", "region comparison"},
			Avoid:   []string{"correlation"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/risk-analysis",
		Description:    "Market risk assessment by area",
		CacheKey:       "risk-analysis",
		TargetVariable: "risk_adjusted_score",
		Processor:      ProcessorRisk,
		Scoring: ScoringKeywords{
			Primary: []string{"risk", "risks", "risky", "volatile", "volatility"},
			Context: []string{"risk analysis", "risk assessment", "downside", "safe markets"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/strategic-analysis",
		Description:    "Strategic market value ranking",
		CacheKey:       "strategic-analysis",
		TargetVariable: "strategic_value_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"strategic", "strategy", "expansion", "invest", "opportunity"},
			Context: []string{"strategic analysis", "where should", "expansion strategy", "best markets", "investment priority"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/consensus-analysis",
		Description:    "Cross-model consensus ranking",
		CacheKey:       "consensus-analysis",
		TargetVariable: "consensus_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"consensus", "agreement", "agree", "robust"},
			Context: []string{"consensus analysis", "models agree", "consistent across"},
			Weight:  0.8,
		},
	},
	{
		Path:           "/feature-importance-ranking",
		Description:    "Ranked explanatory feature importance",
		CacheKey:       "feature-importance-ranking",
		TargetVariable: "importance_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"importance", "important", "drivers", "factors", "why"},
			Context: []string{"feature importance", "what drives", "key factors", "explains", "shap"},
			Weight:  1.0,
		},
	},
	{
		Path:           "/dimensionality-insights",
		Description:    "Principal dimensions of market variation",
		CacheKey:       "dimensionality-insights",
		TargetVariable: "dimension_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"dimensions", "dimensionality", "components", "variance"},
			Context: []string{"dimensionality insights", "principal components", "explained variance"},
			Weight:  0.8,
		},
	},
	{
		Path:           "/model-performance",
		Description:    "Per-area model accuracy diagnostics",
		CacheKey:       "model-performance",
		TargetVariable: "r2_score",
		Processor:      ProcessorDefault,
		Scoring: ScoringKeywords{
			Primary: []string{"accuracy", "r2", "reliable", "confidence"},
			Context: []string{"model performance", "how accurate", "prediction quality", "model reliability"},
			Weight:  0.8,
		},
	},
}

// Entries returns the catalog in enumeration order. The returned slice is
// shared; callers must not mutate it.
func Entries() []Entry { return entries }

// Get returns the entry for a path, or false when the path is unknown.
func Get(path string) (Entry, bool) {
	for _, e := range entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Paths returns every endpoint path in enumeration order.
func Paths() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
