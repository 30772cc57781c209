package scorer

import (
	"strings"

	"github.com/sells-group/insights-cli/internal/config"
)

// intentCheck pairs an intent name with the phrases that signal it.
type intentCheck struct {
	intent   string
	keywords []string
}

// intentChecks is evaluated in order; the first match wins. Relationship
// runs before comparison so "relationship between X and Y" is not misread
// as a location comparison.
var intentChecks = []intentCheck{
	{
		intent: config.IntentRelationship,
		keywords: []string{
			"relationship", "correlation", "correlate", "correlated",
			"related to", "linked to", "association between",
		},
	},
	{
		intent: config.IntentComparison,
		keywords: []string{
			"compare", "comparison", "versus", " vs ", " vs.", "difference between",
			"better than", "worse than", "against",
		},
	},
	{
		intent: config.IntentRanking,
		keywords: []string{
			"top ", "best", "highest", "lowest", "worst", "rank", "ranking", "leading",
		},
	},
	{
		intent: config.IntentDemographic,
		keywords: []string{
			"demographic", "population", "income", "age group", "who lives", "who buys",
		},
	},
	{
		intent: config.IntentTrend,
		keywords: []string{
			"trend", "over time", "growth", "growing", "forecast", "future", "momentum",
		},
	},
}

// ClassifyIntent assigns a query exactly one intent. Queries matching no
// check fall through to the generic analysis intent.
func ClassifyIntent(query string) string {
	lower := " " + strings.ToLower(query) + " "
	for _, check := range intentChecks {
		for _, kw := range check.keywords {
			if strings.Contains(lower, kw) {
				return check.intent
			}
		}
	}
	return config.IntentAnalysis
}
