package router

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// compoundPatterns capture queries whose phrasing spans more than one
// analysis in a single breath. Any match routes to the multi-endpoint
// merge path.
var compoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)where should .* expand .* consider`),
	regexp.MustCompile(`(?i)risk.{0,40}\bopportunit`),
	regexp.MustCompile(`(?i)\bopportunit\w*.{0,40}\brisk`),
	regexp.MustCompile(`(?i)strengths and (weaknesses|risks)`),
	regexp.MustCompile(`(?i)demographics?\b.{0,60}\bcompetiti(on|ve)`),
	regexp.MustCompile(`(?i)full picture`),
	regexp.MustCompile(`(?i)comprehensive (view|analysis) of .* and `),
	regexp.MustCompile(`(?i)both .* analysis and .* analysis`),
}

// familyPhrases groups the multi-word analytical phrases that name an
// endpoint family. Counting requires full phrases, not bare brand names,
// so "nike vs adidas" alone never counts as two families.
var familyPhrases = map[string][]string{
	"competitive": {"competitive analysis", "competitor analysis", "competitive landscape"},
	"demographic": {"demographic analysis", "demographic insights", "demographic profile"},
	"risk":        {"risk analysis", "risk assessment", "risk profile"},
	"trend":       {"trend analysis", "market trends", "growth trends"},
	"cluster":     {"cluster analysis", "market segments", "spatial clusters", "customer segments"},
	"strategic":   {"strategic analysis", "expansion strategy", "market expansion"},
	"correlation": {"correlation analysis"},
}

// MultiDetector decides whether a query needs results merged across
// endpoints. It only gates the handoff; the merge itself lives elsewhere.
type MultiDetector struct {
	mentionThreshold int
}

// NewMultiDetector creates a detector that fires on compound phrasing or
// on at least threshold distinct endpoint-family mentions.
func NewMultiDetector(threshold int) *MultiDetector {
	if threshold < 2 {
		threshold = 2
	}
	return &MultiDetector{mentionThreshold: threshold}
}

// ShouldRouteToMultiEndpoint reports whether the query needs the
// multi-endpoint merge path. The two signals are independent and OR'd.
func (d *MultiDetector) ShouldRouteToMultiEndpoint(query string) bool {
	for _, re := range compoundPatterns {
		if re.MatchString(query) {
			zap.L().Debug("router: compound pattern matched",
				zap.String("pattern", re.String()),
			)
			return true
		}
	}

	lower := strings.ToLower(query)
	var families int
	for _, phrases := range familyPhrases {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				families++
				break
			}
		}
	}
	return families >= d.mentionThreshold
}
