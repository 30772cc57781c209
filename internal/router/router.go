// Package router resolves a free-text query to a single endpoint, a
// multi-endpoint handoff, or a caller-supplied override.
package router

import (
	"go.uber.org/zap"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/model"
	"github.com/sells-group/insights-cli/internal/scorer"
)

// Outcome is the terminal routing result for a query. Exactly one outcome
// is produced per query.
type Outcome string

const (
	// OutcomeExplicit means the caller supplied an endpoint; scoring is
	// bypassed entirely.
	OutcomeExplicit Outcome = "explicit_override"
	// OutcomeMulti means the detector decided the query spans endpoints.
	OutcomeMulti Outcome = "multi_endpoint"
	// OutcomeSingle means the scorer's top pick answers the query.
	OutcomeSingle Outcome = "single_endpoint"
)

// Decision is the routing verdict. Endpoint is empty for OutcomeMulti.
// Scores carries the full scored table for explainability when the scorer
// ran; it is nil for explicit overrides.
type Decision struct {
	Outcome  Outcome               `json:"outcome"`
	Endpoint string                `json:"endpoint,omitempty"`
	Scores   []model.EndpointScore `json:"scores,omitempty"`
}

// Router orchestrates the scorer and the multi-endpoint detector.
type Router struct {
	scorer   *scorer.Scorer
	detector *MultiDetector
}

// New creates a Router.
func New(s *scorer.Scorer, d *MultiDetector) *Router {
	return &Router{scorer: s, detector: d}
}

// Route evaluates override, then the multi-endpoint detector, then the
// scorer. The first stage to produce a terminal outcome wins and later
// stages do not run.
func (r *Router) Route(query, explicitEndpoint string) Decision {
	if explicitEndpoint != "" {
		zap.L().Debug("router: explicit endpoint override",
			zap.String("endpoint", explicitEndpoint),
		)
		return Decision{Outcome: OutcomeExplicit, Endpoint: explicitEndpoint}
	}

	if r.detector.ShouldRouteToMultiEndpoint(query) {
		zap.L().Info("router: multi-endpoint query detected",
			zap.String("query", query),
		)
		return Decision{Outcome: OutcomeMulti}
	}

	scores := r.scorer.Score(query)
	endpoint := catalog.DefaultEndpoint
	if len(scores) > 0 && scores[0].Score > 0 {
		endpoint = scores[0].Endpoint
	}
	zap.L().Info("router: single endpoint selected",
		zap.String("endpoint", endpoint),
		zap.String("query", query),
	)
	return Decision{Outcome: OutcomeSingle, Endpoint: endpoint, Scores: scores}
}
