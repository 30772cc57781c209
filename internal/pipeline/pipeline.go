// Package pipeline runs a query end to end: routing, dataset load,
// geographic filtering, standardization, and statistics.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/dataset"
	"github.com/sells-group/insights-cli/internal/geofilter"
	"github.com/sells-group/insights-cli/internal/keywords"
	"github.com/sells-group/insights-cli/internal/model"
	"github.com/sells-group/insights-cli/internal/processor"
	"github.com/sells-group/insights-cli/internal/router"
	"github.com/sells-group/insights-cli/internal/stats"
)

// Request is one query to answer.
type Request struct {
	Query            string `json:"query"`
	ExplicitEndpoint string `json:"endpoint,omitempty"`
}

// Result is the full pipeline output for one request. Analysis is nil
// when routing decided the query needs the multi-endpoint merge path.
type Result struct {
	RequestID string                   `json:"request_id"`
	Decision  router.Decision          `json:"decision"`
	Entities  []geofilter.Entity       `json:"entities,omitempty"`
	Analysis  *model.ProcessedAnalysis `json:"analysis,omitempty"`
	Patterns  *stats.Patterns          `json:"patterns,omitempty"`
	ElapsedMS int64                    `json:"elapsed_ms"`
}

// Pipeline wires the routing and standardization stages together. All
// stages are request-scoped apart from the shared dataset cache.
type Pipeline struct {
	router   *router.Router
	cache    *dataset.Cache
	registry *processor.Registry
	resolver geofilter.Resolver
	idx      *keywords.Index
}

// New creates a Pipeline. resolver may be nil to skip geographic
// filtering entirely.
func New(r *router.Router, cache *dataset.Cache, registry *processor.Registry, resolver geofilter.Resolver, idx *keywords.Index) *Pipeline {
	return &Pipeline{
		router:   r,
		cache:    cache,
		registry: registry,
		resolver: resolver,
		idx:      idx,
	}
}

// Run answers one query. Validation and processing failures are fatal for
// the request, never downgraded to partial results; an empty geographic
// selection comes back as a valid empty analysis with NoData set.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{RequestID: uuid.New().String()}

	log := zap.L().With(
		zap.String("request_id", result.RequestID),
		zap.String("query", req.Query),
	)

	result.Decision = p.router.Route(req.Query, req.ExplicitEndpoint)
	if result.Decision.Outcome == router.OutcomeMulti {
		// The merge path is a separate subsystem; this pipeline only
		// reports the handoff.
		result.ElapsedMS = time.Since(start).Milliseconds()
		return result, nil
	}

	entry, ok := catalog.Get(result.Decision.Endpoint)
	if !ok {
		return nil, eris.Errorf("pipeline: unknown endpoint %q", result.Decision.Endpoint)
	}

	raw, err := p.cache.Load(ctx, entry.CacheKey)
	if err != nil {
		return nil, err
	}

	records := raw.Results
	if p.resolver != nil {
		resolution, err := p.resolver.Resolve(req.Query, raw.Results)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: geographic resolution")
		}
		result.Entities = resolution.Entities
		records = resolution.Filtered

		if len(resolution.Entities) > 0 && len(records) == 0 {
			empty := &model.EmptyResultError{Entities: entityNames(resolution.Entities)}
			return emptyResult(result, entry, empty, start, log), nil
		}
	}

	pctx := &processor.Context{
		Query:           req.Query,
		ExtractedBrands: p.idx.Brands(req.Query),
	}
	filtered := &model.RawDataset{Success: raw.Success, Results: records}
	canonical, meta, err := p.registry.Run(entry, filtered, pctx)
	if err != nil {
		if model.IsEmptyResult(err) {
			// The source dataset itself held no records.
			return emptyResult(result, entry, err, start, log), nil
		}
		return nil, err
	}

	analysis := &model.ProcessedAnalysis{
		Type:           entry.Processor,
		Endpoint:       entry.Path,
		Records:        canonical,
		Statistics:     stats.Summarize(canonical),
		TargetVariable: entry.TargetVariable,
	}
	patterns := stats.DetectPatterns(canonical)
	applyMetadata(analysis, meta, patterns)

	result.Analysis = analysis
	result.Patterns = &patterns
	result.ElapsedMS = time.Since(start).Milliseconds()

	log.Info("pipeline: complete",
		zap.String("endpoint", entry.Path),
		zap.Int("records", len(canonical)),
		zap.Int64("elapsed_ms", result.ElapsedMS),
	)
	return result, nil
}

// applyMetadata folds family metadata into the analysis block.
func applyMetadata(analysis *model.ProcessedAnalysis, meta *processor.Metadata, patterns stats.Patterns) {
	if meta != nil {
		analysis.Cluster = meta.Cluster
		analysis.Competitive = meta.Competitive
		analysis.Demographic = meta.Demographic
		analysis.Statistics.RiskLevel = meta.RiskLevel
		if meta.Cluster != nil {
			analysis.Statistics.ClusterCount = len(meta.Cluster.Clusters)
		}
	}
	for _, corr := range patterns.Correlations {
		// Only a measured coefficient may claim correlation strength.
		if corr.Kind == stats.KindComputed {
			analysis.Statistics.CorrelationStrength = corr.Coefficient
			break
		}
	}
}

// emptyResult finalizes a request whose selection matched nothing. The
// cause is always an EmptyResultError; it is rendered as an empty state,
// never surfaced to the caller as a failure.
func emptyResult(result *Result, entry catalog.Entry, cause error, start time.Time, log *zap.Logger) *Result {
	log.Info("pipeline: empty result", zap.String("reason", cause.Error()))
	result.Analysis = emptyAnalysis(entry)
	result.ElapsedMS = time.Since(start).Milliseconds()
	return result
}

func entityNames(entities []geofilter.Entity) []string {
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	return names
}

// emptyAnalysis is the valid-but-empty shape for a selection that matched
// nothing.
func emptyAnalysis(entry catalog.Entry) *model.ProcessedAnalysis {
	return &model.ProcessedAnalysis{
		Type:           entry.Processor,
		Endpoint:       entry.Path,
		Records:        []model.CanonicalRecord{},
		Statistics:     stats.Summarize(nil),
		TargetVariable: entry.TargetVariable,
		NoData:         true,
	}
}
