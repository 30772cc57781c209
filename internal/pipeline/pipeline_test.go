package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/insights-cli/internal/config"
	"github.com/sells-group/insights-cli/internal/dataset"
	"github.com/sells-group/insights-cli/internal/geofilter"
	"github.com/sells-group/insights-cli/internal/keywords"
	"github.com/sells-group/insights-cli/internal/model"
	"github.com/sells-group/insights-cli/internal/processor"
	"github.com/sells-group/insights-cli/internal/router"
	"github.com/sells-group/insights-cli/internal/scorer"
)

// memorySource serves fixed datasets keyed by endpoint cache key.
type memorySource struct {
	data map[string]*model.RawDataset
}

func (s *memorySource) Name() string { return "memory" }

func (s *memorySource) Load(_ context.Context, key string) (*model.RawDataset, error) {
	if ds, ok := s.data[key]; ok {
		return ds, nil
	}
	return nil, dataset.ErrNotFound
}

func newTestPipeline(data map[string]*model.RawDataset) *Pipeline {
	cfg := config.DefaultScoringConfig()
	idx := keywords.NewIndex()
	return New(
		router.New(scorer.New(cfg, idx), router.NewMultiDetector(cfg.MultiEndpointThreshold)),
		dataset.NewCache(&memorySource{data: data}),
		processor.NewRegistry(idx),
		geofilter.NewGazetteer(),
		idx,
	)
}

func analyzeDataset() *model.RawDataset {
	return &model.RawDataset{
		Success: true,
		Results: []map[string]any{
			{"area_id": "11215", "area_name": "Park Slope", "value_MP30034A_B": 34.2},
			{"area_id": "11217", "area_name": "Boerum Hill", "value_MP30034A_B": 28.9},
			{"area_id": "19103", "area_name": "Center City", "value_MP30034A_B": 22.1},
		},
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{"analyze": analyzeDataset()})

	res, err := p.Run(context.Background(), Request{Query: "analyze athletic shoe performance"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, router.OutcomeSingle, res.Decision.Outcome)
	assert.Equal(t, "/analyze", res.Decision.Endpoint)

	require.NotNil(t, res.Analysis)
	assert.Equal(t, "/analyze", res.Analysis.Endpoint)
	assert.Equal(t, "value_MP30034A_B", res.Analysis.TargetVariable)
	require.Len(t, res.Analysis.Records, 3)
	assert.Equal(t, 1, res.Analysis.Records[0].Rank)
	assert.Equal(t, "Park Slope", res.Analysis.Records[0].AreaName)
	assert.Equal(t, 3, res.Analysis.Statistics.Total)
	require.NotNil(t, res.Patterns)
}

func TestPipeline_GeographicFiltering(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{"analyze": analyzeDataset()})

	res, err := p.Run(context.Background(), Request{Query: "analyze performance in Brooklyn"})
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, "Brooklyn", res.Entities[0].Name)
	require.NotNil(t, res.Analysis)
	assert.Len(t, res.Analysis.Records, 2, "Philadelphia record filtered out")
	assert.False(t, res.Analysis.NoData)
}

func TestPipeline_EmptySelectionIsNotAnError(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{"analyze": analyzeDataset()})

	res, err := p.Run(context.Background(), Request{Query: "analyze performance in Seattle"})
	require.NoError(t, err, "an empty selection is a valid result")

	require.NotNil(t, res.Analysis)
	assert.True(t, res.Analysis.NoData)
	assert.Empty(t, res.Analysis.Records)
	assert.Equal(t, 0, res.Analysis.Statistics.Total)
}

func TestPipeline_EmptySourceDatasetIsNoData(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{
		"analyze": {Success: true, Results: []map[string]any{}},
	})

	res, err := p.Run(context.Background(), Request{Query: "analyze the market"})
	require.NoError(t, err, "a legitimately empty dataset is an empty state")

	require.NotNil(t, res.Analysis)
	assert.True(t, res.Analysis.NoData)
	assert.Empty(t, res.Analysis.Records)
}

func TestPipeline_MultiEndpointHandoff(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{"analyze": analyzeDataset()})

	res, err := p.Run(context.Background(), Request{Query: "give me the full picture"})
	require.NoError(t, err)
	assert.Equal(t, router.OutcomeMulti, res.Decision.Outcome)
	assert.Nil(t, res.Analysis, "the merge path is handled elsewhere")
}

func TestPipeline_ExplicitOverride(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{
		"risk-analysis": {
			Success: true,
			Results: []map[string]any{
				{"area_id": "11215", "risk_adjusted_score": 8.5},
			},
		},
	})

	res, err := p.Run(context.Background(), Request{
		Query:            "this text would route elsewhere",
		ExplicitEndpoint: "/risk-analysis",
	})
	require.NoError(t, err)
	assert.Equal(t, router.OutcomeExplicit, res.Decision.Outcome)
	require.NotNil(t, res.Analysis)
	assert.Equal(t, "low", res.Analysis.Statistics.RiskLevel)
}

func TestPipeline_DatasetUnavailable(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{})

	_, err := p.Run(context.Background(), Request{Query: "analyze the market"})
	require.Error(t, err)
	assert.True(t, model.IsDatasetUnavailable(err))
}

func TestPipeline_UnknownExplicitEndpoint(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{})

	_, err := p.Run(context.Background(), Request{
		Query:            "anything",
		ExplicitEndpoint: "/not-in-catalog",
	})
	assert.Error(t, err)
}

func TestTextSummary_Bounded(t *testing.T) {
	results := make([]map[string]any, 500)
	for i := range results {
		results[i] = map[string]any{"area_id": "11215", "value_MP30034A_B": float64(i)}
	}
	p := newTestPipeline(map[string]*model.RawDataset{
		"analyze": {Success: true, Results: results},
	})

	res, err := p.Run(context.Background(), Request{Query: "analyze everything"})
	require.NoError(t, err)

	summary := TextSummary(res)
	assert.Contains(t, summary, "Areas analyzed: 500")
	assert.Less(t, len(summary), 4000, "summary stays bounded regardless of dataset size")
}

func TestTextSummary_NoData(t *testing.T) {
	p := newTestPipeline(map[string]*model.RawDataset{"analyze": analyzeDataset()})

	res, err := p.Run(context.Background(), Request{Query: "analyze performance in Seattle"})
	require.NoError(t, err)
	assert.Contains(t, TextSummary(res), "No data matched")
}
