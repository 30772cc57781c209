package narrative

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/insights-cli/internal/model"
	"github.com/sells-group/insights-cli/internal/pipeline"
	"github.com/sells-group/insights-cli/internal/router"
	"github.com/sells-group/insights-cli/pkg/anthropic"
)

// fakeClient records the request and returns a scripted response.
type fakeClient struct {
	lastReq anthropic.MessageRequest
	resp    *anthropic.MessageResponse
	err     error
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		RequestID: "req-1",
		Decision: router.Decision{
			Outcome:  router.OutcomeSingle,
			Endpoint: "/analyze",
		},
		Analysis: &model.ProcessedAnalysis{
			Type:           "default",
			Endpoint:       "/analyze",
			TargetVariable: "value_MP30034A_B",
			Records: []model.CanonicalRecord{
				{AreaID: "11215", AreaName: "Park Slope", Value: 34.2, Rank: 1},
			},
			Statistics: model.AnalysisStatistics{Total: 1, Mean: 34.2, Median: 34.2, Min: 34.2, Max: 34.2},
		},
	}
}

func TestClaudeGenerator_Narrate(t *testing.T) {
	client := &fakeClient{
		resp: &anthropic.MessageResponse{
			Content: []anthropic.ContentBlock{
				{Type: "text", Text: "Park Slope leads with a mean of 34.2."},
			},
		},
	}
	g := NewClaudeGenerator(client, "claude-sonnet-4-5-20250929")

	text, err := g.Narrate(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, "Park Slope leads with a mean of 34.2.", text)

	// The prompt carries the digest, not raw records.
	require.Len(t, client.lastReq.Messages, 1)
	assert.Contains(t, client.lastReq.Messages[0].Content, "Park Slope")
	assert.Contains(t, client.lastReq.Messages[0].Content, "Mean 34.20")
}

func TestClaudeGenerator_EmptyResponse(t *testing.T) {
	client := &fakeClient{resp: &anthropic.MessageResponse{}}
	g := NewClaudeGenerator(client, "claude-sonnet-4-5-20250929")

	_, err := g.Narrate(context.Background(), sampleResult())
	assert.Error(t, err)
}

func TestNoopGenerator_ReturnsDigest(t *testing.T) {
	text, err := NoopGenerator{}.Narrate(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Contains(t, text, "Areas analyzed: 1")
}
