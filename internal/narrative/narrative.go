// Package narrative turns processed analyses into short prose summaries.
// The generator is optional; everything upstream works without it.
package narrative

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/insights-cli/internal/pipeline"
	"github.com/sells-group/insights-cli/pkg/anthropic"
)

// Generator produces a prose narrative for a pipeline result.
type Generator interface {
	Narrate(ctx context.Context, res *pipeline.Result) (string, error)
}

const systemPrompt = `You are a market analyst. You are given a statistical digest
of a geospatial market analysis. Write a concise narrative (3-5 sentences)
for a business audience. Only use figures present in the digest; never
invent numbers. When a correlation is marked "estimated", say it is a rough
estimate rather than a measured relationship.`

// ClaudeGenerator narrates analyses through the Anthropic API.
type ClaudeGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewClaudeGenerator creates a generator using the given model.
func NewClaudeGenerator(client anthropic.Client, model string) *ClaudeGenerator {
	return &ClaudeGenerator{client: client, model: model, maxTokens: 1024}
}

// Narrate implements Generator. The prompt carries only the bounded text
// digest, never the full record set.
func (g *ClaudeGenerator) Narrate(ctx context.Context, res *pipeline.Result) (string, error) {
	digest := pipeline.TextSummary(res)

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System: []anthropic.SystemBlock{
			{Text: systemPrompt, CacheControl: &anthropic.CacheControl{TTL: "5m"}},
		},
		Messages: []anthropic.Message{
			{Role: "user", Content: digest},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "narrative: generate")
	}
	resp.Usage.LogCost(g.model, "narrative")

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", eris.New("narrative: model returned no text")
	}

	zap.L().Debug("narrative: generated",
		zap.String("request_id", res.RequestID),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

// NoopGenerator is used when no API key is configured; it returns the
// plain digest so callers always have something to print.
type NoopGenerator struct{}

// Narrate implements Generator.
func (NoopGenerator) Narrate(_ context.Context, res *pipeline.Result) (string, error) {
	return pipeline.TextSummary(res), nil
}
