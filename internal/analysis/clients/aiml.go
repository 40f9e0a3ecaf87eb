package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/platform/ai/chat"
)

const aimlModel = "gpt-4o-mini"

// AIMLMarketAnalyst fetches market conditions from the AI/ML API. The
// upstream's response shape is unstable, so the raw decoded value is
// returned and normalized by the pipeline.
type AIMLMarketAnalyst struct {
	client *chat.Client
}

func NewAIMLMarketAnalyst(apiKey, baseURL string) *AIMLMarketAnalyst {
	return &AIMLMarketAnalyst{
		client: chat.New(chat.Config{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   aimlModel,
		}),
	}
}

func (a *AIMLMarketAnalyst) MarketInsight(ctx context.Context, req domain.CatchRequest) (any, error) {
	prompt := fmt.Sprintf(
		"Analyze current market conditions for %s in %s, Tanzania. "+
			"Respond with JSON containing market_trend (rising, falling or stable) "+
			"and recommendation (one short sentence of selling advice).",
		req.FishType, req.Location)

	content, err := a.client.Complete(ctx, chat.Request{
		Messages: []chat.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("aiml market insight: %w", err)
	}

	var decoded any
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &decoded); err != nil {
		// Not JSON: hand the bare text to the normalizer as-is.
		return content, nil
	}
	return decoded, nil
}
