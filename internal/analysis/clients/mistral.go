// Package clients holds the concrete upstream adapters behind the
// analysis pipeline's collaborator interfaces.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/platform/ai/chat"
)

const mistralModel = "mistral-small-latest"

// MistralPricer estimates a fair market price using Mistral's
// chat-completions API in JSON mode.
type MistralPricer struct {
	client *chat.Client
}

func NewMistralPricer(apiKey, baseURL string) *MistralPricer {
	return &MistralPricer{
		client: chat.New(chat.Config{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   mistralModel,
		}),
	}
}

func (p *MistralPricer) EstimatePrice(ctx context.Context, req domain.CatchRequest) (domain.PriceEstimate, error) {
	prompt := fmt.Sprintf(
		"You are a fish market pricing expert for Tanzanian markets. "+
			"Estimate a fair price for %s kg of %s caught near %s. "+
			"Respond with a JSON object with keys fair_price (number, TZS per kg), "+
			"currency (string), reasoning (string) and confidence_score (number between 0 and 1).",
		formatQuantity(req.QuantityKg), req.FishType, req.Location)

	content, err := p.client.Complete(ctx, chat.Request{
		Messages: []chat.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		JSONMode:    true,
	})
	if err != nil {
		return domain.PriceEstimate{}, fmt.Errorf("mistral price estimate: %w", err)
	}

	var estimate domain.PriceEstimate
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &estimate); err != nil {
		return domain.PriceEstimate{}, fmt.Errorf("decode price estimate: %w", err)
	}
	if estimate.Currency == "" {
		estimate.Currency = "TZS"
	}
	return estimate, nil
}

// stripCodeFence removes a markdown code fence some upstreams wrap JSON
// responses in despite JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func formatQuantity(q float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", q), "0"), ".")
}
