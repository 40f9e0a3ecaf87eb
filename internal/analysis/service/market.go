package service

import (
	"fmt"

	"samakicash_backend/internal/analysis/domain"
)

// Upstream market services disagree on how they label the trend field.
// These are checked in priority order; the first non-empty value wins.
const (
	trendFieldPrimary   = "market_trend"
	trendFieldAlternate = "market_trend_major"
	trendDefault        = "stable"
)

// NormalizeMarketInsight converts an arbitrary successful upstream
// response into the fixed MarketInsight shape. A bare string is taken
// as the trend itself; a structured response is searched for the known
// trend fields; anything else defaults to "stable". Normalization runs
// on the success path too, not only on fallback.
func NormalizeMarketInsight(raw any) domain.MarketInsight {
	switch v := raw.(type) {
	case nil:
		return domain.MarketInsight{MarketTrend: trendDefault}
	case string:
		if v == "" {
			return domain.MarketInsight{MarketTrend: trendDefault}
		}
		return domain.MarketInsight{MarketTrend: v}
	case map[string]any:
		insight := domain.MarketInsight{
			MarketTrend: trendDefault,
			Raw:         v,
		}
		for _, field := range []string{trendFieldPrimary, trendFieldAlternate} {
			if trend := stringField(v, field); trend != "" {
				insight.MarketTrend = trend
				break
			}
		}
		insight.Recommendation = stringField(v, "recommendation")
		return insight
	default:
		return domain.MarketInsight{MarketTrend: fmt.Sprintf("%v", v)}
	}
}

func stringField(m map[string]any, key string) string {
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}
