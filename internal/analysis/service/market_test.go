package service

import "testing"

func TestNormalizeMarketInsightStructured(t *testing.T) {
	insight := NormalizeMarketInsight(map[string]any{
		"market_trend":   "rising",
		"recommendation": "Sell now",
	})

	if insight.MarketTrend != "rising" {
		t.Fatalf("expected rising, got %q", insight.MarketTrend)
	}
	if insight.Recommendation != "Sell now" {
		t.Fatalf("unexpected recommendation %q", insight.Recommendation)
	}
}

func TestNormalizeMarketInsightAlternateField(t *testing.T) {
	insight := NormalizeMarketInsight(map[string]any{
		"market_trend_major": "falling",
	})

	if insight.MarketTrend != "falling" {
		t.Fatalf("expected alternate field to win, got %q", insight.MarketTrend)
	}
}

func TestNormalizeMarketInsightPrimaryBeatsAlternate(t *testing.T) {
	insight := NormalizeMarketInsight(map[string]any{
		"market_trend":       "rising",
		"market_trend_major": "falling",
	})

	if insight.MarketTrend != "rising" {
		t.Fatalf("expected primary field priority, got %q", insight.MarketTrend)
	}
}

func TestNormalizeMarketInsightBareString(t *testing.T) {
	insight := NormalizeMarketInsight("volatile")

	if insight.MarketTrend != "volatile" {
		t.Fatalf("expected bare string as trend, got %q", insight.MarketTrend)
	}
}

func TestNormalizeMarketInsightDefaults(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"missing fields", map[string]any{"something_else": 1}},
		{"non-string trend", map[string]any{"market_trend": 42}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			insight := NormalizeMarketInsight(tc.raw)
			if insight.MarketTrend != "stable" {
				t.Fatalf("expected stable, got %q", insight.MarketTrend)
			}
		})
	}
}

func TestNormalizeMarketInsightPreservesRaw(t *testing.T) {
	raw := map[string]any{"market_trend": "rising", "volume": 12.5}
	insight := NormalizeMarketInsight(raw)

	if insight.Raw["volume"] != 12.5 {
		t.Fatal("expected raw payload preserved")
	}
}
