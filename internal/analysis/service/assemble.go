package service

import (
	"fmt"
	"strconv"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/internal/analysis/transport"
)

// stageOutcomes carries everything the pipeline produced into assembly.
type stageOutcomes struct {
	price   StageResult[domain.PriceEstimate]
	market  StageResult[domain.MarketInsight]
	image   StageResult[domain.ImageAssessment]
	voice   StageResult[domain.VoiceArtifact]
	matches StageResult[[]domain.BuyerMatch]
	credit  StageResult[domain.CreditSnapshot]
}

// assemble builds the final response from whatever survived the
// pipeline. A panic here is the only way an analysis run fails: it is
// recovered into an error response carrying no partial data.
func assemble(req domain.CatchRequest, out stageOutcomes) (resp transport.AnalysisResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = transport.AnalysisResponse{
				Status:  "error",
				Message: fmt.Sprintf("Processing failed: %v", rec),
			}
		}
	}()

	price := out.price.Value
	market := out.market.Value
	image := out.image.Value
	voice := out.voice.Value
	credit := out.credit.Value

	matches := out.matches.Value
	if matches == nil {
		matches = []domain.BuyerMatch{}
	}

	var voiceURL *string
	if !voice.Skipped && voice.Filename != "" {
		url := "/audio/" + voice.Filename
		voiceURL = &url
	}

	return transport.AnalysisResponse{
		Status:          "success",
		PriceAnalysis:   &price,
		MarketInsights:  &market,
		ImageAnalysis:   &image,
		VoiceMessageURL: voiceURL,
		AnalysisSummary: buildSummary(req, out.price, market),
		Matches:         matches,
		CreditInfo:      &credit,
		Recommendation:  buildRecommendation(out.price),
	}
}

// buildSummary renders the human-readable one-liner. When price data is
// unusable it degrades to a price-unavailable variant rather than
// failing assembly.
func buildSummary(req domain.CatchRequest, price StageResult[domain.PriceEstimate], market domain.MarketInsight) string {
	quantity := strconv.FormatFloat(req.QuantityKg, 'f', -1, 64)

	if price.IsFallback() && price.Value.FairPricePerKg == 0 && price.Value.Currency == "" {
		return fmt.Sprintf("%s kg of %s in %s. Price unavailable.", quantity, req.FishType, req.Location)
	}

	fairPrice := strconv.FormatFloat(price.Value.FairPricePerKg, 'f', -1, 64)
	currency := price.Value.Currency
	if currency == "" {
		currency = "TZS"
	}

	return fmt.Sprintf("%s kg of %s in %s. Suggested price: %s %s/kg. Market trend: %s.",
		quantity, req.FishType, req.Location, fairPrice, currency, market.MarketTrend)
}

func buildRecommendation(price StageResult[domain.PriceEstimate]) string {
	if price.IsFallback() && price.Value.FairPricePerKg == 0 {
		return "No price recommendation"
	}
	return fmt.Sprintf("Suggested price: %s %s per kg",
		price.Value.Currency,
		strconv.FormatFloat(price.Value.FairPricePerKg, 'f', -1, 64))
}
