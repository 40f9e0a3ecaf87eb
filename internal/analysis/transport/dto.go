package transport

import "samakicash_backend/internal/analysis/domain"

// AnalyzeCatchRequest is the payload for POST /api/v1/analyze-catch.
type AnalyzeCatchRequest struct {
	FishType   string  `json:"fish_type" validate:"required,min=1,max=100"`
	QuantityKg float64 `json:"quantity_kg" validate:"required,gt=0"`
	Location   string  `json:"location" validate:"required,min=1,max=200"`
	UserID     string  `json:"user_id" validate:"required"`
	ImageData  string  `json:"image_data,omitempty"`
}

// MatchRequest is the payload for POST /api/v1/match. It runs price and
// market analysis followed by matchmaking, without the rest of the
// pipeline.
type MatchRequest struct {
	FishType   string  `json:"fish_type" validate:"required,min=1,max=100"`
	QuantityKg float64 `json:"quantity_kg" validate:"required,gt=0"`
	Location   string  `json:"location" validate:"required,min=1,max=200"`
	UserID     string  `json:"user_id,omitempty"`
}

// AnalysisResponse is the terminal aggregate returned to the caller.
// It is constructed once during assembly and never mutated afterwards.
type AnalysisResponse struct {
	Status          string                  `json:"status"`
	Message         string                  `json:"message,omitempty"`
	PriceAnalysis   *domain.PriceEstimate   `json:"price_analysis,omitempty"`
	MarketInsights  *domain.MarketInsight   `json:"market_insights,omitempty"`
	ImageAnalysis   *domain.ImageAssessment `json:"image_analysis,omitempty"`
	VoiceMessageURL *string                 `json:"voice_message_url"`
	AnalysisSummary string                  `json:"analysis_summary,omitempty"`
	Matches         []domain.BuyerMatch     `json:"matches"`
	CreditInfo      *domain.CreditSnapshot  `json:"credit_info,omitempty"`
	Recommendation  string                  `json:"recommendation,omitempty"`
}

// MatchResponse is the reduced response for the standalone match endpoint.
type MatchResponse struct {
	Status          string               `json:"status"`
	Matches         []domain.BuyerMatch  `json:"matches"`
	PriceAnalysis   domain.PriceEstimate `json:"price_analysis"`
	MarketInsights  domain.MarketInsight `json:"market_insights"`
	AnalysisSummary string               `json:"analysis_summary"`
}
