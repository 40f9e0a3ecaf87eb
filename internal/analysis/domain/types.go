// Package domain defines the catch-analysis types shared by the
// orchestration service, its collaborators, and the transport layer.
package domain

import "time"

// CatchRequest is the immutable description of one catch being analyzed.
// It is created at the API boundary and read-only through the pipeline.
type CatchRequest struct {
	FishType   string
	QuantityKg float64
	Location   string
	UserID     string
	ImageData  []byte
}

// HasImage reports whether an image payload was supplied.
func (r CatchRequest) HasImage() bool { return len(r.ImageData) > 0 }

// PriceEstimate is the price analysis for a catch.
type PriceEstimate struct {
	FairPricePerKg  float64 `json:"fair_price"`
	Currency        string  `json:"currency"`
	Reasoning       string  `json:"reasoning"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// MarketInsight is the normalized market analysis. Upstreams label the
// trend field inconsistently; Raw preserves whatever else they returned.
type MarketInsight struct {
	MarketTrend    string         `json:"market_trend"`
	Recommendation string         `json:"recommendation,omitempty"`
	Raw            map[string]any `json:"-"`
}

// ImageAssessment is the quality assessment of a catch photo.
type ImageAssessment struct {
	Description string     `json:"description"`
	Confidence  float64    `json:"confidence"`
	CapturedAt  *time.Time `json:"captured_at,omitempty"`
}

// NoImageAssessment is the sentinel used when no image was supplied.
func NoImageAssessment() ImageAssessment {
	return ImageAssessment{Description: "no image provided"}
}

// VoiceArtifact is the tagged outcome of speech synthesis: either a
// produced audio filename or a skip with a reason. All upstream
// soft-failure conditions collapse into the skipped variant.
type VoiceArtifact struct {
	Filename string
	Skipped  bool
	Reason   string
}

// ProducedVoice returns an artifact for a generated audio file.
func ProducedVoice(filename string) VoiceArtifact {
	return VoiceArtifact{Filename: filename}
}

// SkippedVoice returns an artifact for a run that produced no audio.
func SkippedVoice(reason string) VoiceArtifact {
	return VoiceArtifact{Skipped: true, Reason: reason}
}

// BuyerMatch is one candidate buyer for a catch, computed fresh per
// request and never persisted.
type BuyerMatch struct {
	BuyerID             string  `json:"buyer_id"`
	Contact             string  `json:"buyer_contact"`
	Name                string  `json:"buyer_name"`
	Organization        string  `json:"buyer_organization"`
	Location            string  `json:"buyer_location"`
	MatchScore          int     `json:"match_score"`
	EstimatedPricePerKg float64 `json:"estimated_price_per_kg"`
	EstimatedTotalValue float64 `json:"estimated_total_value"`
	Reason              string  `json:"reason"`
}

// CreditSnapshot is a point-in-time loan-eligibility view for a user.
type CreditSnapshot struct {
	UserID        string  `json:"user_id"`
	CreditScore   int     `json:"credit_score"`
	LoanEligible  bool    `json:"loan_eligible"`
	MaxLoanAmount float64 `json:"max_loan_amount"`
	CatchCount    int     `json:"catch_count"`
}

// DefaultCreditSnapshot is the conservative snapshot used when scoring
// is unavailable.
func DefaultCreditSnapshot(userID string) CreditSnapshot {
	return CreditSnapshot{
		UserID:        userID,
		CreditScore:   700,
		LoanEligible:  true,
		MaxLoanAmount: 700000,
		CatchCount:    0,
	}
}

// CatchRecord is the persisted form of an analyzed catch.
type CatchRecord struct {
	UserID        string
	FishType      string
	QuantityKg    float64
	Location      string
	PriceAnalysis PriceEstimate
	MarketTrend   string
	ImageSummary  string
	VoiceFilename string
}
