// Package service implements the catch-analysis pipeline: nine
// sequential, individually fault-isolated stages that call the external
// collaborators and always assemble a complete response, no matter how
// many of them fail.
package service

import (
	"context"
	"time"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/internal/analysis/transport"
	"samakicash_backend/internal/events"
	"samakicash_backend/platform/logger"
)

// Collaborator boundaries. Each is one external dependency the pipeline
// calls exactly once per run; their resilience is their own concern.
type (
	// PriceEstimator produces a fair-price analysis for a catch.
	PriceEstimator interface {
		EstimatePrice(ctx context.Context, req domain.CatchRequest) (domain.PriceEstimate, error)
	}

	// MarketAnalyst returns a market insight of arbitrary shape; the
	// pipeline normalizes it.
	MarketAnalyst interface {
		MarketInsight(ctx context.Context, req domain.CatchRequest) (any, error)
	}

	// ImageAssessor judges the quality of a catch photo.
	ImageAssessor interface {
		AssessImage(ctx context.Context, image []byte) (domain.ImageAssessment, error)
	}

	// VoiceSynthesizer turns the price and market results into an audio
	// message, returning a filename or a soft-failure sentinel string.
	VoiceSynthesizer interface {
		Synthesize(ctx context.Context, price domain.PriceEstimate, market domain.MarketInsight) (string, error)
	}

	// Matchmaker finds candidate buyers for a catch.
	Matchmaker interface {
		FindMatches(ctx context.Context, req domain.CatchRequest, price domain.PriceEstimate, market domain.MarketInsight) ([]domain.BuyerMatch, error)
	}

	// CreditScorer computes a loan-eligibility snapshot for a user.
	CreditScorer interface {
		Score(ctx context.Context, userID string) (domain.CreditSnapshot, error)
	}

	// CatchStore persists analyzed catches.
	CatchStore interface {
		SaveCatch(ctx context.Context, record domain.CatchRecord) error
	}

	// Notifier delivers a match alert. Fire-and-forget.
	Notifier interface {
		NotifyMatches(ctx context.Context, userID string, matches []domain.BuyerMatch, price domain.PriceEstimate) error
	}
)

// Per-stage timeouts. Chat upstreams get the bound the upstreams
// themselves document; voice synthesis is slower end to end.
const (
	chatStageTimeout  = 30 * time.Second
	voiceStageTimeout = 45 * time.Second
	localStageTimeout = 10 * time.Second
)

// Service runs the analysis pipeline.
type Service struct {
	prices  PriceEstimator
	market  MarketAnalyst
	images  ImageAssessor
	voices  VoiceSynthesizer
	matcher Matchmaker
	credit  CreditScorer
	store   CatchStore
	notify  Notifier
	bus     events.Bus
	log     *logger.Logger
}

// New wires the pipeline with its collaborators.
func New(prices PriceEstimator, market MarketAnalyst, images ImageAssessor, voices VoiceSynthesizer, matcher Matchmaker, credit CreditScorer, store CatchStore, notify Notifier, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		prices:  prices,
		market:  market,
		images:  images,
		voices:  voices,
		matcher: matcher,
		credit:  credit,
		store:   store,
		notify:  notify,
		bus:     bus,
		log:     log,
	}
}

// Analyze runs the nine stages in order. Stages are strictly sequential
// because later stages consume earlier outputs, but each is fault
// isolated: any upstream failure resolves to that stage's fallback and
// the run continues with degraded inputs. The caller always gets a
// response; only a fault inside assembly itself yields an error status.
func (s *Service) Analyze(ctx context.Context, req domain.CatchRequest) transport.AnalysisResponse {
	// Side effects must complete even if the caller disconnects.
	ctx = context.WithoutCancel(ctx)

	var out stageOutcomes

	// 1. Price analysis.
	out.price = runStage(ctx, s.log, "price", chatStageTimeout, fallbackPrice(), func(ctx context.Context) (domain.PriceEstimate, error) {
		return s.prices.EstimatePrice(ctx, req)
	})

	// 2. Market insight. Normalization happens on the success path too;
	// the fallback is already in normalized shape.
	out.market = runStage(ctx, s.log, "market", chatStageTimeout, fallbackMarket(), func(ctx context.Context) (domain.MarketInsight, error) {
		raw, err := s.market.MarketInsight(ctx, req)
		if err != nil {
			return domain.MarketInsight{}, err
		}
		return NormalizeMarketInsight(raw), nil
	})

	// 3. Image assessment, only when a photo was supplied.
	if req.HasImage() {
		out.image = runStage(ctx, s.log, "image", chatStageTimeout, fallbackImage(), func(ctx context.Context) (domain.ImageAssessment, error) {
			return s.images.AssessImage(ctx, req.ImageData)
		})
	} else {
		out.image = Ok(domain.NoImageAssessment())
	}

	// 4. Voice message, best effort. Soft-failure sentinels from the
	// upstream collapse to the skipped variant.
	out.voice = runStage(ctx, s.log, "voice", voiceStageTimeout, domain.SkippedVoice("synthesis failed"), func(ctx context.Context) (domain.VoiceArtifact, error) {
		result, err := s.voices.Synthesize(ctx, out.price.Value, out.market.Value)
		if err != nil {
			return domain.VoiceArtifact{}, err
		}
		return ResolveVoiceArtifact(result), nil
	})

	// 5. Buyer matching.
	out.matches = runStage(ctx, s.log, "match", localStageTimeout, []domain.BuyerMatch{}, func(ctx context.Context) ([]domain.BuyerMatch, error) {
		return s.matcher.FindMatches(ctx, req, out.price.Value, out.market.Value)
	})

	// 6. Credit snapshot.
	out.credit = runStage(ctx, s.log, "credit", localStageTimeout, domain.DefaultCreditSnapshot(req.UserID), func(ctx context.Context) (domain.CreditSnapshot, error) {
		return s.credit.Score(ctx, req.UserID)
	})

	// 7. Persist the record. Best effort: failure is logged and the run
	// carries on.
	s.persistCatch(ctx, req, out)

	// 8. Notify, only when matching produced candidates.
	if len(out.matches.Value) > 0 {
		if err := s.notify.NotifyMatches(ctx, req.UserID, out.matches.Value, out.price.Value); err != nil {
			s.log.StageFallback("notify", err.Error())
		}
	}

	// 9. Assembly.
	resp := assemble(req, out)

	if resp.Status == "success" && s.bus != nil {
		s.bus.Publish(ctx, events.CatchAnalyzed{
			BaseEvent:  events.NewBaseEvent(),
			UserID:     req.UserID,
			FishType:   req.FishType,
			QuantityKg: req.QuantityKg,
			Location:   req.Location,
			FairPrice:  out.price.Value.FairPricePerKg,
			MatchCount: len(out.matches.Value),
			Degraded:   anyFallback(out),
		})
	}

	return resp
}

// Match runs only the price, market, and matching stages. It backs the
// standalone match endpoint.
func (s *Service) Match(ctx context.Context, req domain.CatchRequest) transport.MatchResponse {
	price := runStage(ctx, s.log, "price", chatStageTimeout, fallbackPrice(), func(ctx context.Context) (domain.PriceEstimate, error) {
		return s.prices.EstimatePrice(ctx, req)
	})

	market := runStage(ctx, s.log, "market", chatStageTimeout, fallbackMarket(), func(ctx context.Context) (domain.MarketInsight, error) {
		raw, err := s.market.MarketInsight(ctx, req)
		if err != nil {
			return domain.MarketInsight{}, err
		}
		return NormalizeMarketInsight(raw), nil
	})

	matches := runStage(ctx, s.log, "match", localStageTimeout, []domain.BuyerMatch{}, func(ctx context.Context) ([]domain.BuyerMatch, error) {
		return s.matcher.FindMatches(ctx, req, price.Value, market.Value)
	})

	return transport.MatchResponse{
		Status:          "success",
		Matches:         matches.Value,
		PriceAnalysis:   price.Value,
		MarketInsights:  market.Value,
		AnalysisSummary: buildSummary(req, price, market.Value),
	}
}

func (s *Service) persistCatch(ctx context.Context, req domain.CatchRequest, out stageOutcomes) {
	ctx, cancel := context.WithTimeout(ctx, localStageTimeout)
	defer cancel()

	record := domain.CatchRecord{
		UserID:        req.UserID,
		FishType:      req.FishType,
		QuantityKg:    req.QuantityKg,
		Location:      req.Location,
		PriceAnalysis: out.price.Value,
		MarketTrend:   out.market.Value.MarketTrend,
		ImageSummary:  out.image.Value.Description,
	}
	if !out.voice.Value.Skipped {
		record.VoiceFilename = out.voice.Value.Filename
	}

	if err := s.store.SaveCatch(ctx, record); err != nil {
		s.log.StageFallback("persist", err.Error())
	}
}

func anyFallback(out stageOutcomes) bool {
	return out.price.IsFallback() || out.market.IsFallback() || out.image.IsFallback() ||
		out.voice.IsFallback() || out.matches.IsFallback() || out.credit.IsFallback()
}

func fallbackPrice() domain.PriceEstimate {
	return domain.PriceEstimate{
		FairPricePerKg:  0,
		Currency:        "TZS",
		Reasoning:       "fallback price due to AI error",
		ConfidenceScore: 0,
	}
}

func fallbackMarket() domain.MarketInsight {
	return domain.MarketInsight{
		MarketTrend:    "stable",
		Recommendation: "Sell in the morning for best price",
	}
}

func fallbackImage() domain.ImageAssessment {
	return domain.ImageAssessment{Description: "image analysis failed", Confidence: 0}
}
