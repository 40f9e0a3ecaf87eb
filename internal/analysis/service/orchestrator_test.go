package service

import (
	"context"
	"errors"
	"testing"

	"samakicash_backend/internal/analysis/domain"
)

type fakePricer struct {
	estimate domain.PriceEstimate
	err      error
	panics   bool
}

func (f *fakePricer) EstimatePrice(ctx context.Context, req domain.CatchRequest) (domain.PriceEstimate, error) {
	if f.panics {
		panic("pricer blew up")
	}
	return f.estimate, f.err
}

type fakeAnalyst struct {
	raw any
	err error
}

func (f *fakeAnalyst) MarketInsight(ctx context.Context, req domain.CatchRequest) (any, error) {
	return f.raw, f.err
}

type fakeAssessor struct {
	assessment domain.ImageAssessment
	err        error
	called     bool
}

func (f *fakeAssessor) AssessImage(ctx context.Context, image []byte) (domain.ImageAssessment, error) {
	f.called = true
	return f.assessment, f.err
}

type fakeSynthesizer struct {
	result string
	err    error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, price domain.PriceEstimate, market domain.MarketInsight) (string, error) {
	return f.result, f.err
}

type fakeMatcher struct {
	matches []domain.BuyerMatch
	err     error
}

func (f *fakeMatcher) FindMatches(ctx context.Context, req domain.CatchRequest, price domain.PriceEstimate, market domain.MarketInsight) ([]domain.BuyerMatch, error) {
	return f.matches, f.err
}

type fakeScorer struct {
	snapshot domain.CreditSnapshot
	err      error
}

func (f *fakeScorer) Score(ctx context.Context, userID string) (domain.CreditSnapshot, error) {
	return f.snapshot, f.err
}

type fakeStore struct {
	saved []domain.CatchRecord
	err   error
}

func (f *fakeStore) SaveCatch(ctx context.Context, record domain.CatchRecord) error {
	f.saved = append(f.saved, record)
	return f.err
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) NotifyMatches(ctx context.Context, userID string, matches []domain.BuyerMatch, price domain.PriceEstimate) error {
	f.calls++
	return f.err
}

type pipeline struct {
	pricer      *fakePricer
	analyst     *fakeAnalyst
	assessor    *fakeAssessor
	synthesizer *fakeSynthesizer
	matcher     *fakeMatcher
	scorer      *fakeScorer
	store       *fakeStore
	notifier    *fakeNotifier
}

func newPipeline() *pipeline {
	return &pipeline{
		pricer: &fakePricer{estimate: domain.PriceEstimate{
			FairPricePerKg: 5200, Currency: "TZS", Reasoning: "seasonal demand", ConfidenceScore: 0.8,
		}},
		analyst:  &fakeAnalyst{raw: map[string]any{"market_trend": "rising", "recommendation": "Sell now"}},
		assessor: &fakeAssessor{assessment: domain.ImageAssessment{Description: "fresh tilapia", Confidence: 0.9}},
		synthesizer: &fakeSynthesizer{
			result: "abc123.mp3",
		},
		matcher: &fakeMatcher{matches: []domain.BuyerMatch{
			{BuyerID: "b1", Name: "Mwanza Fish Co", MatchScore: 78},
		}},
		scorer:   &fakeScorer{snapshot: domain.CreditSnapshot{UserID: "u1", CreditScore: 720, LoanEligible: true, MaxLoanAmount: 720000, CatchCount: 7}},
		store:    &fakeStore{},
		notifier: &fakeNotifier{},
	}
}

func (p *pipeline) service() *Service {
	return New(p.pricer, p.analyst, p.assessor, p.synthesizer, p.matcher, p.scorer, p.store, p.notifier, nil, testLogger())
}

func request() domain.CatchRequest {
	return domain.CatchRequest{FishType: "tilapia", QuantityKg: 10, Location: "Mwanza", UserID: "u1"}
}

func TestAnalyzeAllCollaboratorsFailing(t *testing.T) {
	p := newPipeline()
	p.pricer.err = errors.New("mistral down")
	p.analyst.err = errors.New("aiml down")
	p.synthesizer.err = errors.New("elevenlabs down")
	p.matcher.err = errors.New("db down")
	p.scorer.err = errors.New("db down")
	p.store.err = errors.New("db down")

	resp := p.service().Analyze(context.Background(), request())

	if resp.Status != "success" {
		t.Fatalf("expected success even with everything failing, got %q", resp.Status)
	}
	if resp.PriceAnalysis == nil || resp.PriceAnalysis.FairPricePerKg != 0 {
		t.Fatalf("expected fallback price 0, got %+v", resp.PriceAnalysis)
	}
	if resp.PriceAnalysis.Currency != "TZS" {
		t.Fatalf("expected fallback currency TZS, got %q", resp.PriceAnalysis.Currency)
	}
	if resp.MarketInsights == nil || resp.MarketInsights.MarketTrend != "stable" {
		t.Fatalf("expected stable fallback trend, got %+v", resp.MarketInsights)
	}
	if resp.VoiceMessageURL != nil {
		t.Fatalf("expected null voice URL, got %q", *resp.VoiceMessageURL)
	}
	if resp.Matches == nil || len(resp.Matches) != 0 {
		t.Fatalf("expected empty non-nil matches, got %#v", resp.Matches)
	}
	if resp.CreditInfo == nil || resp.CreditInfo.CreditScore != 700 {
		t.Fatalf("expected default credit score 700, got %+v", resp.CreditInfo)
	}
	if resp.CreditInfo.MaxLoanAmount != 700000 || !resp.CreditInfo.LoanEligible || resp.CreditInfo.CatchCount != 0 {
		t.Fatalf("unexpected default credit snapshot %+v", resp.CreditInfo)
	}
	if p.notifier.calls != 0 {
		t.Fatalf("notify must not run with zero matches, got %d calls", p.notifier.calls)
	}

	want := "10 kg of tilapia in Mwanza. Suggested price: 0 TZS/kg. Market trend: stable."
	if resp.AnalysisSummary != want {
		t.Fatalf("summary mismatch:\n got %q\nwant %q", resp.AnalysisSummary, want)
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	p := newPipeline()

	req := request()
	req.ImageData = []byte{0xFF, 0xD8, 0xFF}
	resp := p.service().Analyze(context.Background(), req)

	if resp.Status != "success" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if resp.VoiceMessageURL == nil || *resp.VoiceMessageURL != "/audio/abc123.mp3" {
		t.Fatalf("unexpected voice URL %v", resp.VoiceMessageURL)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(resp.Matches))
	}
	if p.notifier.calls != 1 {
		t.Fatalf("expected exactly one notify call, got %d", p.notifier.calls)
	}
	if !p.assessor.called {
		t.Fatal("image stage should run when a payload is supplied")
	}
	if len(p.store.saved) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(p.store.saved))
	}
	if p.store.saved[0].VoiceFilename != "abc123.mp3" {
		t.Fatalf("persisted record missing voice filename: %+v", p.store.saved[0])
	}

	want := "10 kg of tilapia in Mwanza. Suggested price: 5200 TZS/kg. Market trend: rising."
	if resp.AnalysisSummary != want {
		t.Fatalf("summary mismatch:\n got %q\nwant %q", resp.AnalysisSummary, want)
	}
}

func TestAnalyzeSkipsImageStageWithoutPayload(t *testing.T) {
	p := newPipeline()

	resp := p.service().Analyze(context.Background(), request())

	if p.assessor.called {
		t.Fatal("image stage must be skipped without a payload")
	}
	if resp.ImageAnalysis == nil || resp.ImageAnalysis.Description != "no image provided" {
		t.Fatalf("expected no-image sentinel, got %+v", resp.ImageAnalysis)
	}
}

func TestAnalyzeSurvivesCollaboratorPanic(t *testing.T) {
	p := newPipeline()
	p.pricer.panics = true

	resp := p.service().Analyze(context.Background(), request())

	if resp.Status != "success" {
		t.Fatalf("panic in a stage must not fail the run, got %q", resp.Status)
	}
	if resp.PriceAnalysis.FairPricePerKg != 0 {
		t.Fatalf("expected fallback price after panic, got %+v", resp.PriceAnalysis)
	}
}

func TestAnalyzeVoiceSentinelCollapsesToNull(t *testing.T) {
	p := newPipeline()
	p.synthesizer.result = "voice_generation_timeout"

	resp := p.service().Analyze(context.Background(), request())

	if resp.VoiceMessageURL != nil {
		t.Fatalf("sentinel must collapse to null voice URL, got %q", *resp.VoiceMessageURL)
	}
}

func TestAnalyzePersistFailureDoesNotAffectResponse(t *testing.T) {
	p := newPipeline()
	p.store.err = errors.New("insert failed")

	resp := p.service().Analyze(context.Background(), request())

	if resp.Status != "success" {
		t.Fatalf("persist failure must be invisible to the caller, got %q", resp.Status)
	}
}

func TestAnalyzeNotifyFailureDoesNotAffectResponse(t *testing.T) {
	p := newPipeline()
	p.notifier.err = errors.New("queue down")

	resp := p.service().Analyze(context.Background(), request())

	if resp.Status != "success" {
		t.Fatalf("notify failure must be invisible to the caller, got %q", resp.Status)
	}
}

func TestMatchReturnsReducedResponse(t *testing.T) {
	p := newPipeline()

	resp := p.service().Match(context.Background(), request())

	if resp.Status != "success" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(resp.Matches))
	}
	if resp.PriceAnalysis.FairPricePerKg != 5200 {
		t.Fatalf("unexpected price %+v", resp.PriceAnalysis)
	}
	if resp.MarketInsights.MarketTrend != "rising" {
		t.Fatalf("unexpected trend %q", resp.MarketInsights.MarketTrend)
	}
}
