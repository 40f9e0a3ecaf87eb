package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/internal/matchmaking/repository"

	"github.com/google/uuid"
)

type fakeLister struct {
	buyers []repository.Buyer
	err    error
}

func (f *fakeLister) ListBuyers(ctx context.Context) ([]repository.Buyer, error) {
	return f.buyers, f.err
}

func buyers(n int) []repository.Buyer {
	out := make([]repository.Buyer, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, repository.Buyer{
			ID:    uuid.New(),
			Email: fmt.Sprintf("buyer%d@example.com", i),
			Name:  fmt.Sprintf("Buyer %d", i),
		})
	}
	return out
}

func TestMatchScore(t *testing.T) {
	cases := []struct {
		confidence float64
		want       int
	}{
		{0, 30},
		{0.5, 60},
		{1, 90},
		{2, 100},
		{-1, 0},
	}

	for _, tc := range cases {
		if got := MatchScore(tc.confidence); got != tc.want {
			t.Errorf("MatchScore(%v) = %d, want %d", tc.confidence, got, tc.want)
		}
	}
}

func TestFindMatchesBuildsMatchDetails(t *testing.T) {
	svc := New(&fakeLister{buyers: buyers(1)})

	req := domain.CatchRequest{FishType: "tilapia", QuantityKg: 10, Location: "Mwanza"}
	price := domain.PriceEstimate{FairPricePerKg: 5200, ConfidenceScore: 0.8}

	matches, err := svc.FindMatches(context.Background(), req, price, domain.MarketInsight{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	m := matches[0]
	if m.MatchScore != 78 {
		t.Fatalf("expected score 78, got %d", m.MatchScore)
	}
	if m.EstimatedPricePerKg != 5200 {
		t.Fatalf("unexpected price per kg %v", m.EstimatedPricePerKg)
	}
	if m.EstimatedTotalValue != 52000 {
		t.Fatalf("unexpected total value %v", m.EstimatedTotalValue)
	}
	if m.Reason != "High demand for tilapia in Mwanza" {
		t.Fatalf("unexpected reason %q", m.Reason)
	}
}

func TestFindMatchesCapsAtTen(t *testing.T) {
	svc := New(&fakeLister{buyers: buyers(25)})

	matches, err := svc.FindMatches(context.Background(), domain.CatchRequest{FishType: "tilapia", QuantityKg: 1}, domain.PriceEstimate{ConfidenceScore: 0.5}, domain.MarketInsight{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 10 {
		t.Fatalf("expected cap at 10 matches, got %d", len(matches))
	}
}

func TestFindMatchesNoBuyers(t *testing.T) {
	svc := New(&fakeLister{})

	matches, err := svc.FindMatches(context.Background(), domain.CatchRequest{FishType: "tilapia", QuantityKg: 1}, domain.PriceEstimate{}, domain.MarketInsight{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestFindMatchesPropagatesRepositoryError(t *testing.T) {
	svc := New(&fakeLister{err: errors.New("db down")})

	if _, err := svc.FindMatches(context.Background(), domain.CatchRequest{}, domain.PriceEstimate{}, domain.MarketInsight{}); err == nil {
		t.Fatal("expected error from repository")
	}
}
