// Package matchmaking ranks registered buyers against an analyzed
// catch. Matches are derived fresh on every request and never stored.
package matchmaking

import (
	"context"
	"fmt"
	"math"
	"sort"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/internal/matchmaking/repository"
)

const maxMatches = 10

// BuyerLister abstracts the buyer repository.
type BuyerLister interface {
	ListBuyers(ctx context.Context) ([]repository.Buyer, error)
}

// Service scores buyers for a catch.
type Service struct {
	buyers BuyerLister
}

func New(buyers BuyerLister) *Service {
	return &Service{buyers: buyers}
}

// FindMatches scores every registered buyer against the catch and
// returns the top candidates, highest score first. The score is a
// heuristic anchored on the price analysis confidence.
func (s *Service) FindMatches(ctx context.Context, req domain.CatchRequest, price domain.PriceEstimate, market domain.MarketInsight) ([]domain.BuyerMatch, error) {
	buyers, err := s.buyers.ListBuyers(ctx)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	score := MatchScore(price.ConfidenceScore)
	total := math.Round(price.FairPricePerKg*req.QuantityKg*100) / 100

	matches := make([]domain.BuyerMatch, 0, len(buyers))
	for _, b := range buyers {
		matches = append(matches, domain.BuyerMatch{
			BuyerID:             b.ID.String(),
			Contact:             b.Email,
			Name:                b.Name,
			Organization:        b.Organization,
			Location:            b.Location,
			MatchScore:          score,
			EstimatedPricePerKg: price.FairPricePerKg,
			EstimatedTotalValue: total,
			Reason:              fmt.Sprintf("High demand for %s in %s", req.FishType, req.Location),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches, nil
}

// MatchScore maps a price-analysis confidence in [0,1] to a match score
// in [0,100].
func MatchScore(confidence float64) int {
	score := 30 + confidence*60
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}
