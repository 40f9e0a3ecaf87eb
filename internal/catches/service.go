// Package catches exposes a user's recorded catch history and the
// aggregates derived from it.
package catches

import (
	"context"
	"math"
	"sort"

	"samakicash_backend/internal/catches/repository"
)

// Store abstracts catch persistence for the history service.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]repository.Catch, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// Service answers catch-history queries.
type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// History returns a user's catches, newest first. A user with no
// catches gets an empty list, not an error.
func (s *Service) History(ctx context.Context, userID string) ([]repository.Catch, error) {
	catches, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if catches == nil {
		catches = []repository.Catch{}
	}
	return catches, nil
}

// Stats summarizes a user's catch activity.
type Stats struct {
	UserID            string  `json:"user_id"`
	TotalCatches      int     `json:"total_catches"`
	TotalQuantityKg   float64 `json:"total_quantity_kg"`
	AveragePricePerKg float64 `json:"average_price_per_kg"`
}

// StatsByUser aggregates catch count, total quantity and the mean
// suggested price across a user's history.
func (s *Service) StatsByUser(ctx context.Context, userID string) (Stats, error) {
	catches, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{UserID: userID, TotalCatches: len(catches)}

	var priceSum float64
	var priced int
	for _, c := range catches {
		stats.TotalQuantityKg += c.QuantityKg
		if c.PriceAnalysis.FairPricePerKg > 0 {
			priceSum += c.PriceAnalysis.FairPricePerKg
			priced++
		}
	}
	if priced > 0 {
		stats.AveragePricePerKg = math.Round(priceSum/float64(priced)*100) / 100
	}

	return stats, nil
}

// FishTypeCount is one entry of a user's catch composition.
type FishTypeCount struct {
	FishType string `json:"fish_type"`
	Count    int    `json:"count"`
}

// MarketSummary is the per-user market view derived from history.
type MarketSummary struct {
	UserID       string          `json:"user_id"`
	TopFishTypes []FishTypeCount `json:"top_fish_types"`
	Insight      string          `json:"insight"`
}

// MarketSummaryByUser ranks the user's fish types by frequency.
func (s *Service) MarketSummaryByUser(ctx context.Context, userID string) (MarketSummary, error) {
	catches, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return MarketSummary{}, err
	}

	counts := map[string]int{}
	for _, c := range catches {
		if c.FishType != "" {
			counts[c.FishType]++
		}
	}

	top := make([]FishTypeCount, 0, len(counts))
	for ft, n := range counts {
		top = append(top, FishTypeCount{FishType: ft, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].FishType < top[j].FishType
	})

	return MarketSummary{
		UserID:       userID,
		TopFishTypes: top,
		Insight:      "Increase supply during morning hours for better prices",
	}, nil
}
